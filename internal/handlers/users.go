package handlers

import (
	"net/http"

	"github.com/benx421/bankcards/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, user, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		// credentials failures are 401 here, unlike validation failures
		// on registration
		if svcErr := extractServiceError(err); svcErr != nil && svcErr.Code == service.ErrCodeInvalidCredentials {
			writeError(w, http.StatusUnauthorized, svcErr.Code, svcErr.Message)
			return
		}
		h.respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}

// ListUsers handles GET /api/v1/users (admin)
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	offset, limit := h.pagination(r)

	users, err := h.userService.ListUsers(r.Context(), offset, limit)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetUser handles GET /api/v1/users/{userId} (admin)
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt64(r, "userId")
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeUserNotFound, "user not found")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// BanUser handles POST /api/v1/users/{userId}/ban (admin)
func (h *Handler) BanUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt64(r, "userId")
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeUserNotFound, "user not found")
		return
	}

	if err := h.userService.Ban(r.Context(), userID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser handles DELETE /api/v1/users/{userId} (admin)
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathInt64(r, "userId")
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeUserNotFound, "user not found")
		return
	}

	if err := h.userService.Delete(r.Context(), userID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
