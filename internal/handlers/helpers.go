package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/benx421/bankcards/internal/cardnumber"
	"github.com/benx421/bankcards/internal/models"
	"github.com/benx421/bankcards/internal/service"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type cardResponse struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Number    string    `json:"number"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Balance   string    `json:"balance"`
	Deleted   bool      `json:"deleted"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type balanceResponse struct {
	CardID  int64  `json:"card_id"`
	Balance string `json:"balance"`
}

type transferResponse struct {
	ID         string    `json:"id"`
	FromCardID int64     `json:"from_card_id"`
	ToCardID   int64     `json:"to_card_id"`
	Amount     string    `json:"amount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Banned    bool      `json:"banned"`
	CreatedAt time.Time `json:"created_at"`
}

// toCardResponse never exposes the full card number; only the owner saw
// it at issue time.
func toCardResponse(card *models.Card) cardResponse {
	return cardResponse{
		ID:        card.ID,
		OwnerID:   card.OwnerID,
		Number:    cardnumber.Mask(card.Number),
		Type:      string(card.Type),
		Status:    string(card.Status),
		Balance:   card.Balance.StringFixed(2),
		Deleted:   card.Deleted,
		ExpiresAt: card.ExpiresAt,
		CreatedAt: card.CreatedAt,
	}
}

func toTransferResponse(transfer *models.Transfer) transferResponse {
	return transferResponse{
		ID:         transfer.ID.String(),
		FromCardID: transfer.FromCardID,
		ToCardID:   transfer.ToCardID,
		Amount:     transfer.Amount.StringFixed(2),
		Status:     string(transfer.Status),
		CreatedAt:  transfer.CreatedAt,
		UpdatedAt:  transfer.UpdatedAt,
	}
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		Banned:    user.Banned,
		CreatedAt: user.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return false
	}
	return true
}

// respondServiceError translates a service error into an HTTP response.
// Unexpected errors are logged and reported as a plain 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	svcErr := extractServiceError(err)
	if svcErr == nil || svcErr.Code == service.ErrCodeInternalError {
		h.logger.Error("unexpected error handling request", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeError(w, statusForCode(svcErr.Code), svcErr.Code, svcErr.Message)
}

func statusForCode(code string) int {
	switch code {
	case service.ErrCodeCardNotFound,
		service.ErrCodeUserNotFound,
		service.ErrCodeTransferNotFound:
		return http.StatusNotFound
	case service.ErrCodeInvalidCardType,
		service.ErrCodeInvalidStatus,
		service.ErrCodeInvalidAmount,
		service.ErrCodeSameCard,
		service.ErrCodeInvalidCredentials:
		return http.StatusBadRequest
	case service.ErrCodeUserExists,
		service.ErrCodeCardNotActive,
		service.ErrCodeNotCancellable,
		service.ErrCodeSequenceExhausted:
		return http.StatusConflict
	case service.ErrCodeSenderLocked,
		service.ErrCodeCrossOwnerTransfer,
		service.ErrCodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	case service.ErrCodeUserBanned:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

// pathInt64 parses a numeric path segment registered with the router.
func pathInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}

// pagination parses offset and limit query parameters, clamping the
// limit to the configured maximum before it reaches a service.
func (h *Handler) pagination(r *http.Request) (offset, limit int) {
	limit = h.maxPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > h.maxPageLimit {
		limit = h.maxPageLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}
	return offset, limit
}
