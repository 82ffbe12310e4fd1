package handlers

import (
	"net/http"

	"github.com/benx421/bankcards/internal/middleware"
	"github.com/benx421/bankcards/internal/models"
	"github.com/benx421/bankcards/internal/service"
)

type createCardRequest struct {
	// OwnerID defaults to the caller; only an admin may issue a card
	// for someone else.
	OwnerID int64  `json:"owner_id,omitempty"`
	Type    string `json:"type"`
}

type updateCardStatusRequest struct {
	Status string `json:"status"`
}

// CreateCard handles POST /api/v1/cards
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req createCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ownerID := req.OwnerID
	if ownerID == 0 {
		ownerID = principal.UserID
	}
	if ownerID != principal.UserID && !principal.IsAdmin() {
		writeError(w, http.StatusForbidden, "forbidden", "cannot issue a card for another user")
		return
	}

	card, err := h.cardService.Issue(r.Context(), ownerID, models.CardType(req.Type))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := toCardResponse(card)
	// the one response that carries the full number; it is never
	// retrievable again
	resp.Number = card.Number
	writeJSON(w, http.StatusCreated, resp)
}

// ListCards handles GET /api/v1/cards. Admins see every card, other
// callers see their own.
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	offset, limit := h.pagination(r)

	var cards []*models.Card
	var err error
	if principal.IsAdmin() {
		cards, err = h.cardService.ListCards(r.Context(), offset, limit)
	} else {
		cards, err = h.cardService.ListOwnCards(r.Context(), principal, offset, limit)
	}
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := make([]cardResponse, 0, len(cards))
	for _, card := range cards {
		resp = append(resp, toCardResponse(card))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetCard handles GET /api/v1/cards/{cardId}
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	cardID, err := pathInt64(r, "cardId")
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeCardNotFound, "card not found")
		return
	}

	card, err := h.cardService.GetCard(r.Context(), cardID, principal)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(card))
}

// GetCardBalance handles GET /api/v1/cards/{cardId}/balance
func (h *Handler) GetCardBalance(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	cardID, err := pathInt64(r, "cardId")
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeCardNotFound, "card not found")
		return
	}

	balance, err := h.cardService.GetBalance(r.Context(), cardID, principal)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{
		CardID:  cardID,
		Balance: balance.StringFixed(2),
	})
}

// BlockCard handles POST /api/v1/cards/{cardId}/block
func (h *Handler) BlockCard(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	cardID, err := pathInt64(r, "cardId")
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeCardNotFound, "card not found")
		return
	}

	card, err := h.cardService.RequestBlock(r.Context(), cardID, principal)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(card))
}

// UpdateCardStatus handles PUT /api/v1/cards/{cardId}/status (admin)
func (h *Handler) UpdateCardStatus(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathInt64(r, "cardId")
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeCardNotFound, "card not found")
		return
	}

	var req updateCardStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	card, err := h.cardService.SetStatus(r.Context(), cardID, models.CardStatus(req.Status))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(card))
}

// DeleteCard handles DELETE /api/v1/cards/{cardId} (admin)
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathInt64(r, "cardId")
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeCardNotFound, "card not found")
		return
	}

	if err := h.cardService.SoftDelete(r.Context(), cardID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
