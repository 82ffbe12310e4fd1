package handlers

import (
	"net/http"

	"github.com/benx421/bankcards/internal/middleware"
	"github.com/benx421/bankcards/internal/service"
	"github.com/shopspring/decimal"
)

type createTransferRequest struct {
	FromCardID int64 `json:"from_card_id"`
	ToCardID   int64 `json:"to_card_id"`
	// Amount is a decimal string, e.g. "150.00". JSON numbers lose
	// precision at this scale.
	Amount string `json:"amount"`
}

// CreateTransfer handles POST /api/v1/transfers
func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req createTransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, service.ErrCodeInvalidAmount, "amount must be a decimal string")
		return
	}

	transfer, err := h.transferService.Transfer(r.Context(), req.FromCardID, req.ToCardID, amount, principal)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransferResponse(transfer))
}

// CancelTransfer handles POST /api/v1/transfers/{transferId}/cancel
func (h *Handler) CancelTransfer(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	transferID, err := pathUUID(r, "transferId")
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeTransferNotFound, "transfer not found")
		return
	}

	transfer, err := h.transferService.Cancel(r.Context(), transferID, principal)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransferResponse(transfer))
}

// GetTransfer handles GET /api/v1/transfers/{transferId}
func (h *Handler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	transferID, err := pathUUID(r, "transferId")
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeTransferNotFound, "transfer not found")
		return
	}

	transfer, err := h.transferService.GetTransfer(r.Context(), transferID, principal)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransferResponse(transfer))
}

// ListTransfers handles GET /api/v1/transfers (admin)
func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	offset, limit := h.pagination(r)

	transfers, err := h.transferService.ListTransfers(r.Context(), offset, limit)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := make([]transferResponse, 0, len(transfers))
	for _, transfer := range transfers {
		resp = append(resp, toTransferResponse(transfer))
	}
	writeJSON(w, http.StatusOK, resp)
}
