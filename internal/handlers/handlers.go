// Package handlers implements the HTTP handlers for the card API.
package handlers

import (
	"log/slog"

	"github.com/benx421/bankcards/internal/service"
)

// Handler serves all endpoints over the injected service interfaces.
type Handler struct {
	cardService     service.CardManager
	transferService service.TransferManager
	userService     service.UserManager
	healthChecker   service.HealthChecker
	logger          *slog.Logger
	maxPageLimit    int
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	cardService service.CardManager,
	transferService service.TransferManager,
	userService service.UserManager,
	healthChecker service.HealthChecker,
	maxPageLimit int,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		cardService:     cardService,
		transferService: transferService,
		userService:     userService,
		healthChecker:   healthChecker,
		logger:          logger,
		maxPageLimit:    maxPageLimit,
	}
}
