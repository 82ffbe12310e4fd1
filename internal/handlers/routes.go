package handlers

import (
	"log/slog"
	"net/http"

	"github.com/benx421/bankcards/internal/api"
	"github.com/benx421/bankcards/internal/auth"
	"github.com/benx421/bankcards/internal/config"
	"github.com/benx421/bankcards/internal/db"
	"github.com/benx421/bankcards/internal/middleware"
	"github.com/benx421/bankcards/internal/repository"
	"github.com/benx421/bankcards/internal/service"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	database *db.DB,
	cfg *config.Config,
	logger *slog.Logger,
) http.Handler {
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	cardService := service.NewCardService(database, cfg.App.CardValidityYears, logger)
	transferService := service.NewTransferService(database, logger)
	userService := service.NewUserService(database, tokens, logger)

	handler := NewHandler(cardService, transferService, userService, database, cfg.App.MaxPageLimit, logger)

	authed := middleware.Authenticate(tokens, logger)
	admin := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireAdmin(h))
	}

	// Idempotent replay is scoped to the authenticated caller, so the
	// cache sits inside the auth chain.
	idempotencyRepo := repository.NewIdempotencyRepository(database)
	idem := middleware.Idempotency(idempotencyRepo, logger)
	idempotent := func(h http.HandlerFunc) http.Handler {
		return authed(idem(h))
	}

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)

	mux.HandleFunc("GET /health", handler.GetHealth)

	mux.HandleFunc("POST /api/v1/auth/register", handler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", handler.Login)

	mux.Handle("POST /api/v1/cards", idempotent(handler.CreateCard))
	mux.Handle("GET /api/v1/cards", authed(http.HandlerFunc(handler.ListCards)))
	mux.Handle("GET /api/v1/cards/{cardId}", authed(http.HandlerFunc(handler.GetCard)))
	mux.Handle("GET /api/v1/cards/{cardId}/balance", authed(http.HandlerFunc(handler.GetCardBalance)))
	mux.Handle("POST /api/v1/cards/{cardId}/block", authed(http.HandlerFunc(handler.BlockCard)))
	mux.Handle("PUT /api/v1/cards/{cardId}/status", admin(handler.UpdateCardStatus))
	mux.Handle("DELETE /api/v1/cards/{cardId}", admin(handler.DeleteCard))

	mux.Handle("POST /api/v1/transfers", idempotent(handler.CreateTransfer))
	mux.Handle("GET /api/v1/transfers", admin(handler.ListTransfers))
	mux.Handle("GET /api/v1/transfers/{transferId}", authed(http.HandlerFunc(handler.GetTransfer)))
	mux.Handle("POST /api/v1/transfers/{transferId}/cancel", idempotent(handler.CancelTransfer))

	mux.Handle("GET /api/v1/users", admin(handler.ListUsers))
	mux.Handle("GET /api/v1/users/{userId}", admin(handler.GetUser))
	mux.Handle("POST /api/v1/users/{userId}/ban", admin(handler.BanUser))
	mux.Handle("DELETE /api/v1/users/{userId}", admin(handler.DeleteUser))

	return middleware.RequestLogging(logger)(mux)
}
