package service

import (
	"context"
	"time"

	"github.com/benx421/bankcards/internal/auth"
	"github.com/benx421/bankcards/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// CardManager owns card lifecycle operations
type CardManager interface {
	Issue(ctx context.Context, ownerID int64, cardType models.CardType) (*models.Card, error)
	SetStatus(ctx context.Context, cardID int64, status models.CardStatus) (*models.Card, error)
	RequestBlock(ctx context.Context, cardID int64, principal auth.Principal) (*models.Card, error)
	SoftDelete(ctx context.Context, cardID int64) error
	GetBalance(ctx context.Context, cardID int64, principal auth.Principal) (decimal.Decimal, error)
	GetCard(ctx context.Context, cardID int64, principal auth.Principal) (*models.Card, error)
	ListCards(ctx context.Context, offset, limit int) ([]*models.Card, error)
	ListOwnCards(ctx context.Context, principal auth.Principal, offset, limit int) ([]*models.Card, error)
	ExpireDue(ctx context.Context, asOf time.Time) (int64, error)
}

// TransferManager moves funds between cards and compensates transfers
type TransferManager interface {
	Transfer(ctx context.Context, fromCardID, toCardID int64, amount decimal.Decimal, principal auth.Principal) (*models.Transfer, error)
	Cancel(ctx context.Context, transferID uuid.UUID, principal auth.Principal) (*models.Transfer, error)
	GetTransfer(ctx context.Context, transferID uuid.UUID, principal auth.Principal) (*models.Transfer, error)
	ListTransfers(ctx context.Context, offset, limit int) ([]*models.Transfer, error)
}

// UserManager manages account holders and credentials
type UserManager interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	Ban(ctx context.Context, userID int64) error
	Delete(ctx context.Context, userID int64) error
	ListUsers(ctx context.Context, offset, limit int) ([]*models.User, error)
}

// Ensure concrete types implement interfaces
var (
	_ CardManager     = (*CardService)(nil)
	_ TransferManager = (*TransferService)(nil)
	_ UserManager     = (*UserService)(nil)
)
