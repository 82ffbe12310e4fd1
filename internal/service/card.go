package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/benx421/bankcards/internal/auth"
	"github.com/benx421/bankcards/internal/cardnumber"
	"github.com/benx421/bankcards/internal/db"
	"github.com/benx421/bankcards/internal/models"
	"github.com/benx421/bankcards/internal/repository"
	"github.com/shopspring/decimal"
)

// CardService owns card lifecycle state transitions and ownership checks
type CardService struct {
	db            *db.DB
	logger        *slog.Logger
	validityYears int
}

// NewCardService creates a new CardService. validityYears is how long an
// issued card stays valid.
func NewCardService(database *db.DB, validityYears int, logger *slog.Logger) *CardService {
	return &CardService{
		db:            database,
		logger:        logger,
		validityYears: validityYears,
	}
}

// Issue creates a new ACTIVE card for an owner. The card number continues
// the owner's per-type sequence, seeded from the most recently issued
// number of that type.
func (s *CardService) Issue(ctx context.Context, ownerID int64, cardType models.CardType) (*models.Card, error) {
	if !models.ValidCardType(cardType) {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidCardType,
			Message: fmt.Sprintf("unsupported card type %q", cardType),
		}
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, beginTxError(err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	card, err := s.performIssue(ctx, repository.NewUserRepository(tx), repository.NewCardRepository(tx), ownerID, cardType)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, commitTxError(err)
	}

	s.logger.Info("card issued",
		"card_id", card.ID,
		"owner_id", card.OwnerID,
		"type", card.Type,
		"number", cardnumber.Mask(card.Number),
	)
	return card, nil
}

// performIssue contains the core issuance business logic
func (s *CardService) performIssue(
	ctx context.Context,
	userRepo repository.UserRepository,
	cardRepo repository.CardRepository,
	ownerID int64,
	cardType models.CardType,
) (*models.Card, error) {
	if _, err := userRepo.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:    ErrCodeUserNotFound,
				Message: fmt.Sprintf("user %d not found", ownerID),
			}
		}
		return nil, internalError("failed to load owner", err)
	}

	lastNumber, err := cardRepo.FindLastNumber(ctx, ownerID, cardType)
	if err != nil {
		return nil, internalError("failed to load last card number", err)
	}

	number, err := cardnumber.Generate(cardType, ownerID, lastNumber)
	if err != nil {
		if errors.Is(err, cardnumber.ErrSequenceExhausted) {
			return nil, &ServiceError{
				Code:    ErrCodeSequenceExhausted,
				Message: fmt.Sprintf("owner %d has issued the maximum number of %s cards", ownerID, cardType),
				Err:     err,
			}
		}
		var inconsistency *cardnumber.InconsistencyError
		if errors.As(err, &inconsistency) {
			// scheme metadata is broken; surface loudly, never swallow
			s.logger.Error("card number generation inconsistency", "error", err, "type", cardType)
		}
		return nil, internalError("failed to generate card number", err)
	}

	now := time.Now()
	card := &models.Card{
		Number:    number,
		OwnerID:   ownerID,
		Type:      cardType,
		Status:    models.CardStatusActive,
		ExpiresAt: now.AddDate(s.validityYears, 0, 0),
		Balance:   decimal.Zero,
	}

	created, err := cardRepo.Create(ctx, card)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateCardNumber) {
			// two concurrent issuances raced to the same sequence slot;
			// the caller may retry, the core does not
			return nil, internalError("card number collision", err)
		}
		return nil, internalError("failed to persist card", err)
	}
	return created, nil
}

// SetStatus is the administrative status override. It accepts any target
// status with no source-state restriction.
func (s *CardService) SetStatus(ctx context.Context, cardID int64, status models.CardStatus) (*models.Card, error) {
	if !models.ValidCardStatus(status) {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidStatus,
			Message: fmt.Sprintf("unknown card status %q", status),
		}
	}

	cardRepo := repository.NewCardRepository(s.db)
	if err := cardRepo.UpdateStatus(ctx, cardID, status); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, cardNotFound(cardID)
		}
		return nil, internalError("failed to update card status", err)
	}

	card, err := cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, internalError("failed to reload card", err)
	}

	s.logger.Info("card status changed", "card_id", cardID, "status", status)
	return card, nil
}

// RequestBlock blocks a card at its owner's request. Only the owner may
// block a card, and only an ACTIVE card can be blocked.
func (s *CardService) RequestBlock(ctx context.Context, cardID int64, principal auth.Principal) (*models.Card, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, beginTxError(err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	card, err := s.performRequestBlock(ctx, repository.NewCardRepository(tx), cardID, principal)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, commitTxError(err)
	}

	s.logger.Info("card blocked on owner request", "card_id", cardID, "owner_id", card.OwnerID)
	return card, nil
}

// performRequestBlock contains the core block business logic
func (s *CardService) performRequestBlock(
	ctx context.Context,
	cardRepo repository.CardRepository,
	cardID int64,
	principal auth.Principal,
) (*models.Card, error) {
	card, err := cardRepo.FindByIDForUpdate(ctx, cardID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, cardNotFound(cardID)
		}
		return nil, internalError("failed to load card", err)
	}

	if card.OwnerID != principal.UserID {
		s.logger.Warn("card ownership validation failed",
			"card_id", cardID,
			"requester", principal.Username,
		)
		return nil, cardNotFound(cardID)
	}

	if card.Status != models.CardStatusActive {
		return nil, &ServiceError{
			Code:    ErrCodeCardNotActive,
			Message: fmt.Sprintf("card %d is %s; only an active card can be blocked", cardID, card.Status),
		}
	}

	if err := cardRepo.UpdateStatus(ctx, cardID, models.CardStatusBlocked); err != nil {
		return nil, internalError("failed to block card", err)
	}

	card.Status = models.CardStatusBlocked
	return card, nil
}

// SoftDelete marks a card deleted, keeping the row for audit. Deleting
// an already-deleted card is a no-op success.
func (s *CardService) SoftDelete(ctx context.Context, cardID int64) error {
	cardRepo := repository.NewCardRepository(s.db)
	if err := cardRepo.SoftDelete(ctx, cardID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return cardNotFound(cardID)
		}
		return internalError("failed to soft delete card", err)
	}

	s.logger.Info("card soft deleted", "card_id", cardID)
	return nil
}

// GetBalance returns a card's balance. Owner-only; an admin reads any card.
func (s *CardService) GetBalance(ctx context.Context, cardID int64, principal auth.Principal) (decimal.Decimal, error) {
	card, err := s.GetCard(ctx, cardID, principal)
	if err != nil {
		return decimal.Zero, err
	}
	return card.Balance, nil
}

// GetCard returns a card visible to the principal. Admins see deleted
// cards (audit read); owners see only their live cards.
func (s *CardService) GetCard(ctx context.Context, cardID int64, principal auth.Principal) (*models.Card, error) {
	cardRepo := repository.NewCardRepository(s.db)

	var card *models.Card
	var err error
	if principal.IsAdmin() {
		card, err = cardRepo.FindByIDForAudit(ctx, cardID)
	} else {
		card, err = cardRepo.FindByID(ctx, cardID)
	}
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, cardNotFound(cardID)
		}
		return nil, internalError("failed to load card", err)
	}

	if !principal.IsAdmin() && card.OwnerID != principal.UserID {
		return nil, cardNotFound(cardID)
	}
	return card, nil
}

// ListCards returns a page of all cards. Admin operation; the handler
// gates the role and bounds the limit.
func (s *CardService) ListCards(ctx context.Context, offset, limit int) ([]*models.Card, error) {
	cards, err := repository.NewCardRepository(s.db).FindAll(ctx, offset, limit)
	if err != nil {
		return nil, internalError("failed to list cards", err)
	}
	return cards, nil
}

// ListOwnCards returns a page of the principal's cards.
func (s *CardService) ListOwnCards(ctx context.Context, principal auth.Principal, offset, limit int) ([]*models.Card, error) {
	cards, err := repository.NewCardRepository(s.db).FindByOwner(ctx, principal.UserID, offset, limit)
	if err != nil {
		return nil, internalError("failed to list cards", err)
	}
	return cards, nil
}

// ExpireDue transitions ACTIVE cards whose expiry has passed to EXPIRED
// and returns how many cards were affected.
func (s *CardService) ExpireDue(ctx context.Context, asOf time.Time) (int64, error) {
	affected, err := repository.NewCardRepository(s.db).MarkExpired(ctx, asOf)
	if err != nil {
		return 0, internalError("failed to expire cards", err)
	}
	if affected > 0 {
		s.logger.Info("cards expired", "count", affected, "as_of", asOf)
	}
	return affected, nil
}

func cardNotFound(cardID int64) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeCardNotFound,
		Message: fmt.Sprintf("card %d not found", cardID),
	}
}

func internalError(message string, err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeInternalError,
		Message: message,
		Err:     err,
	}
}

func beginTxError(err error) *ServiceError {
	return internalError("failed to start transaction", err)
}

func commitTxError(err error) *ServiceError {
	return internalError("failed to commit transaction", err)
}
