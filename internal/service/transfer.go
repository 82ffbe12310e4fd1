package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/benx421/bankcards/internal/auth"
	"github.com/benx421/bankcards/internal/db"
	"github.com/benx421/bankcards/internal/models"
	"github.com/benx421/bankcards/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferService moves funds between two cards of the same owner as one
// atomic unit and supports compensating cancellation.
type TransferService struct {
	db     *db.DB
	logger *slog.Logger
}

// NewTransferService creates a new TransferService
func NewTransferService(database *db.DB, logger *slog.Logger) *TransferService {
	return &TransferService{
		db:     database,
		logger: logger,
	}
}

// Transfer debits the sender and credits the receiver inside one database
// transaction. Both card rows are locked before any validation against
// their state, always in ascending card-id order so two transfers over
// the same pair in opposite directions cannot deadlock. A failed
// validation rolls back with no observable effect.
func (s *TransferService) Transfer(
	ctx context.Context,
	fromCardID, toCardID int64,
	amount decimal.Decimal,
	principal auth.Principal,
) (*models.Transfer, error) {
	if fromCardID == toCardID {
		return nil, &ServiceError{
			Code:    ErrCodeSameCard,
			Message: "cannot transfer a card to itself",
		}
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeInvalidAmount,
			Message: err.Error(),
		}
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, beginTxError(err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	transfer, err := s.performTransfer(
		ctx,
		repository.NewCardRepository(tx),
		repository.NewTransferRepository(tx),
		fromCardID, toCardID, amount, principal,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, commitTxError(err)
	}

	s.logger.Info("transfer completed",
		"transfer_id", transfer.ID,
		"from_card_id", fromCardID,
		"to_card_id", toCardID,
		"amount", amount,
	)
	return transfer, nil
}

// performTransfer contains the core transfer business logic
func (s *TransferService) performTransfer(
	ctx context.Context,
	cardRepo repository.CardRepository,
	transferRepo repository.TransferRepository,
	fromCardID, toCardID int64,
	amount decimal.Decimal,
	principal auth.Principal,
) (*models.Transfer, error) {
	fromCard, toCard, err := lockCardPair(ctx, cardRepo, fromCardID, toCardID)
	if err != nil {
		return nil, err
	}

	if fromCard.Status == models.CardStatusBlocked || fromCard.Status == models.CardStatusExpired {
		return nil, &ServiceError{
			Code:    ErrCodeSenderLocked,
			Message: fmt.Sprintf("sender card %d is %s", fromCardID, fromCard.Status),
		}
	}

	if fromCard.OwnerID != toCard.OwnerID {
		return nil, &ServiceError{
			Code:    ErrCodeCrossOwnerTransfer,
			Message: "transfers are allowed only between cards of the same owner",
		}
	}

	if !principal.IsAdmin() && fromCard.OwnerID != principal.UserID {
		// ownership mismatch collapses to not-found
		return nil, cardNotFound(fromCardID)
	}

	if fromCard.Balance.LessThan(amount) {
		return nil, &ServiceError{
			Code: ErrCodeInsufficientFunds,
			Message: fmt.Sprintf("card %d balance %s is less than transfer amount %s",
				fromCardID, fromCard.Balance, amount),
		}
	}

	if err := cardRepo.AdjustBalance(ctx, fromCardID, amount.Neg()); err != nil {
		return nil, internalError("failed to debit sender", err)
	}
	if err := cardRepo.AdjustBalance(ctx, toCardID, amount); err != nil {
		return nil, internalError("failed to credit receiver", err)
	}

	now := time.Now()
	transfer := &models.Transfer{
		ID:         uuid.New(),
		FromCardID: fromCardID,
		ToCardID:   toCardID,
		Amount:     amount,
		Status:     models.TransferStatusCompleted,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := transferRepo.Create(ctx, transfer); err != nil {
		return nil, internalError("failed to record transfer", err)
	}
	return transfer, nil
}

// Cancel reverses a completed transfer by crediting the amount back to
// the sender card and marking the transfer FAILED. A transfer can be
// cancelled at most once.
// Cancellation does not re-debit the receiver.
func (s *TransferService) Cancel(ctx context.Context, transferID uuid.UUID, principal auth.Principal) (*models.Transfer, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, beginTxError(err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	transfer, err := s.performCancel(
		ctx,
		repository.NewCardRepository(tx),
		repository.NewTransferRepository(tx),
		transferID, principal,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, commitTxError(err)
	}

	s.logger.Info("transfer cancelled",
		"transfer_id", transferID,
		"from_card_id", transfer.FromCardID,
		"amount", transfer.Amount,
	)
	return transfer, nil
}

// performCancel contains the core cancellation business logic
func (s *TransferService) performCancel(
	ctx context.Context,
	cardRepo repository.CardRepository,
	transferRepo repository.TransferRepository,
	transferID uuid.UUID,
	principal auth.Principal,
) (*models.Transfer, error) {
	transfer, err := transferRepo.FindByIDForUpdate(ctx, transferID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, transferNotFound(transferID)
		}
		return nil, internalError("failed to load transfer", err)
	}

	if transfer.Status != models.TransferStatusCompleted {
		return nil, &ServiceError{
			Code:    ErrCodeNotCancellable,
			Message: fmt.Sprintf("transfer %s is %s; only a completed transfer can be cancelled", transferID, transfer.Status),
		}
	}

	fromCard, err := cardRepo.FindByIDForUpdate(ctx, transfer.FromCardID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, cardNotFound(transfer.FromCardID)
		}
		return nil, internalError("failed to load sender card", err)
	}

	if !principal.IsAdmin() && fromCard.OwnerID != principal.UserID {
		return nil, transferNotFound(transferID)
	}

	if err := cardRepo.AdjustBalance(ctx, transfer.FromCardID, transfer.Amount); err != nil {
		return nil, internalError("failed to credit sender", err)
	}

	if err := transferRepo.UpdateStatus(ctx, transferID, models.TransferStatusFailed); err != nil {
		return nil, internalError("failed to update transfer status", err)
	}

	transfer.Status = models.TransferStatusFailed
	return transfer, nil
}

// GetTransfer returns a transfer visible to the principal: its sender's
// owner or an admin.
func (s *TransferService) GetTransfer(ctx context.Context, transferID uuid.UUID, principal auth.Principal) (*models.Transfer, error) {
	transferRepo := repository.NewTransferRepository(s.db)
	transfer, err := transferRepo.FindByID(ctx, transferID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, transferNotFound(transferID)
		}
		return nil, internalError("failed to load transfer", err)
	}

	if !principal.IsAdmin() {
		fromCard, err := repository.NewCardRepository(s.db).FindByIDForAudit(ctx, transfer.FromCardID)
		if err != nil || fromCard.OwnerID != principal.UserID {
			return nil, transferNotFound(transferID)
		}
	}
	return transfer, nil
}

// ListTransfers returns a page of transfers, most recent first. Admin
// operation.
func (s *TransferService) ListTransfers(ctx context.Context, offset, limit int) ([]*models.Transfer, error) {
	transfers, err := repository.NewTransferRepository(s.db).FindAll(ctx, offset, limit)
	if err != nil {
		return nil, internalError("failed to list transfers", err)
	}
	return transfers, nil
}

// lockCardPair locks both cards in ascending id order and returns them
// as (from, to).
func lockCardPair(ctx context.Context, cardRepo repository.CardRepository, fromCardID, toCardID int64) (*models.Card, *models.Card, error) {
	firstID, secondID := fromCardID, toCardID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := cardRepo.FindByIDForUpdate(ctx, firstID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil, cardNotFound(firstID)
		}
		return nil, nil, internalError("failed to load card", err)
	}

	second, err := cardRepo.FindByIDForUpdate(ctx, secondID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil, cardNotFound(secondID)
		}
		return nil, nil, internalError("failed to load card", err)
	}

	if first.ID == fromCardID {
		return first, second, nil
	}
	return second, first, nil
}

func transferNotFound(id uuid.UUID) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeTransferNotFound,
		Message: fmt.Sprintf("transfer %s not found", id),
	}
}
