package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/bankcards/internal/db"
	"github.com/benx421/bankcards/internal/models"
	"github.com/google/uuid"
)

// TransferRepository defines the interface for transfer data access
type TransferRepository interface {
	Create(ctx context.Context, transfer *models.Transfer) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transfer, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Transfer, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.TransferStatus) error
	FindAll(ctx context.Context, offset, limit int) ([]*models.Transfer, error)
}

const transferColumns = `id, from_card_id, to_card_id, amount, status, created_at, updated_at`

// transferRepository implements TransferRepository
type transferRepository struct {
	q db.Querier
}

// NewTransferRepository creates a new TransferRepository over a pool or transaction handle.
func NewTransferRepository(q db.Querier) TransferRepository {
	return &transferRepository{q: q}
}

// Create inserts a transfer record.
func (r *transferRepository) Create(ctx context.Context, transfer *models.Transfer) error {
	query := `
		INSERT INTO transfers (id, from_card_id, to_card_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		transfer.ID,
		transfer.FromCardID,
		transfer.ToCardID,
		transfer.Amount,
		transfer.Status,
		transfer.CreatedAt,
		transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transfer: %w", err)
	}
	return nil
}

// FindByID retrieves a transfer by id.
func (r *transferRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	return r.findOne(ctx, query, id)
}

// FindByIDForUpdate retrieves a transfer by id and takes a row lock on
// it, serializing concurrent cancellations of the same transfer.
func (r *transferRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, query, id)
}

// UpdateStatus sets the status of a transfer.
func (r *transferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TransferStatus) error {
	query := `
		UPDATE transfers
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update transfer status: %w", err)
	}
	return requireRow(result)
}

// FindAll lists transfers most recent first.
func (r *transferRepository) FindAll(ctx context.Context, offset, limit int) ([]*models.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.q.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var transfers []*models.Transfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}
	return transfers, nil
}

func (r *transferRepository) findOne(ctx context.Context, query string, args ...any) (*models.Transfer, error) {
	transfer, err := scanTransfer(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transfer: %w", err)
	}
	return transfer, nil
}

func scanTransfer(row rowScanner) (*models.Transfer, error) {
	var transfer models.Transfer
	err := row.Scan(
		&transfer.ID,
		&transfer.FromCardID,
		&transfer.ToCardID,
		&transfer.Amount,
		&transfer.Status,
		&transfer.CreatedAt,
		&transfer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}
