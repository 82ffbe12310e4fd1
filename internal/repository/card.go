// Package repository provides data access layer implementations for the bankcards API.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benx421/bankcards/internal/db"
	"github.com/benx421/bankcards/internal/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CardRepository defines the interface for card data access.
//
// Lookups exclude soft-deleted cards; FindByIDForAudit is the only read
// that returns them.
type CardRepository interface {
	Create(ctx context.Context, card *models.Card) (*models.Card, error)
	FindByID(ctx context.Context, id int64) (*models.Card, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*models.Card, error)
	FindByIDForAudit(ctx context.Context, id int64) (*models.Card, error)
	FindByNumber(ctx context.Context, number string) (*models.Card, error)
	FindByStatus(ctx context.Context, status models.CardStatus, offset, limit int) ([]*models.Card, error)
	FindLastNumber(ctx context.Context, ownerID int64, cardType models.CardType) (string, error)
	FindAll(ctx context.Context, offset, limit int) ([]*models.Card, error)
	FindByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Card, error)
	UpdateStatus(ctx context.Context, id int64, status models.CardStatus) error
	AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) error
	SoftDelete(ctx context.Context, id int64) error
	MarkExpired(ctx context.Context, asOf time.Time) (int64, error)
}

const cardColumns = `id, number, owner_id, type, status, expires_at, deleted, balance, created_at, updated_at`

// cardRepository implements CardRepository
type cardRepository struct {
	q db.Querier
}

// NewCardRepository creates a new CardRepository over a pool or transaction handle.
func NewCardRepository(q db.Querier) CardRepository {
	return &cardRepository{q: q}
}

// Create inserts a new card and returns it with its assigned id.
func (r *cardRepository) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	query := `
		INSERT INTO cards (number, owner_id, type, status, expires_at, deleted, balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + cardColumns

	row := r.q.QueryRowContext(ctx, query,
		card.Number,
		card.OwnerID,
		card.Type,
		card.Status,
		card.ExpiresAt,
		card.Deleted,
		card.Balance,
	)

	created, err := scanCard(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateCardNumber
		}
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return created, nil
}

// FindByID retrieves a non-deleted card by id.
func (r *cardRepository) FindByID(ctx context.Context, id int64) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 AND NOT deleted`
	return r.findOne(ctx, query, id)
}

// FindByIDForUpdate retrieves a non-deleted card by id and takes a row
// lock on it. Callers locking more than one card must lock in ascending
// id order.
func (r *cardRepository) FindByIDForUpdate(ctx context.Context, id int64) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 AND NOT deleted FOR UPDATE`
	return r.findOne(ctx, query, id)
}

// FindByIDForAudit retrieves a card by id regardless of its deleted flag.
func (r *cardRepository) FindByIDForAudit(ctx context.Context, id int64) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`
	return r.findOne(ctx, query, id)
}

// FindByNumber retrieves a non-deleted card by its card number.
func (r *cardRepository) FindByNumber(ctx context.Context, number string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE number = $1 AND NOT deleted`
	return r.findOne(ctx, query, number)
}

// FindByStatus lists non-deleted cards in the given status.
func (r *cardRepository) FindByStatus(ctx context.Context, status models.CardStatus, offset, limit int) ([]*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE status = $1 AND NOT deleted
		ORDER BY id
		OFFSET $2 LIMIT $3
	`
	return r.findMany(ctx, query, status, offset, limit)
}

// FindLastNumber returns the most recently issued card number of the
// given type for an owner, or an empty string when none exists. Deleted
// cards still count: their numbers stay reserved.
func (r *cardRepository) FindLastNumber(ctx context.Context, ownerID int64, cardType models.CardType) (string, error) {
	query := `
		SELECT number
		FROM cards
		WHERE owner_id = $1 AND type = $2
		ORDER BY id DESC
		LIMIT 1
	`

	var number string
	err := r.q.QueryRowContext(ctx, query, ownerID, cardType).Scan(&number)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to find last card number: %w", err)
	}
	return number, nil
}

// FindAll lists non-deleted cards ordered by id.
func (r *cardRepository) FindAll(ctx context.Context, offset, limit int) ([]*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE NOT deleted
		ORDER BY id
		OFFSET $1 LIMIT $2
	`
	return r.findMany(ctx, query, offset, limit)
}

// FindByOwner lists an owner's non-deleted cards ordered by id.
func (r *cardRepository) FindByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE owner_id = $1 AND NOT deleted
		ORDER BY id
		OFFSET $2 LIMIT $3
	`
	return r.findMany(ctx, query, ownerID, offset, limit)
}

// UpdateStatus sets the status of a non-deleted card.
func (r *cardRepository) UpdateStatus(ctx context.Context, id int64, status models.CardStatus) error {
	query := `
		UPDATE cards
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND NOT deleted
	`

	result, err := r.q.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update card status: %w", err)
	}
	return requireRow(result)
}

// AdjustBalance atomically adjusts the card balance by the given delta.
// The balance CHECK constraint is the last line of defense against a
// negative result; callers validate funds under a row lock first.
func (r *cardRepository) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) error {
	query := `
		UPDATE cards
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1 AND NOT deleted
	`

	result, err := r.q.ExecContext(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust card balance: %w", err)
	}
	return requireRow(result)
}

// SoftDelete marks a card deleted. Re-deleting an already-deleted card
// succeeds without changing anything.
func (r *cardRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE cards
		SET deleted = TRUE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete card: %w", err)
	}
	return requireRow(result)
}

// MarkExpired flips ACTIVE cards whose expiry has passed to EXPIRED and
// returns how many were affected.
func (r *cardRepository) MarkExpired(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE cards
		SET status = $2, updated_at = NOW()
		WHERE status = $3 AND expires_at <= $1 AND NOT deleted
	`

	result, err := r.q.ExecContext(ctx, query, asOf, models.CardStatusExpired, models.CardStatusActive)
	if err != nil {
		return 0, fmt.Errorf("failed to mark expired cards: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

func (r *cardRepository) findOne(ctx context.Context, query string, args ...any) (*models.Card, error) {
	card, err := scanCard(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}

func (r *cardRepository) findMany(ctx context.Context, query string, args ...any) ([]*models.Card, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var cards []*models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}
	return cards, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	var card models.Card
	err := row.Scan(
		&card.ID,
		&card.Number,
		&card.OwnerID,
		&card.Type,
		&card.Status,
		&card.ExpiresAt,
		&card.Deleted,
		&card.Balance,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
