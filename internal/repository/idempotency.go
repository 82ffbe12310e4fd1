package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/bankcards/internal/db"
	"github.com/benx421/bankcards/internal/models"
)

// IdempotencyRepository stores cached responses for idempotent requests.
// Entries are keyed per user; a key presented by a different caller is a
// miss.
type IdempotencyRepository interface {
	Get(ctx context.Context, key string, userID int64, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
}

// idempotencyRepository implements IdempotencyRepository
type idempotencyRepository struct {
	q db.Querier
}

// NewIdempotencyRepository creates a new IdempotencyRepository.
func NewIdempotencyRepository(q db.Querier) IdempotencyRepository {
	return &idempotencyRepository{q: q}
}

// Get returns the cached response for a key, user and path, or nil when
// none exists.
func (r *idempotencyRepository) Get(ctx context.Context, key string, userID int64, requestPath string) (*models.IdempotencyKey, error) {
	query := `
		SELECT key, user_id, request_path, response_status, response_body, created_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2 AND request_path = $3
	`

	var idemKey models.IdempotencyKey
	err := r.q.QueryRowContext(ctx, query, key, userID, requestPath).Scan(
		&idemKey.Key,
		&idemKey.UserID,
		&idemKey.RequestPath,
		&idemKey.ResponseStatus,
		&idemKey.ResponseBody,
		&idemKey.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}
	return &idemKey, nil
}

// Store caches a response. A concurrent insert of the same key wins; the
// conflict is ignored so both requests observe one stored response.
func (r *idempotencyRepository) Store(ctx context.Context, idemKey *models.IdempotencyKey) error {
	query := `
		INSERT INTO idempotency_keys (key, user_id, request_path, response_status, response_body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key, user_id, request_path) DO NOTHING
	`

	_, err := r.q.ExecContext(ctx, query,
		idemKey.Key,
		idemKey.UserID,
		idemKey.RequestPath,
		idemKey.ResponseStatus,
		idemKey.ResponseBody,
		idemKey.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}
	return nil
}
