package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/bankcards/internal/db"
	"github.com/benx421/bankcards/internal/models"
)

// UserRepository defines the interface for account-holder data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SetBanned(ctx context.Context, id int64, banned bool) error
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context, offset, limit int) ([]*models.User, error)
}

const userColumns = `id, username, email, password_hash, role, banned, created_at, updated_at`

// userRepository implements UserRepository
type userRepository struct {
	q db.Querier
}

// NewUserRepository creates a new UserRepository over a pool or transaction handle.
func NewUserRepository(q db.Querier) UserRepository {
	return &userRepository{q: q}
}

// Create inserts a new user and returns it with its assigned id.
func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, role, banned)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	row := r.q.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Banned,
	)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// FindByID retrieves a user by id.
func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.findOne(ctx, query, id)
}

// FindByUsername retrieves a user by username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.findOne(ctx, query, username)
}

// ExistsByUsername reports whether a user with the username exists.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

// ExistsByEmail reports whether a user with the email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

// SetBanned updates the banned flag of a user.
func (r *userRepository) SetBanned(ctx context.Context, id int64, banned bool) error {
	query := `
		UPDATE users
		SET banned = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query, id, banned)
	if err != nil {
		return fmt.Errorf("failed to update banned flag: %w", err)
	}
	return requireRow(result)
}

// Delete removes a user. Fails while the user still owns cards because
// of the foreign key on cards.owner_id.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireRow(result)
}

// FindAll lists users ordered by id.
func (r *userRepository) FindAll(ctx context.Context, offset, limit int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.q.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

func (r *userRepository) findOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	user, err := scanUser(r.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (r *userRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := r.q.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Banned,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
