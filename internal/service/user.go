package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/benx421/bankcards/internal/auth"
	"github.com/benx421/bankcards/internal/db"
	"github.com/benx421/bankcards/internal/models"
	"github.com/benx421/bankcards/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserService manages account holders and credential verification
type UserService struct {
	db     *db.DB
	tokens *auth.TokenIssuer
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(database *db.DB, tokens *auth.TokenIssuer, logger *slog.Logger) *UserService {
	return &UserService{
		db:     database,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new account holder with the USER role.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidCredentials, Message: err.Error()}
	}
	if err := ValidateEmail(email); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidCredentials, Message: err.Error()}
	}
	if err := ValidatePassword(password); err != nil {
		return nil, &ServiceError{Code: ErrCodeInvalidCredentials, Message: err.Error()}
	}

	userRepo := repository.NewUserRepository(s.db)

	taken, err := userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, internalError("failed to check username", err)
	}
	if taken {
		return nil, userExists("username")
	}

	taken, err = userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, internalError("failed to check email", err)
	}
	if taken {
		return nil, userExists("email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internalError("failed to hash password", err)
	}

	user, err := userRepo.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			// lost a race with a concurrent registration
			return nil, userExists("username or email")
		}
		return nil, internalError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies credentials and returns a signed access token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	userRepo := repository.NewUserRepository(s.db)

	user, err := userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, invalidCredentials()
		}
		return "", nil, internalError("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, invalidCredentials()
	}

	if user.Banned {
		return "", nil, &ServiceError{
			Code:    ErrCodeUserBanned,
			Message: "account is banned",
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, internalError("failed to issue token", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return token, user, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := repository.NewUserRepository(s.db).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, userNotFound(userID)
		}
		return nil, internalError("failed to load user", err)
	}
	return user, nil
}

// Ban marks a user banned, which blocks future logins. Admin operation.
func (s *UserService) Ban(ctx context.Context, userID int64) error {
	if err := repository.NewUserRepository(s.db).SetBanned(ctx, userID, true); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return userNotFound(userID)
		}
		return internalError("failed to ban user", err)
	}

	s.logger.Info("user banned", "user_id", userID)
	return nil
}

// Delete removes a user without cards. Admin operation.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	if err := repository.NewUserRepository(s.db).Delete(ctx, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return userNotFound(userID)
		}
		return internalError("failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

// ListUsers returns a page of users. Admin operation.
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) ([]*models.User, error) {
	users, err := repository.NewUserRepository(s.db).FindAll(ctx, offset, limit)
	if err != nil {
		return nil, internalError("failed to list users", err)
	}
	return users, nil
}

func userNotFound(userID int64) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeUserNotFound,
		Message: fmt.Sprintf("user %d not found", userID),
	}
}

func userExists(field string) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeUserExists,
		Message: fmt.Sprintf("a user with this %s already exists", field),
	}
}

func invalidCredentials() *ServiceError {
	return &ServiceError{
		Code:    ErrCodeInvalidCredentials,
		Message: "invalid username or password",
	}
}
