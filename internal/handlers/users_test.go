package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benx421/bankcards/internal/models"
	"github.com/benx421/bankcards/internal/service"
	"github.com/benx421/bankcards/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRegister_Success(t *testing.T) {
	mockUsers := mocks.NewMockUserManager(t)
	handler := NewHandler(nil, nil, mockUsers, nil, 100, testLogger())

	created := &models.User{ID: 42, Username: "alice", Email: "alice@example.com", Role: models.RoleUser}
	mockUsers.On("Register", mock.Anything, "alice", "alice@example.com", "long enough password").
		Return(created, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"long enough password"}`))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	mockUsers := mocks.NewMockUserManager(t)
	handler := NewHandler(nil, nil, mockUsers, nil, 100, testLogger())

	mockUsers.On("Register", mock.Anything, "alice", "alice@example.com", "long enough password").
		Return(nil, &service.ServiceError{Code: service.ErrCodeUserExists, Message: "taken"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"long enough password"}`))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_Success(t *testing.T) {
	mockUsers := mocks.NewMockUserManager(t)
	handler := NewHandler(nil, nil, mockUsers, nil, 100, testLogger())

	user := &models.User{ID: 42, Username: "alice", Role: models.RoleUser}
	mockUsers.On("Login", mock.Anything, "alice", "long enough password").
		Return("signed.jwt.token", user, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"alice","password":"long enough password"}`))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"signed.jwt.token"`)
}

func TestLogin_BadCredentialsReturn401(t *testing.T) {
	mockUsers := mocks.NewMockUserManager(t)
	handler := NewHandler(nil, nil, mockUsers, nil, 100, testLogger())

	mockUsers.On("Login", mock.Anything, "alice", "wrong").
		Return("", nil, &service.ServiceError{Code: service.ErrCodeInvalidCredentials, Message: "invalid username or password"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_BannedUserReturns403(t *testing.T) {
	mockUsers := mocks.NewMockUserManager(t)
	handler := NewHandler(nil, nil, mockUsers, nil, 100, testLogger())

	mockUsers.On("Login", mock.Anything, "alice", "long enough password").
		Return("", nil, &service.ServiceError{Code: service.ErrCodeUserBanned, Message: "account is banned"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"alice","password":"long enough password"}`))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBanUser(t *testing.T) {
	mockUsers := mocks.NewMockUserManager(t)
	handler := NewHandler(nil, nil, mockUsers, nil, 100, testLogger())

	mockUsers.On("Ban", mock.Anything, int64(42)).Return(nil)

	req := authedRequest(http.MethodPost, "/api/v1/users/42/ban", "", testAdmin)
	req.SetPathValue("userId", "42")
	rec := httptest.NewRecorder()

	handler.BanUser(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
