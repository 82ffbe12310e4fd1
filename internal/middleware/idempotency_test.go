package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benx421/bankcards/internal/auth"
	"github.com/benx421/bankcards/internal/models"
	"github.com/benx421/bankcards/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body)) //nolint:errcheck // test helper
	})
}

// asUser attaches an authenticated principal, the way Authenticate does
// before Idempotency runs.
func asUser(req *http.Request, userID int64) *http.Request {
	principal := auth.Principal{UserID: userID, Username: "tester", Role: models.RoleUser}
	return req.WithContext(ContextWithPrincipal(req.Context(), principal))
}

func TestIdempotency_GETRequestsBypassed(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	middleware := Idempotency(repo, testLogger())

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/transfers", nil), 7)
	req.Header.Set("Idempotency-Key", "test-key")
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.True(t, handlerCalled, "handler should be called for GET requests")
	repo.AssertNotCalled(t, "Get")
	repo.AssertNotCalled(t, "Store")
}

func TestIdempotency_NonIdempotentPathBypassed(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	middleware := Idempotency(repo, testLogger())

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil), 7)
	req.Header.Set("Idempotency-Key", "test-key")
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.True(t, handlerCalled, "handler should be called for non-idempotent paths")
	repo.AssertNotCalled(t, "Get")
	repo.AssertNotCalled(t, "Store")
}

func TestIdempotency_MissingKeyPassesThrough(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	middleware := Idempotency(repo, testLogger())

	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil), 7)
	// No Idempotency-Key header
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.True(t, handlerCalled, "handler should be called without idempotency key")
	repo.AssertNotCalled(t, "Get")
	repo.AssertNotCalled(t, "Store")
}

func TestIdempotency_FirstRequestCached(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	repo.On("Get", mock.Anything, "unique-key-123", int64(7), "/api/v1/transfers").Return(nil, nil)
	repo.On("Store", mock.Anything, mock.AnythingOfType("*models.IdempotencyKey")).Return(nil)

	middleware := Idempotency(repo, testLogger())
	handler := testHandler(http.StatusCreated, `{"status":"COMPLETED"}`)

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil), 7)
	req.Header.Set("Idempotency-Key", "unique-key-123")
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"status":"COMPLETED"}`, rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Idempotent-Replayed"), "first request should not have replay header")

	repo.AssertCalled(t, "Store", mock.Anything, mock.AnythingOfType("*models.IdempotencyKey"))
}

func TestIdempotency_SecondRequestReturnsCached(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)

	cached := &models.IdempotencyKey{
		Key:            "duplicate-key",
		UserID:         7,
		RequestPath:    "/api/v1/transfers",
		ResponseStatus: http.StatusCreated,
		ResponseBody:   `{"call":1}`,
	}
	repo.On("Get", mock.Anything, "duplicate-key", int64(7), "/api/v1/transfers").Return(cached, nil)

	middleware := Idempotency(repo, testLogger())
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil), 7)
	req.Header.Set("Idempotency-Key", "duplicate-key")
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.False(t, handlerCalled, "handler must not run on replay")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"call":1}`, rec.Body.String())
	assert.Equal(t, "true", rec.Header().Get("X-Idempotent-Replayed"))
}

func TestIdempotency_UnauthenticatedRequestNeverReplayed(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)

	middleware := Idempotency(repo, testLogger())
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusUnauthorized)
	})

	// Same key another user already used, but no principal on the request
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
	req.Header.Set("Idempotency-Key", "duplicate-key")
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.True(t, handlerCalled, "request must fall through to the handler")
	assert.Empty(t, rec.Header().Get("X-Idempotent-Replayed"))
	repo.AssertNotCalled(t, "Get")
	repo.AssertNotCalled(t, "Store")
}

func TestIdempotency_KeyScopedToUser(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)

	// User 7 already holds this key; user 8 presenting it is a cache miss
	repo.On("Get", mock.Anything, "shared-key", int64(8), "/api/v1/transfers").Return(nil, nil)

	var stored *models.IdempotencyKey
	repo.On("Store", mock.Anything, mock.AnythingOfType("*models.IdempotencyKey")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.IdempotencyKey)
		}).
		Return(nil)

	middleware := Idempotency(repo, testLogger())
	handler := testHandler(http.StatusCreated, `{"call":2}`)

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil), 8)
	req.Header.Set("Idempotency-Key", "shared-key")
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"call":2}`, rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Idempotent-Replayed"))
	if assert.NotNil(t, stored) {
		assert.Equal(t, int64(8), stored.UserID)
	}
}

func TestIdempotency_BehindAuthRejectsAnonymousReplay(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Minute)
	token, err := tokens.Issue(&models.User{ID: 7, Username: "alice", Role: models.RoleUser})
	require.NoError(t, err)

	repo := mocks.NewMockIdempotencyRepository(t)
	repo.On("Get", mock.Anything, "one-shot-key", int64(7), "/api/v1/cards").Return(nil, nil).Once()
	repo.On("Store", mock.Anything, mock.AnythingOfType("*models.IdempotencyKey")).Return(nil).Once()

	stack := Authenticate(tokens, testLogger())(
		Idempotency(repo, testLogger())(
			testHandler(http.StatusCreated, `{"number":"4111110000420005"}`),
		),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cards", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Idempotency-Key", "one-shot-key")
	rec := httptest.NewRecorder()
	stack.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same key, no token: the cached card number must stay hidden
	req = httptest.NewRequest(http.MethodPost, "/api/v1/cards", nil)
	req.Header.Set("Idempotency-Key", "one-shot-key")
	rec = httptest.NewRecorder()
	stack.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "4111110000420005")
	assert.Empty(t, rec.Header().Get("X-Idempotent-Replayed"))
}

func TestIdempotency_ErrorResponsesNotCached(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	repo.On("Get", mock.Anything, "err-key", int64(7), "/api/v1/transfers").Return(nil, nil)

	middleware := Idempotency(repo, testLogger())
	handler := testHandler(http.StatusUnprocessableEntity, `{"error":"insufficient_funds"}`)

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil), 7)
	req.Header.Set("Idempotency-Key", "err-key")
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	repo.AssertNotCalled(t, "Store")
}

func TestIdempotency_CancelPathCovered(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	path := "/api/v1/transfers/0c3f6f58-6c2f-4e3f-9e6a-0d5b5f4f7a11/cancel"
	repo.On("Get", mock.Anything, "cancel-key", int64(7), path).Return(nil, nil)
	repo.On("Store", mock.Anything, mock.AnythingOfType("*models.IdempotencyKey")).Return(nil)

	middleware := Idempotency(repo, testLogger())
	handler := testHandler(http.StatusOK, `{"status":"FAILED"}`)

	req := asUser(httptest.NewRequest(http.MethodPost, path, nil), 7)
	req.Header.Set("Idempotency-Key", "cancel-key")
	rec := httptest.NewRecorder()

	middleware(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertCalled(t, "Store", mock.Anything, mock.AnythingOfType("*models.IdempotencyKey"))
}
