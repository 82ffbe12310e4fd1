package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benx421/bankcards/internal/auth"
	"github.com/benx421/bankcards/internal/middleware"
	"github.com/benx421/bankcards/internal/models"
	"github.com/benx421/bankcards/internal/service"
	"github.com/benx421/bankcards/internal/service/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedRequest(method, target, body string, principal auth.Principal) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return r.WithContext(middleware.ContextWithPrincipal(r.Context(), principal))
}

var testOwner = auth.Principal{UserID: 42, Username: "alice", Role: models.RoleUser}
var testAdmin = auth.Principal{UserID: 1, Username: "root", Role: models.RoleAdmin}

func TestCreateCard_Success(t *testing.T) {
	mockCards := mocks.NewMockCardManager(t)
	handler := NewHandler(mockCards, nil, nil, nil, 100, testLogger())

	issued := &models.Card{
		ID:        7,
		OwnerID:   42,
		Number:    "4111110000420005",
		Type:      models.CardTypeVisa,
		Status:    models.CardStatusActive,
		Balance:   decimal.Zero,
		ExpiresAt: time.Now().AddDate(5, 0, 0),
	}
	mockCards.On("Issue", mock.Anything, int64(42), models.CardTypeVisa).Return(issued, nil)

	req := authedRequest(http.MethodPost, "/api/v1/cards", `{"type":"VISA"}`, testOwner)
	rec := httptest.NewRecorder()

	handler.CreateCard(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	// issuance is the one response with the unmasked number
	assert.Contains(t, rec.Body.String(), `"number":"4111110000420005"`)
	assert.Contains(t, rec.Body.String(), `"balance":"0.00"`)
}

func TestCreateCard_ForAnotherUserRequiresAdmin(t *testing.T) {
	mockCards := mocks.NewMockCardManager(t)
	handler := NewHandler(mockCards, nil, nil, nil, 100, testLogger())

	req := authedRequest(http.MethodPost, "/api/v1/cards", `{"owner_id":99,"type":"VISA"}`, testOwner)
	rec := httptest.NewRecorder()

	handler.CreateCard(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockCards.AssertNotCalled(t, "Issue")
}

func TestCreateCard_SequenceExhausted(t *testing.T) {
	mockCards := mocks.NewMockCardManager(t)
	handler := NewHandler(mockCards, nil, nil, nil, 100, testLogger())

	mockCards.On("Issue", mock.Anything, int64(42), models.CardTypeVisa).
		Return(nil, &service.ServiceError{Code: service.ErrCodeSequenceExhausted, Message: "exhausted"})

	req := authedRequest(http.MethodPost, "/api/v1/cards", `{"type":"VISA"}`, testOwner)
	rec := httptest.NewRecorder()

	handler.CreateCard(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrCodeSequenceExhausted)
}

func TestGetCard_MasksNumber(t *testing.T) {
	mockCards := mocks.NewMockCardManager(t)
	handler := NewHandler(mockCards, nil, nil, nil, 100, testLogger())

	card := &models.Card{
		ID:      7,
		OwnerID: 42,
		Number:  "4111111234567890",
		Type:    models.CardTypeVisa,
		Status:  models.CardStatusActive,
		Balance: decimal.NewFromInt(150),
	}
	mockCards.On("GetCard", mock.Anything, int64(7), testOwner).Return(card, nil)

	req := authedRequest(http.MethodGet, "/api/v1/cards/7", "", testOwner)
	req.SetPathValue("cardId", "7")
	rec := httptest.NewRecorder()

	handler.GetCard(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"number":"**** **** **** 7890"`)
	assert.NotContains(t, rec.Body.String(), "4111111234567890")
}

func TestGetCard_NotFound(t *testing.T) {
	mockCards := mocks.NewMockCardManager(t)
	handler := NewHandler(mockCards, nil, nil, nil, 100, testLogger())

	mockCards.On("GetCard", mock.Anything, int64(7), testOwner).
		Return(nil, &service.ServiceError{Code: service.ErrCodeCardNotFound, Message: "card 7 not found"})

	req := authedRequest(http.MethodGet, "/api/v1/cards/7", "", testOwner)
	req.SetPathValue("cardId", "7")
	rec := httptest.NewRecorder()

	handler.GetCard(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCardBalance(t *testing.T) {
	mockCards := mocks.NewMockCardManager(t)
	handler := NewHandler(mockCards, nil, nil, nil, 100, testLogger())

	mockCards.On("GetBalance", mock.Anything, int64(7), testOwner).
		Return(decimal.RequireFromString("1234.50"), nil)

	req := authedRequest(http.MethodGet, "/api/v1/cards/7/balance", "", testOwner)
	req.SetPathValue("cardId", "7")
	rec := httptest.NewRecorder()

	handler.GetCardBalance(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"card_id":7,"balance":"1234.50"}`, rec.Body.String())
}

func TestBlockCard_NotActive(t *testing.T) {
	mockCards := mocks.NewMockCardManager(t)
	handler := NewHandler(mockCards, nil, nil, nil, 100, testLogger())

	mockCards.On("RequestBlock", mock.Anything, int64(7), testOwner).
		Return(nil, &service.ServiceError{Code: service.ErrCodeCardNotActive, Message: "card 7 is BLOCKED"})

	req := authedRequest(http.MethodPost, "/api/v1/cards/7/block", "", testOwner)
	req.SetPathValue("cardId", "7")
	rec := httptest.NewRecorder()

	handler.BlockCard(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrCodeCardNotActive)
}

func TestUpdateCardStatus(t *testing.T) {
	mockCards := mocks.NewMockCardManager(t)
	handler := NewHandler(mockCards, nil, nil, nil, 100, testLogger())

	card := &models.Card{ID: 7, OwnerID: 42, Number: "4111110000420005", Type: models.CardTypeVisa, Status: models.CardStatusExpired}
	mockCards.On("SetStatus", mock.Anything, int64(7), models.CardStatusExpired).Return(card, nil)

	req := authedRequest(http.MethodPut, "/api/v1/cards/7/status", `{"status":"EXPIRED"}`, testAdmin)
	req.SetPathValue("cardId", "7")
	rec := httptest.NewRecorder()

	handler.UpdateCardStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"EXPIRED"`)
}

func TestDeleteCard(t *testing.T) {
	mockCards := mocks.NewMockCardManager(t)
	handler := NewHandler(mockCards, nil, nil, nil, 100, testLogger())

	mockCards.On("SoftDelete", mock.Anything, int64(7)).Return(nil)

	req := authedRequest(http.MethodDelete, "/api/v1/cards/7", "", testAdmin)
	req.SetPathValue("cardId", "7")
	rec := httptest.NewRecorder()

	handler.DeleteCard(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListCards_OwnerSeesOwnCards(t *testing.T) {
	mockCards := mocks.NewMockCardManager(t)
	handler := NewHandler(mockCards, nil, nil, nil, 100, testLogger())

	mockCards.On("ListOwnCards", mock.Anything, testOwner, 0, 100).
		Return([]*models.Card{}, nil)

	req := authedRequest(http.MethodGet, "/api/v1/cards", "", testOwner)
	rec := httptest.NewRecorder()

	handler.ListCards(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockCards.AssertNotCalled(t, "ListCards")
}

func TestListCards_LimitClamped(t *testing.T) {
	mockCards := mocks.NewMockCardManager(t)
	handler := NewHandler(mockCards, nil, nil, nil, 100, testLogger())

	mockCards.On("ListCards", mock.Anything, 0, 100).Return([]*models.Card{}, nil)

	req := authedRequest(http.MethodGet, "/api/v1/cards?limit=5000", "", testAdmin)
	rec := httptest.NewRecorder()

	handler.ListCards(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
