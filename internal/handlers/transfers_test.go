package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benx421/bankcards/internal/models"
	"github.com/benx421/bankcards/internal/service"
	"github.com/benx421/bankcards/internal/service/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateTransfer_Success(t *testing.T) {
	mockTransfers := mocks.NewMockTransferManager(t)
	handler := NewHandler(nil, mockTransfers, nil, nil, 100, testLogger())

	amount := decimal.RequireFromString("150.00")
	transfer := &models.Transfer{
		ID:         uuid.New(),
		FromCardID: 1,
		ToCardID:   2,
		Amount:     amount,
		Status:     models.TransferStatusCompleted,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	mockTransfers.On("Transfer", mock.Anything, int64(1), int64(2), amount, testOwner).
		Return(transfer, nil)

	req := authedRequest(http.MethodPost, "/api/v1/transfers",
		`{"from_card_id":1,"to_card_id":2,"amount":"150.00"}`, testOwner)
	rec := httptest.NewRecorder()

	handler.CreateTransfer(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"COMPLETED"`)
	assert.Contains(t, rec.Body.String(), `"amount":"150.00"`)
}

func TestCreateTransfer_RejectsNumericAmount(t *testing.T) {
	mockTransfers := mocks.NewMockTransferManager(t)
	handler := NewHandler(nil, mockTransfers, nil, nil, 100, testLogger())

	req := authedRequest(http.MethodPost, "/api/v1/transfers",
		`{"from_card_id":1,"to_card_id":2,"amount":150}`, testOwner)
	rec := httptest.NewRecorder()

	handler.CreateTransfer(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockTransfers.AssertNotCalled(t, "Transfer")
}

func TestCreateTransfer_ServiceErrors(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     *service.ServiceError
		expectedStatus int
	}{
		{
			name:           "insufficient funds returns 422",
			serviceErr:     &service.ServiceError{Code: service.ErrCodeInsufficientFunds, Message: "insufficient"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "cross owner returns 422",
			serviceErr:     &service.ServiceError{Code: service.ErrCodeCrossOwnerTransfer, Message: "cross owner"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "blocked sender returns 422",
			serviceErr:     &service.ServiceError{Code: service.ErrCodeSenderLocked, Message: "blocked"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "same card returns 400",
			serviceErr:     &service.ServiceError{Code: service.ErrCodeSameCard, Message: "same card"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing card returns 404",
			serviceErr:     &service.ServiceError{Code: service.ErrCodeCardNotFound, Message: "not found"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTransfers := mocks.NewMockTransferManager(t)
			handler := NewHandler(nil, mockTransfers, nil, nil, 100, testLogger())

			mockTransfers.On("Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tt.serviceErr)

			req := authedRequest(http.MethodPost, "/api/v1/transfers",
				`{"from_card_id":1,"to_card_id":2,"amount":"10.00"}`, testOwner)
			rec := httptest.NewRecorder()

			handler.CreateTransfer(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.serviceErr.Code)
		})
	}
}

func TestCancelTransfer_Success(t *testing.T) {
	mockTransfers := mocks.NewMockTransferManager(t)
	handler := NewHandler(nil, mockTransfers, nil, nil, 100, testLogger())

	transferID := uuid.New()
	cancelled := &models.Transfer{
		ID:         transferID,
		FromCardID: 1,
		ToCardID:   2,
		Amount:     decimal.RequireFromString("200.00"),
		Status:     models.TransferStatusFailed,
	}
	mockTransfers.On("Cancel", mock.Anything, transferID, testOwner).Return(cancelled, nil)

	req := authedRequest(http.MethodPost, "/api/v1/transfers/"+transferID.String()+"/cancel", "", testOwner)
	req.SetPathValue("transferId", transferID.String())
	rec := httptest.NewRecorder()

	handler.CancelTransfer(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"FAILED"`)
}

func TestCancelTransfer_AlreadyCancelled(t *testing.T) {
	mockTransfers := mocks.NewMockTransferManager(t)
	handler := NewHandler(nil, mockTransfers, nil, nil, 100, testLogger())

	transferID := uuid.New()
	mockTransfers.On("Cancel", mock.Anything, transferID, testOwner).
		Return(nil, &service.ServiceError{Code: service.ErrCodeNotCancellable, Message: "already cancelled"})

	req := authedRequest(http.MethodPost, "/api/v1/transfers/"+transferID.String()+"/cancel", "", testOwner)
	req.SetPathValue("transferId", transferID.String())
	rec := httptest.NewRecorder()

	handler.CancelTransfer(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelTransfer_BadID(t *testing.T) {
	mockTransfers := mocks.NewMockTransferManager(t)
	handler := NewHandler(nil, mockTransfers, nil, nil, 100, testLogger())

	req := authedRequest(http.MethodPost, "/api/v1/transfers/not-a-uuid/cancel", "", testOwner)
	req.SetPathValue("transferId", "not-a-uuid")
	rec := httptest.NewRecorder()

	handler.CancelTransfer(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockTransfers.AssertNotCalled(t, "Cancel")
}

func TestGetTransfer(t *testing.T) {
	mockTransfers := mocks.NewMockTransferManager(t)
	handler := NewHandler(nil, mockTransfers, nil, nil, 100, testLogger())

	transferID := uuid.New()
	transfer := &models.Transfer{
		ID:         transferID,
		FromCardID: 1,
		ToCardID:   2,
		Amount:     decimal.RequireFromString("50.00"),
		Status:     models.TransferStatusCompleted,
	}
	mockTransfers.On("GetTransfer", mock.Anything, transferID, testOwner).Return(transfer, nil)

	req := authedRequest(http.MethodGet, "/api/v1/transfers/"+transferID.String(), "", testOwner)
	req.SetPathValue("transferId", transferID.String())
	rec := httptest.NewRecorder()

	handler.GetTransfer(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), transferID.String())
}
