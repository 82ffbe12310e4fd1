package service

import "fmt"

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes.
//
// Not-found codes deliberately cover ownership mismatches too: a caller
// probing someone else's card or transfer learns nothing about whether
// it exists.
const (
	ErrCodeCardNotFound     = "card_not_found"
	ErrCodeUserNotFound     = "user_not_found"
	ErrCodeTransferNotFound = "transfer_not_found"

	ErrCodeInvalidCardType = "invalid_card_type"
	ErrCodeInvalidStatus   = "invalid_status"
	ErrCodeInvalidAmount   = "invalid_amount"
	ErrCodeSameCard        = "same_card"
	ErrCodeCardNotActive   = "card_not_active"

	ErrCodeSenderLocked       = "sender_locked"
	ErrCodeCrossOwnerTransfer = "cross_owner_transfer"
	ErrCodeInsufficientFunds  = "insufficient_funds"
	ErrCodeNotCancellable     = "transfer_not_cancellable"

	ErrCodeSequenceExhausted = "sequence_exhausted"

	ErrCodeUserExists         = "user_exists"
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeUserBanned         = "user_banned"

	ErrCodeInternalError = "internal_error"
)
