package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferStatus represents the status of a transfer
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "PENDING"
	TransferStatusCompleted TransferStatus = "COMPLETED"
	TransferStatusFailed    TransferStatus = "FAILED"
)

// Transfer is the audit record for a movement of funds between two cards
// of the same owner. Amount is immutable once the transfer is COMPLETED;
// cancellation flips the status to FAILED and credits the sender back.
type Transfer struct {
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
	Status     TransferStatus  `db:"status"`
	Amount     decimal.Decimal `db:"amount"`
	ID         uuid.UUID       `db:"id"`
	FromCardID int64           `db:"from_card_id"`
	ToCardID   int64           `db:"to_card_id"`
}
