package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardType identifies the card scheme a number is issued under
type CardType string

const (
	CardTypeVisa       CardType = "VISA"
	CardTypeMastercard CardType = "MASTERCARD"
)

// CardStatus represents the lifecycle state of a card
type CardStatus string

const (
	CardStatusActive  CardStatus = "ACTIVE"
	CardStatusBlocked CardStatus = "BLOCKED"
	CardStatusExpired CardStatus = "EXPIRED"
)

// ValidCardStatus reports whether s is a known card status
func ValidCardStatus(s CardStatus) bool {
	switch s {
	case CardStatusActive, CardStatusBlocked, CardStatusExpired:
		return true
	}
	return false
}

// ValidCardType reports whether t is a supported card type
func ValidCardType(t CardType) bool {
	switch t {
	case CardTypeVisa, CardTypeMastercard:
		return true
	}
	return false
}

// Card represents an issued bank card. Balance is stored as NUMERIC(19,2)
// and must never go negative. Deleted cards stay in the table for audit
// but are excluded from all regular operations.
type Card struct {
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
	ExpiresAt time.Time       `db:"expires_at"`
	Number    string          `db:"number"`
	Type      CardType        `db:"type"`
	Status    CardStatus      `db:"status"`
	Balance   decimal.Decimal `db:"balance"`
	ID        int64           `db:"id"`
	OwnerID   int64           `db:"owner_id"`
	Deleted   bool            `db:"deleted"`
}
