package service

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateAmount checks that a transfer amount is positive
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("invalid amount: must be greater than 0")
	}
	return nil
}

// ValidateUsername checks username format constraints
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 64 {
		return fmt.Errorf("invalid username: must be 3-64 characters")
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return fmt.Errorf("invalid username: only letters, digits, '.', '_' and '-' are allowed")
		}
	}
	return nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}

// ValidateEmail checks that an address parses and fits the column
func ValidateEmail(email string) error {
	if len(email) > 64 {
		return fmt.Errorf("invalid email: too long")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword enforces a minimum password length
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("invalid password: must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt ignores input beyond 72 bytes
		return fmt.Errorf("invalid password: must be at most 72 characters")
	}
	return nil
}
