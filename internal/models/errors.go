package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicateCardNumber indicates a card with the same number already exists
	ErrDuplicateCardNumber = errors.New("duplicate card number")

	// ErrDuplicateUser indicates a user with the same username or email already exists
	ErrDuplicateUser = errors.New("duplicate user")
)
