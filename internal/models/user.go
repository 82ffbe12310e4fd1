package models

import "time"

// Role is the authorization role of a user
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is a registered account holder. Cards reference users by OwnerID;
// there are no live back-references.
type User struct {
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	ID           int64     `db:"id"`
	Banned       bool      `db:"banned"`
}
