// Package auth issues and verifies access tokens and defines the
// resolved caller identity passed into the service layer.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/benx421/bankcards/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a token that failed verification or expired.
var ErrInvalidToken = errors.New("invalid token")

// Principal is the resolved identity of the caller. Services receive it
// explicitly; no ambient security context exists anywhere in the core.
type Principal struct {
	Username string
	Role     models.Role
	UserID   int64
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret and
// access token lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

type accessClaims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs an access token for a user.
func (ti *TokenIssuer) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Verify parses a token string and returns the principal it encodes.
func (ti *TokenIssuer) Verify(tokenString string) (Principal, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	return Principal{
		UserID:   userID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
