package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register_RejectsBadInput(t *testing.T) {
	service := NewUserService(nil, nil, testLogger())

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "al", "alice@example.com", "long enough password"},
		{"bad email", "alice", "not-an-email", "long enough password"},
		{"short password", "alice", "alice@example.com", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := service.Register(context.Background(), tc.username, tc.email, tc.password)

			assert.Nil(t, user)
			var svcErr *ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, ErrCodeInvalidCredentials, svcErr.Code)
		})
	}
}
