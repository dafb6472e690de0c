package session_test

import (
	"context"
	"testing"

	session "github.com/shigde/go-session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalAuthServiceLoginMintsToken(t *testing.T) {
	tokens := testTokenService()
	auth := session.NewLocalAuthService(tokens)
	require.NoError(t, auth.AddAccount("bob", "Bob@shig.de", "super-secret-pw", session.RoleMember))

	result, err := auth.Login(context.Background(), session.Credentials{
		Email:    "bob@shig.de", // case-insensitive lookup
		Password: "super-secret-pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", result.DisplayName)

	claims, err := tokens.Inspect(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Name)
	assert.Equal(t, session.RoleMember, claims.Role)
}

func TestLocalAuthServiceUniformLoginFailure(t *testing.T) {
	auth := session.NewLocalAuthService(testTokenService())
	require.NoError(t, auth.AddAccount("bob", "bob@shig.de", "super-secret-pw", session.RoleMember))

	// Unknown account and wrong password fail identically.
	_, err := auth.Login(context.Background(), session.Credentials{
		Email:    "nobody@shig.de",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, session.ErrMismatchedHashAndPassword)

	_, err = auth.Login(context.Background(), session.Credentials{
		Email:    "bob@shig.de",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, session.ErrMismatchedHashAndPassword)
}

func TestLocalAuthServiceRejectsDuplicateAccount(t *testing.T) {
	auth := session.NewLocalAuthService(testTokenService())
	require.NoError(t, auth.AddAccount("bob", "bob@shig.de", "super-secret-pw", session.RoleMember))

	err := auth.RegisterAccount(context.Background(), session.Account{
		User:     "bobby",
		Email:    "BOB@shig.de",
		Password: "another-password",
	})
	assert.ErrorIs(t, err, session.ErrAccountConflict)
}

func TestLocalAuthServiceStableAccountIDs(t *testing.T) {
	first := session.NewLocalAuthService(testTokenService())
	require.NoError(t, first.AddAccount("bob", "bob@shig.de", "super-secret-pw", session.RoleMember))

	second := session.NewLocalAuthService(testTokenService())
	require.NoError(t, second.AddAccount("bob", "bob@shig.de", "other-password-1", session.RoleMember))

	a, err := first.ListUsers(context.Background())
	require.NoError(t, err)
	b, err := second.ListUsers(context.Background())
	require.NoError(t, err)

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, a[0].ID, b[0].ID)
}

func TestLocalAuthServicePasswordResetNeverLeaksAccounts(t *testing.T) {
	auth := session.NewLocalAuthService(testTokenService())
	require.NoError(t, auth.AddAccount("bob", "bob@shig.de", "super-secret-pw", session.RoleMember))

	assert.NoError(t, auth.RequestPasswordReset(context.Background(), "bob@shig.de"))
	assert.NoError(t, auth.RequestPasswordReset(context.Background(), "nobody@shig.de"))
}

func TestHashPasswordRejectsEmptyInput(t *testing.T) {
	_, err := session.HashPassword("")
	assert.Error(t, err)
}
