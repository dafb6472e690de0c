package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	session "github.com/shigde/go-session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLoginReturnsToken(t *testing.T) {
	var gotPath string
	var gotCreds session.Credentials

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCreds))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"jwt": "tok-xyz"})
	}))
	defer srv.Close()

	client := session.NewClient(srv.URL)
	result, err := client.Login(context.Background(), session.Credentials{
		Email:    "bob@shig.de",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/auth/login", gotPath)
	assert.Equal(t, "bob@shig.de", gotCreds.Email)
	assert.Equal(t, "tok-xyz", result.Token)
}

func TestClientLoginRejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := session.NewClient(srv.URL)
	_, err := client.Login(context.Background(), session.Credentials{
		Email:    "bob@shig.de",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, session.ErrAuthenticationFailed)
}

func TestClientLoginEmptyTokenIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"jwt": ""})
	}))
	defer srv.Close()

	client := session.NewClient(srv.URL)
	_, err := client.Login(context.Background(), session.Credentials{
		Email:    "bob@shig.de",
		Password: "secret",
	})
	assert.ErrorIs(t, err, session.ErrAuthenticationFailed)
}

func TestClientRegisterAccount(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := session.NewClient(srv.URL)
	err := client.RegisterAccount(context.Background(), session.Account{
		User:     "bob",
		Email:    "bob@shig.de",
		Password: "super-secret-pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/register", gotPath)
}

func TestClientRegisterAccountConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	client := session.NewClient(srv.URL)
	err := client.RegisterAccount(context.Background(), session.Account{
		User:     "bob",
		Email:    "bob@shig.de",
		Password: "super-secret-pw",
	})
	assert.ErrorIs(t, err, session.ErrAccountConflict)
}

func TestClientRequestPasswordReset(t *testing.T) {
	var gotPath string
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	}))
	defer srv.Close()

	client := session.NewClient(srv.URL)
	require.NoError(t, client.RequestPasswordReset(context.Background(), "bob@shig.de"))

	assert.Equal(t, "/api/auth/forgotPassword", gotPath)
	assert.Equal(t, "bob@shig.de", payload["email"])
}

func TestClientSurfacesUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := session.NewClient(srv.URL)
	_, err := client.Login(context.Background(), session.Credentials{
		Email:    "bob@shig.de",
		Password: "secret",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrAuthenticationFailed)
}
