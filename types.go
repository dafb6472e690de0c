package session

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// AuthService is the external authentication collaborator. Implementations
// talk to a shig identity service (Client) or an in-process account list
// (LocalAuthService).
type AuthService interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	RegisterAccount(ctx context.Context, account Account) error
	RequestPasswordReset(ctx context.Context, email string) error
}

// Credentials is the login payload
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Account is the registration payload
type Account struct {
	User     string `json:"user"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// AuthResult carries the outcome of a successful login.
type AuthResult struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name,omitempty"`
}

// Navigator performs an imperative, fire-and-forget route change. The core
// never consults a return value.
type Navigator interface {
	Navigate(path ...string)
}

// NavigatorFunc adapts a function into a Navigator.
type NavigatorFunc func(path ...string)

func (f NavigatorFunc) Navigate(path ...string) {
	if f != nil {
		f(path...)
	}
}

// UserDirectory sources the known-identity list shown by the login form.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]User, error)
}

// TokenInspector extracts session claims from an access token without tying
// callers to a signing implementation.
type TokenInspector interface {
	Inspect(token string) (*SessionClaims, error)
}

// Config holds session options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetStorageKey() string
	GetLoginRoute() string
	GetDefaultRoute() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSION "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSION "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSION "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
