package session_test

import (
	"context"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	session "github.com/shigde/go-session"
)

// recordingNavigator captures every Navigate call.
type recordingNavigator struct {
	mu    sync.Mutex
	calls [][]string
}

func (n *recordingNavigator) Navigate(path ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, path)
}

func (n *recordingNavigator) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func (n *recordingNavigator) last() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.calls) == 0 {
		return nil
	}
	return n.calls[len(n.calls)-1]
}

// failingStorage errors on every operation, driving the credential store
// into degraded mode.
type failingStorage struct{}

func (failingStorage) Read(context.Context, string) ([]byte, error) {
	return nil, goerrors.New("storage unavailable", goerrors.CategoryInternal)
}

func (failingStorage) Write(context.Context, string, []byte) error {
	return goerrors.New("storage unavailable", goerrors.CategoryInternal)
}

func (failingStorage) Delete(context.Context, string) error {
	return goerrors.New("storage unavailable", goerrors.CategoryInternal)
}

// fakeAuthService scripts AuthService outcomes and counts invocations. When
// gate is non-nil, Login blocks until the gate closes.
type fakeAuthService struct {
	mu         sync.Mutex
	loginCalls int
	registers  int
	resets     int

	result   *session.AuthResult
	err      error
	gate     chan struct{}
	lastCred session.Credentials
}

func (s *fakeAuthService) Login(_ context.Context, creds session.Credentials) (*session.AuthResult, error) {
	s.mu.Lock()
	s.loginCalls++
	s.lastCred = creds
	gate := s.gate
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *fakeAuthService) RegisterAccount(_ context.Context, _ session.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registers++
	return s.err
}

func (s *fakeAuthService) RequestPasswordReset(_ context.Context, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets++
	return s.err
}

func (s *fakeAuthService) logins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginCalls
}

func (s *fakeAuthService) registrations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registers
}

// silentReader is a SessionReader whose active signal never emits, used to
// exercise the guard's bounded wait.
type silentReader struct{}

func (silentReader) SubscribeActive(func(bool)) func() { return func() {} }

func (silentReader) SessionRole() session.UserRole { return session.RoleGuest }

func newTestService(opts ...session.ServiceOption) *session.Service {
	store := session.NewCredentialStore(session.NewMemoryStorage())
	return session.NewService(store, opts...)
}

func testTokenService() *session.TokenService {
	return session.NewTokenService(session.SimpleConfig{
		SigningKey:      "test-signing-key",
		TokenExpiration: 24,
		Issuer:          "test-instance",
		Audience:        []string{"shig:viewer"},
	})
}
