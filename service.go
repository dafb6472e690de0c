package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Service is the single source of truth for the current identity. It wraps
// the credential store and projects it into replay-last-value signals that
// guards, header widgets, and the lobby resolver observe concurrently.
//
// Mutations are atomic with respect to readers: no subscriber ever observes
// a display name without its token or vice versa.
type Service struct {
	mu        sync.Mutex
	store     *CredentialStore
	active    *Signal[bool]
	userName  *Signal[string]
	directory UserDirectory
	tokens    *TokenService
	inspector TokenInspector
	epoch     uint64
	logger    Logger
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithUserDirectory sets the source for GetUsers.
func WithUserDirectory(directory UserDirectory) ServiceOption {
	return func(s *Service) {
		s.directory = directory
	}
}

// WithTokenService enables locally minted guest tokens for name-only logins.
func WithTokenService(tokens *TokenService) ServiceOption {
	return func(s *Service) {
		s.tokens = tokens
		if s.inspector == nil {
			s.inspector = tokens
		}
	}
}

// WithTokenInspector sets the inspector used to derive the session role from
// the current token (admin guard input).
func WithTokenInspector(inspector TokenInspector) ServiceOption {
	return func(s *Service) {
		if inspector != nil {
			s.inspector = inspector
		}
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService restores the persisted identity and seeds both signals from it.
func NewService(store *CredentialStore, opts ...ServiceOption) *Service {
	if store == nil {
		store = NewCredentialStore(nil)
	}

	id := store.Get()
	s := &Service{
		store:    store,
		active:   NewSignal(id.Present()),
		userName: NewSignal(id.Name()),
		logger:   defLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsActive is true exactly while the store holds a non-empty token. Late
// subscribers receive the current value immediately.
func (s *Service) IsActive() *Signal[bool] {
	return s.active
}

// GetUserName carries the current display name, UnknownUser while absent.
func (s *Service) GetUserName() *Signal[string] {
	return s.userName
}

// GetToken returns the current token synchronously, "" when no session is
// active. One-shot consumers such as the lobby resolver use this instead of
// subscribing.
func (s *Service) GetToken() string {
	return s.store.Get().Token
}

// SetUserName stores the display name, minting a guest token when the
// session has none yet. Returns false without mutating state when the name
// is empty.
func (s *Service) SetUserName(name string) bool {
	if err := ValidateUserName(name); err != nil {
		s.logger.Debug("rejecting display name: %s", err)
		return false
	}

	s.mu.Lock()
	id := s.store.Get()
	token := id.Token
	if token == "" {
		token = s.mintGuestToken(name)
	}
	s.store.Set(name, token)
	current := s.store.Get()
	s.mu.Unlock()

	s.publish(current)
	return true
}

// SetIdentity installs a fully resolved identity, the login-success path. An
// empty token is rejected to preserve the all-or-nothing invariant.
func (s *Service) SetIdentity(name, token string) bool {
	if token == "" {
		return false
	}
	if name == "" {
		name = UnknownUser
	}

	s.mu.Lock()
	s.store.Set(name, token)
	current := s.store.Get()
	s.mu.Unlock()

	s.publish(current)
	return true
}

// ClearData resets the identity. Every subscriber of IsActive and
// GetUserName observes the cleared state without re-subscribing, and any
// login still in flight is invalidated.
func (s *Service) ClearData() {
	s.mu.Lock()
	s.store.Clear()
	s.epoch++
	current := s.store.Get()
	s.mu.Unlock()

	s.publish(current)
}

// Epoch identifies the current session generation. Forms capture it before
// an external call and pass it to ApplyLogin so a logout in between voids
// the result.
func (s *Service) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// ApplyLogin installs a login result if the session generation is still the
// one captured before the request went out. Returns false (and leaves the
// session untouched) when ClearData ran in between or the token is empty.
func (s *Service) ApplyLogin(name, token string, epoch uint64) bool {
	if token == "" {
		return false
	}
	if name == "" {
		name = UnknownUser
	}

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		s.logger.Info("discarding login result, session was cleared while request in flight")
		return false
	}
	s.store.Set(name, token)
	current := s.store.Get()
	s.mu.Unlock()

	s.publish(current)
	return true
}

// GetUsers returns the known identities for login-form population. Any
// directory failure degrades to an empty list so the form still renders.
func (s *Service) GetUsers(ctx context.Context) []User {
	if s.directory == nil {
		return []User{}
	}
	users, err := s.directory.ListUsers(ctx)
	if err != nil {
		s.logger.Error("user directory unavailable: %s", err)
		return []User{}
	}
	if users == nil {
		users = []User{}
	}
	return users
}

// SubscribeActive registers fn on the authenticated signal. Guards use this
// through the SessionReader interface.
func (s *Service) SubscribeActive(fn func(active bool)) (cancel func()) {
	return s.active.Subscribe(fn)
}

// SessionRole derives the role from the current token claims. Absent or
// uninspectable tokens map to guest.
func (s *Service) SessionRole() UserRole {
	token := s.GetToken()
	if token == "" || s.inspector == nil {
		return RoleGuest
	}
	claims, err := s.inspector.Inspect(token)
	if err != nil {
		s.logger.Debug("could not inspect session token: %s", err)
		return RoleGuest
	}
	if claims.Role == "" {
		return RoleGuest
	}
	return claims.Role
}

func (s *Service) mintGuestToken(name string) string {
	if s.tokens != nil {
		token, err := s.tokens.Mint(name, RoleGuest)
		if err == nil {
			return token
		}
		s.logger.Error("could not mint guest token, falling back to opaque token: %s", err)
	}
	return "guest-" + uuid.NewString()
}

// publish runs outside the service lock so subscriber callbacks may read the
// service without deadlocking.
func (s *Service) publish(id Identity) {
	s.active.set(id.Present())
	s.userName.set(id.Name())
}
