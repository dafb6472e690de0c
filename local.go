package session

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// LocalAccount is one offline account.
type LocalAccount struct {
	ID           uuid.UUID
	User         string
	Email        string
	PasswordHash string
	Role         UserRole
}

// LocalAuthService is an in-process AuthService for development and tests:
// bcrypt-hashed accounts, locally minted tokens, no network. It also serves
// as the UserDirectory for the login form.
type LocalAuthService struct {
	mu       sync.Mutex
	accounts map[string]*LocalAccount
	tokens   *TokenService
	logger   Logger
}

// NewLocalAuthService mints session tokens through the given token service.
func NewLocalAuthService(tokens *TokenService) *LocalAuthService {
	return &LocalAuthService{
		accounts: make(map[string]*LocalAccount),
		tokens:   tokens,
		logger:   defLogger{},
	}
}

// AddAccount registers an account with a bcrypt-hashed password. The account
// id is derived from the email so repeated seeding stays stable.
func (s *LocalAuthService) AddAccount(user, email, password string, role UserRole) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	account := &LocalAccount{
		User:         user,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         role,
	}
	if id, err := hashid.NewUUID(account.Email); err == nil {
		account.ID = id
	} else {
		account.ID = uuid.New()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.Email]; exists {
		return ErrAccountConflict
	}
	s.accounts[account.Email] = account
	return nil
}

// Login satisfies AuthService.
func (s *LocalAuthService) Login(_ context.Context, creds Credentials) (*AuthResult, error) {
	s.mu.Lock()
	account, ok := s.accounts[strings.ToLower(creds.Email)]
	s.mu.Unlock()

	if !ok {
		// Same failure as a wrong password so lookups cannot probe accounts.
		return nil, ErrMismatchedHashAndPassword
	}
	if err := ComparePasswordAndHash(creds.Password, account.PasswordHash); err != nil {
		return nil, err
	}

	token, err := s.tokens.Mint(account.User, account.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, DisplayName: account.User}, nil
}

// RegisterAccount satisfies AuthService.
func (s *LocalAuthService) RegisterAccount(_ context.Context, account Account) error {
	return s.AddAccount(account.User, account.Email, account.Password, RoleMember)
}

// RequestPasswordReset satisfies AuthService. Offline accounts have no
// mailbox; the request succeeds without leaking whether the account exists.
func (s *LocalAuthService) RequestPasswordReset(_ context.Context, email string) error {
	s.mu.Lock()
	_, ok := s.accounts[strings.ToLower(email)]
	s.mu.Unlock()
	if !ok {
		s.logger.Debug("password reset requested for unknown account")
	}
	return nil
}

// ListUsers satisfies UserDirectory.
func (s *LocalAuthService) ListUsers(_ context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]User, 0, len(s.accounts))
	for _, account := range s.accounts {
		users = append(users, User{
			ID:    account.ID.String(),
			Name:  account.User,
			Email: account.Email,
			Role:  account.Role,
		})
	}
	return users, nil
}
