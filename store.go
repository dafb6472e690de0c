package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// storageTimeout bounds every storage round trip so a stalled backend can
// never block a navigation.
const storageTimeout = 5 * time.Second

// CredentialStore owns the persisted Identity. Get never fails and Set/Clear
// never surface persistence errors to callers: when the backend becomes
// unavailable the store degrades to an in-memory identity for the rest of
// the session and logs the downgrade.
type CredentialStore struct {
	mu       sync.Mutex
	storage  Storage
	key      string
	cached   Identity
	loaded   bool
	degraded bool
	logger   Logger
}

// CredentialStoreOption customizes a CredentialStore.
type CredentialStoreOption func(*CredentialStore)

// WithStorageKey overrides the record key, DefaultStorageKey otherwise.
func WithStorageKey(key string) CredentialStoreOption {
	return func(s *CredentialStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithStoreConfig reads the record key from cfg.
func WithStoreConfig(cfg Config) CredentialStoreOption {
	return func(s *CredentialStore) {
		if cfg != nil && cfg.GetStorageKey() != "" {
			s.key = cfg.GetStorageKey()
		}
	}
}

// WithStoreLogger overrides the store logger.
func WithStoreLogger(logger Logger) CredentialStoreOption {
	return func(s *CredentialStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewCredentialStore creates a store over the given backend. A nil storage
// yields a purely in-memory store.
func NewCredentialStore(storage Storage, opts ...CredentialStoreOption) *CredentialStore {
	s := &CredentialStore{
		storage: storage,
		key:     DefaultStorageKey,
		logger:  defLogger{},
	}
	if storage == nil {
		s.degraded = true
		s.loaded = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the current Identity. The first call restores the persisted
// record; a read failure degrades to the empty identity.
func (s *CredentialStore) Get() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.cached
}

// Set replaces the Identity atomically and persists it. Readers observe
// either the previous or the new record, never a mix.
func (s *CredentialStore) Set(name, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = Identity{DisplayName: name, Token: token}
	s.loaded = true
	s.persist()
}

// Clear resets the Identity to the absent state and removes the persisted
// record.
func (s *CredentialStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = Identity{}
	s.loaded = true
	if s.degraded {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := s.storage.Delete(ctx, s.key); err != nil {
		s.degrade(err)
	}
}

// Degraded reports whether the store fell back to in-memory identity.
func (s *CredentialStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *CredentialStore) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	raw, err := s.storage.Read(ctx, s.key)
	if err != nil {
		if !IsNotFound(err) {
			s.degrade(err)
		}
		return
	}

	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		// A corrupt record is treated like an absent one.
		s.logger.Error("discarding unreadable credential record: %s", err)
		return
	}
	if !id.Present() {
		// Enforce the all-or-nothing identity invariant on restore.
		id = Identity{}
	}
	s.cached = id
}

func (s *CredentialStore) persist() {
	if s.degraded {
		return
	}

	raw, err := json.Marshal(s.cached)
	if err != nil {
		s.degrade(err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := s.storage.Write(ctx, s.key, raw); err != nil {
		s.degrade(err)
	}
}

func (s *CredentialStore) degrade(err error) {
	s.degraded = true
	s.logger.Error("credential storage unavailable, session will not survive a reload: %s", err)
}
