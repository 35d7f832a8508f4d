package service

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
	"github.com/agrowork/agrowork-cli/internal/core/ports"
)

// Session is an immutable view of the current identity, handed to the guard
// and the view models instead of ambient global state.
type Session struct {
	User  *domain.User
	Token string
}

// Authenticated reports whether both the user record and the token are set.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// SessionStore is the single source of truth for who is using this client.
// It owns the persisted copy exclusively; no other component touches storage.
// All methods are synchronous and safe for concurrent use.
type SessionStore struct {
	mu      sync.RWMutex
	storage ports.SessionStorage
	log     zerolog.Logger

	user  *domain.User
	token string
}

func NewSessionStore(storage ports.SessionStorage, log zerolog.Logger) *SessionStore {
	return &SessionStore{storage: storage, log: log}
}

// Restore loads a previously persisted session at process start. Malformed or
// partial persisted state is treated as absence: the store fails open to
// "logged out" and clears the leftovers, never surfacing an error.
func (s *SessionStore) Restore() {
	persisted, ok, err := s.storage.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("session restore failed, treating as logged out")
		s.discardPersisted()
		return
	}
	if !ok || persisted.Token == "" || persisted.User == "" {
		s.discardPersisted()
		return
	}

	var user domain.User
	if err := json.Unmarshal([]byte(persisted.User), &user); err != nil {
		s.log.Warn().Err(err).Msg("persisted user record is corrupt, clearing session")
		s.discardPersisted()
		return
	}
	if user.ID == "" || !user.Role.Valid() {
		s.log.Warn().Str("role", string(user.Role)).Msg("persisted user record is incomplete, clearing session")
		s.discardPersisted()
		return
	}

	s.mu.Lock()
	s.user = &user
	s.token = persisted.Token
	s.mu.Unlock()

	s.log.Debug().Str("username", user.Username).Str("role", string(user.Role)).Msg("session restored")
}

// Login sets the session atomically and persists both fields so the identity
// survives a restart. A persistence failure is logged, not surfaced: the
// in-memory session is still valid for this run.
func (s *SessionStore) Login(user domain.User, token string) {
	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not serialize user for persistence")
		return
	}
	if err := s.storage.Save(ports.PersistedSession{Token: token, User: string(raw)}); err != nil {
		s.log.Warn().Err(err).Msg("could not persist session")
	}
}

// Logout clears the session atomically and removes the persisted copies.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	s.discardPersisted()
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Current returns a copy of the authenticated user, or nil.
func (s *SessionStore) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Snapshot returns an immutable view of the session for guard decisions and
// view-model loads.
func (s *SessionStore) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return Session{}
	}
	u := *s.user
	return Session{User: &u, Token: s.token}
}

func (s *SessionStore) discardPersisted() {
	if err := s.storage.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("could not clear persisted session")
	}
}
