package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// TokenExpirationBuffer is subtracted from a token's expiry so it is
// refreshed before the server starts rejecting it.
const TokenExpirationBuffer = 30 * time.Second

// ErrNoToken is returned when a token is requested but none is available.
var ErrNoToken = errors.New("no token available")

// Token is a credential with an optional expiry.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// Valid reports whether the token can still be used. Tokens without an
// expiry never go stale; tokens with one are considered invalid inside the
// expiration buffer.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Until(t.ExpiresAt) > TokenExpirationBuffer
}

// TokenStore holds the current token behind a lock so the transport and
// login flows can share it.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token, or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}

// TokenManager supplies the credential the transport attaches to requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	SetToken(token string, expiresAt time.Time)
}

// StaticTokenManager serves a user token that never refreshes. This is the
// normal mode for the platform: user tokens are created in the UI and
// revoked there, they do not expire on a schedule.
type StaticTokenManager struct {
	store *TokenStore
}

// NewStaticTokenManager creates a manager pre-loaded with token. An empty
// token leaves the store empty, which makes GetToken fail until SetToken is
// called.
func NewStaticTokenManager(token string) *StaticTokenManager {
	manager := &StaticTokenManager{store: NewTokenStore()}
	if token != "" {
		manager.store.Set(&Token{AccessToken: token, TokenType: "bearer"})
	}

	return manager
}

// GetToken implements TokenManager.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if !token.Valid() {
		return "", ErrNoToken
	}

	return token.AccessToken, nil
}

// SetToken implements TokenManager.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}
