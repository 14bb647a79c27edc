package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// Store is a pluggable persistence layer for the session token.
// The in-memory default is fine for tests and short-lived processes; use
// NewFileStore to survive restarts.
type Store interface {
	// Save serializes and writes the token, replacing any prior value.
	Save(ctx context.Context, token *oauth2.Token) error
	// Load returns the stored token, or nil when no token is stored, the
	// stored value cannot be decoded, or the token expiry is in the past.
	// In the nil cases the stored value is removed, so a dead token is
	// never observed twice.
	Load(ctx context.Context) *oauth2.Token
	// Clear removes the stored token.
	Clear(ctx context.Context) error
}

type config struct {
	now func() time.Time
}

type Option func(*config)

// WithNow sets the clock used for expiry checks (primarily for testing).
func WithNow(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

func newConfig(options []Option) *config {
	ret := &config{now: time.Now}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// usable reports whether token carries an access token that has not expired.
// A zero expiry means the server issued no expiry; such tokens stay valid
// until replaced.
func usable(token *oauth2.Token, now time.Time) bool {
	if token == nil || token.AccessToken == "" {
		return false
	}
	return token.Expiry.IsZero() || !token.Expiry.Before(now)
}

type memoryStore struct {
	config *config
	mu     sync.Mutex
	token  *oauth2.Token
}

// NewMemoryStore returns a Store holding the token in process memory.
func NewMemoryStore(options ...Option) Store {
	return &memoryStore{config: newConfig(options)}
}

func (m *memoryStore) Save(ctx context.Context, token *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memoryStore) Load(ctx context.Context) *oauth2.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !usable(m.token, m.config.now()) {
		m.token = nil
		return nil
	}
	return m.token
}

func (m *memoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
	return nil
}
