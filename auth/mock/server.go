package mock

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/reown-com/appkit-go/schema"
)

// Server is an in-process AppKit API good enough for tests and examples. It
// keeps accounts and sessions in memory and signs RS256 access tokens with
// an ephemeral key. Individual endpoints can be overridden through the
// handler fields before the first request.
type Server struct {
	// URL is the base URL of the running server.
	URL string
	// APIKey is the key every request must present in X-API-Key.
	APIKey string
	// PrivateKey signs issued access tokens.
	PrivateKey *rsa.PrivateKey

	// Optional per-endpoint overrides.
	SignUpHandler       http.HandlerFunc
	SignInHandler       http.HandlerFunc
	SignOutHandler      http.HandlerFunc
	UserHandler         http.HandlerFunc
	ResetRequestHandler http.HandlerFunc
	ResetConfirmHandler http.HandlerFunc

	httpServer *httptest.Server

	mu          sync.Mutex
	users       map[string]*schema.User // by email
	passwords   map[string]string       // by email
	sessions    map[string]*schema.Session
	resetTokens map[string]string // reset token -> email
	requests    []string
	nextUserID  int
}

// NewServer starts a mock AppKit API accepting the given key.
func NewServer(apiKey string) (*Server, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	ret := &Server{
		APIKey:      apiKey,
		PrivateKey:  key,
		users:       map[string]*schema.User{},
		passwords:   map[string]string{},
		sessions:    map[string]*schema.Session{},
		resetTokens: map[string]string{},
	}
	ret.httpServer = httptest.NewServer(ret)
	ret.URL = ret.httpServer.URL
	return ret, nil
}

func (m *Server) Close() {
	m.httpServer.Close()
}

// Requests returns the "METHOD /path" trace of everything served so far.
func (m *Server) Requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.requests...)
}

// Sessions returns the ids of currently open sessions.
func (m *Server) Sessions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// LastResetToken returns the most recently issued password-reset token for
// the given email, or empty.
func (m *Server) LastResetToken(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, owner := range m.resetTokens {
		if owner == email {
			return token
		}
	}
	return ""
}

// Password returns the password currently on file for email.
func (m *Server) Password(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.passwords[email]
}

func (m *Server) userByID(id string) *schema.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}
