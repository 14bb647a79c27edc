package mock

import (
	"net/http"
	"strings"
)

// ServeHTTP dispatches incoming requests to the endpoint handlers,
// preferring overrides when set.
func (m *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requests = append(m.requests, r.Method+" "+r.URL.Path)
	m.mu.Unlock()

	if r.Header.Get("X-API-Key") != m.APIKey {
		writeError(w, http.StatusUnauthorized, "invalid api key")
		return
	}

	switch {
	case r.URL.Path == "/users" && r.Method == http.MethodPost:
		m.serve(w, r, m.SignUpHandler, m.defaultSignUpHandler)
	case r.URL.Path == "/sessions" && r.Method == http.MethodPost:
		m.serve(w, r, m.SignInHandler, m.defaultSignInHandler)
	case strings.HasPrefix(r.URL.Path, "/sessions/") && r.Method == http.MethodDelete:
		m.serve(w, r, m.SignOutHandler, m.defaultSignOutHandler)
	case r.URL.Path == "/users/me":
		m.serve(w, r, m.UserHandler, m.defaultUserHandler)
	case r.URL.Path == "/password-reset" && r.Method == http.MethodPost:
		m.serve(w, r, m.ResetRequestHandler, m.defaultResetRequestHandler)
	case r.URL.Path == "/password-reset/confirm" && r.Method == http.MethodPost:
		m.serve(w, r, m.ResetConfirmHandler, m.defaultResetConfirmHandler)
	default:
		http.NotFound(w, r)
	}
}

func (m *Server) serve(w http.ResponseWriter, r *http.Request, override, fallback http.HandlerFunc) {
	if override != nil {
		override(w, r)
		return
	}
	fallback(w, r)
}
