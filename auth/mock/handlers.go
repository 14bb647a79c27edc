package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reown-com/appkit-go/schema"
)

const tokenTTL = time.Hour

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, &schema.ErrorResponse{Message: message})
}

func (m *Server) issueToken(userID string) (*schema.Token, error) {
	raw, err := m.createJWT(userID, tokenTTL)
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(tokenTTL)
	return &schema.Token{Token: raw, ExpiresAt: &expiresAt}, nil
}

func (m *Server) defaultSignUpHandler(w http.ResponseWriter, r *http.Request) {
	request := &schema.SignUpRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil || request.Email == "" || request.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	m.mu.Lock()
	if _, exists := m.users[request.Email]; exists {
		m.mu.Unlock()
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	m.nextUserID++
	user := &schema.User{
		ID:        fmt.Sprintf("u%d", m.nextUserID),
		Email:     request.Email,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Metadata:  request.Metadata,
	}
	m.users[request.Email] = user
	m.passwords[request.Email] = request.Password
	m.mu.Unlock()

	token, err := m.issueToken(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	// sign-up issues a token but opens no session
	writeJSON(w, http.StatusCreated, &schema.AuthResponse{User: user, Token: token})
}

func (m *Server) defaultSignInHandler(w http.ResponseWriter, r *http.Request) {
	request := &schema.SignInRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	m.mu.Lock()
	user, exists := m.users[request.Email]
	password := m.passwords[request.Email]
	m.mu.Unlock()
	if !exists || password != request.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	session := &schema.Session{
		ID:        "s-" + uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	token, err := m.issueToken(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, &schema.AuthResponse{User: user, Session: session, Token: token})
}

func (m *Server) defaultSignOutHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/sessions/")
	m.mu.Lock()
	_, exists := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !exists {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (m *Server) defaultUserHandler(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	subject, ok := m.subjectOf(raw)
	if raw == "" || !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}
	user := m.userByID(subject)
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, user)
	case http.MethodPatch:
		request := &schema.UpdateUserRequest{}
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request")
			return
		}
		m.mu.Lock()
		if request.FirstName != nil {
			user.FirstName = *request.FirstName
		}
		if request.LastName != nil {
			user.LastName = *request.LastName
		}
		if request.Metadata != nil {
			user.Metadata = request.Metadata
		}
		m.mu.Unlock()
		writeJSON(w, http.StatusOK, user)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (m *Server) defaultResetRequestHandler(w http.ResponseWriter, r *http.Request) {
	request := &schema.PasswordResetRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil || request.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	m.mu.Lock()
	if _, exists := m.users[request.Email]; exists {
		m.resetTokens[uuid.NewString()] = request.Email
	}
	m.mu.Unlock()
	// unknown emails get the same answer, no account enumeration
	w.WriteHeader(http.StatusAccepted)
}

func (m *Server) defaultResetConfirmHandler(w http.ResponseWriter, r *http.Request) {
	request := &schema.PasswordResetConfirm{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil || request.Token == "" || request.Password == "" {
		writeError(w, http.StatusBadRequest, "token and password are required")
		return
	}
	m.mu.Lock()
	email, exists := m.resetTokens[request.Token]
	if exists {
		delete(m.resetTokens, request.Token)
		m.passwords[email] = request.Password
	}
	m.mu.Unlock()
	if !exists {
		writeError(w, http.StatusBadRequest, "invalid reset token")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
