// Package schema defines the wire types exchanged with the AppKit API.
package schema

import "time"

// User is the server-authoritative account record; the client never
// computes or amends it locally.
type User struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	FirstName string         `json:"firstName,omitempty"`
	LastName  string         `json:"lastName,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Session is the server-side authenticated context, distinct from the
// bearer token, with its own id and expiry.
type Session struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Token is the bearer credential issued on sign-up and sign-in. ExpiresAt
// may be omitted by the server; see auth.tokenFromPayload for the fallback.
type Token struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// SignUpRequest creates a new account.
type SignUpRequest struct {
	Email     string         `json:"email"`
	Password  string         `json:"password"`
	FirstName string         `json:"firstName,omitempty"`
	LastName  string         `json:"lastName,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// SignInRequest opens a session for an existing account.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries a partial profile update; nil fields are left
// untouched by the server.
type UpdateUserRequest struct {
	FirstName *string        `json:"firstName,omitempty"`
	LastName  *string        `json:"lastName,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// AuthResponse is the sign-up / sign-in response envelope. Sign-up carries
// no session, only a token.
type AuthResponse struct {
	User    *User    `json:"user"`
	Session *Session `json:"session,omitempty"`
	Token   *Token   `json:"token"`
}

// PasswordResetRequest starts a password reset for the given email.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm completes a password reset with the emailed token.
type PasswordResetConfirm struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ErrorResponse is the API error envelope; either field may carry the
// server message.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
