package auth

import (
	"encoding/json"

	"github.com/reown-com/appkit-go/schema"
)

// Fallback messages used when the server response carries no usable message.
const (
	signUpFallback       = "sign up failed"
	signInFallback       = "sign in failed"
	signOutFallback      = "sign out failed"
	fetchUserFallback    = "failed to fetch user"
	updateUserFallback   = "failed to update user"
	resetRequestFallback = "password reset request failed"
	resetConfirmFallback = "password reset failed"
)

// Error is the normalized error returned by every operation. Message holds
// the server-provided message when one was present, otherwise the
// operation's fallback text.
type Error struct {
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// newAPIError maps a non-2xx response body onto an Error.
func newAPIError(statusCode int, body []byte, fallback string) *Error {
	message := fallback
	payload := &schema.ErrorResponse{}
	if err := json.Unmarshal(body, payload); err == nil {
		if payload.Message != "" {
			message = payload.Message
		} else if payload.Error != "" {
			message = payload.Error
		}
	}
	return &Error{StatusCode: statusCode, Message: message}
}

// newTransportError wraps a failure to reach the server at all.
func newTransportError(fallback string, cause error) *Error {
	return &Error{Message: fallback, cause: cause}
}
