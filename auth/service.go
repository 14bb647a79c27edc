package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/reown-com/appkit-go/auth/session"
	"github.com/reown-com/appkit-go/auth/store"
	"github.com/reown-com/appkit-go/auth/transport"
	"github.com/reown-com/appkit-go/schema"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Service exposes the AppKit auth operations over a single HTTP client.
// Successful operations feed the token store and the session state; failures
// leave both untouched (sign-out excepted, which always clears them).
type Service struct {
	baseURL string
	client  *http.Client
	tokens  store.Store
	state   *session.State
	logger  zerolog.Logger
}

func New(baseURL string, client *http.Client, tokens store.Store, options ...Option) *Service {
	ret := &Service{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		tokens:  tokens,
		state:   session.New(),
		logger:  zlog.Logger,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// State returns the observable session state owned by this service.
func (s *Service) State() *session.State {
	return s.state
}

// SignUp creates an account. The issued token is persisted and the returned
// user becomes current; no session is opened (the API issues one only on
// sign-in).
func (s *Service) SignUp(ctx context.Context, request *schema.SignUpRequest) (*schema.User, error) {
	resp, err := call[schema.AuthResponse](ctx, s, http.MethodPost, "/users", request, signUpFallback)
	if err != nil {
		return nil, err
	}
	if err = s.adopt(ctx, resp.Token); err != nil {
		return nil, err
	}
	s.state.SetUser(resp.User)
	return resp.User, nil
}

// SignIn opens a session. The issued token is persisted and both the user
// and the session become current.
func (s *Service) SignIn(ctx context.Context, request *schema.SignInRequest) (*schema.User, error) {
	resp, err := call[schema.AuthResponse](ctx, s, http.MethodPost, "/sessions", request, signInFallback)
	if err != nil {
		return nil, err
	}
	if err = s.adopt(ctx, resp.Token); err != nil {
		return nil, err
	}
	s.state.Set(resp.User, resp.Session)
	return resp.User, nil
}

// SignOut closes the current session. Local state is cleared no matter what
// the server answers; a failing exchange is logged and swallowed. Without a
// current session no request is issued at all.
func (s *Service) SignOut(ctx context.Context) error {
	current := s.state.Session()
	defer s.reset(ctx)
	if current == nil {
		return nil
	}
	if _, err := call[struct{}](ctx, s, http.MethodDelete, "/sessions/"+current.ID, nil, signOutFallback); err != nil {
		s.logger.Warn().Err(err).Str("session", current.ID).Msg("sign out failed on server, local state cleared anyway")
	}
	return nil
}

// User fetches the account behind the stored token and makes it current.
func (s *Service) User(ctx context.Context) (*schema.User, error) {
	user, err := call[schema.User](ctx, s, http.MethodGet, "/users/me", nil, fetchUserFallback)
	if err != nil {
		return nil, err
	}
	s.state.SetUser(user)
	return user, nil
}

// UpdateUser applies a partial profile update; the merged record returned by
// the server becomes current.
func (s *Service) UpdateUser(ctx context.Context, request *schema.UpdateUserRequest) (*schema.User, error) {
	user, err := call[schema.User](ctx, s, http.MethodPatch, "/users/me", request, updateUserFallback)
	if err != nil {
		return nil, err
	}
	s.state.SetUser(user)
	return user, nil
}

// RequestPasswordReset asks the server to email a reset token. No local
// state changes.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := call[struct{}](ctx, s, http.MethodPost, "/password-reset", &schema.PasswordResetRequest{Email: email}, resetRequestFallback)
	return err
}

// ResetPassword completes a reset with the emailed token. The request is
// sent anonymously so a stale bearer token never accompanies the reset
// credential. No local state changes.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	payload := &schema.PasswordResetConfirm{Token: token, Password: password}
	_, err := call[struct{}](ctx, s, http.MethodPost, "/password-reset/confirm", payload, resetConfirmFallback, anonymous())
	return err
}

// IsAuthenticated reports whether a current user and a usable stored token
// both exist. The token read may invalidate an expired snapshot, in which
// case the session state is cleared as part of the check.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	if s.state.User() == nil {
		return false
	}
	if s.tokens.Load(ctx) == nil {
		s.state.Clear()
		return false
	}
	return true
}

// Restore rebuilds in-memory auth state from a persisted token. With no
// usable token it is a no-op; with one, the current user is fetched.
func (s *Service) Restore(ctx context.Context) error {
	if s.tokens.Load(ctx) == nil {
		return nil
	}
	_, err := s.User(ctx)
	return err
}

func (s *Service) adopt(ctx context.Context, payload *schema.Token) error {
	token := tokenFromPayload(payload)
	if token == nil {
		return nil
	}
	return s.tokens.Save(ctx, token)
}

func (s *Service) reset(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear stored token")
	}
	s.state.Clear()
}

type callOption func(*http.Request) *http.Request

func anonymous() callOption {
	return func(req *http.Request) *http.Request {
		return req.WithContext(transport.WithAnonymous(req.Context()))
	}
}

// call performs one HTTP exchange and decodes the response into R. Non-2xx
// responses are logged and mapped onto a normalized *Error carrying the
// server message or the operation fallback.
func call[R any](ctx context.Context, s *Service, method, path string, body any, fallback string, options ...callOption) (*R, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range options {
		req = opt(req)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return nil, newTransportError(fallback, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("failed to read response")
		return nil, newTransportError(fallback, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := newAPIError(resp.StatusCode, data, fallback)
		s.logger.Error().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg(apiErr.Message)
		return nil, apiErr
	}

	result := new(R)
	if len(data) > 0 {
		if err = json.Unmarshal(data, result); err != nil {
			s.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("failed to decode response")
			return nil, newTransportError(fallback, err)
		}
	}
	return result, nil
}
