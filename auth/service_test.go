package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/reown-com/appkit-go/auth/mock"
	"github.com/reown-com/appkit-go/auth/store"
	"github.com/reown-com/appkit-go/auth/transport"
	"github.com/reown-com/appkit-go/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func newTestService(t *testing.T, server *mock.Server) (*Service, store.Store) {
	t.Helper()
	tokens := store.NewMemoryStore()
	rt, err := transport.New(testAPIKey, transport.WithStore(tokens))
	require.NoError(t, err)
	service := New(server.URL, &http.Client{Transport: rt}, tokens, WithLogger(zerolog.Nop()))
	return service, tokens
}

func signUp(t *testing.T, service *Service, email, password string) *schema.User {
	t.Helper()
	user, err := service.SignUp(context.Background(), &schema.SignUpRequest{Email: email, Password: password})
	require.NoError(t, err)
	return user
}

func TestService_SignUp(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	service, tokens := newTestService(t, server)
	ctx := context.Background()

	user := signUp(t, service, "alice@example.com", "secret")
	require.Equal(t, "alice@example.com", user.Email)
	require.NotNil(t, service.State().User())
	require.Nil(t, service.State().Session(), "sign-up issues a token but opens no session")
	require.NotNil(t, tokens.Load(ctx))
	require.True(t, service.IsAuthenticated(ctx))
}

func TestService_SignUp_Conflict(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	service, tokens := newTestService(t, server)
	ctx := context.Background()

	signUp(t, service, "alice@example.com", "secret")
	require.NoError(t, service.SignOut(ctx))

	_, err = service.SignUp(ctx, &schema.SignUpRequest{Email: "alice@example.com", Password: "other"})
	require.Error(t, err)
	apiErr := &Error{}
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	require.Equal(t, "email already registered", apiErr.Message)
	require.Nil(t, service.State().User(), "failed sign-up must not change state")
	require.Nil(t, tokens.Load(ctx))
}

func TestService_SignIn(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	service, tokens := newTestService(t, server)
	ctx := context.Background()

	user := signUp(t, service, "alice@example.com", "secret")
	require.NoError(t, service.SignOut(ctx))
	require.False(t, service.IsAuthenticated(ctx))

	signedIn, err := service.SignIn(ctx, &schema.SignInRequest{Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, user.ID, signedIn.ID)
	require.NotNil(t, service.State().User())
	require.NotNil(t, service.State().Session())
	require.Equal(t, user.ID, service.State().Session().UserID)
	require.NotNil(t, tokens.Load(ctx))
	require.True(t, service.IsAuthenticated(ctx))
}

func TestService_SignIn_BadCredentials(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	service, tokens := newTestService(t, server)
	ctx := context.Background()

	signUp(t, service, "alice@example.com", "secret")
	require.NoError(t, service.SignOut(ctx))

	_, err = service.SignIn(ctx, &schema.SignInRequest{Email: "alice@example.com", Password: "wrong"})
	require.Error(t, err)
	require.Equal(t, "invalid credentials", err.Error())
	require.Nil(t, service.State().User())
	require.Nil(t, service.State().Session())
	require.Nil(t, tokens.Load(ctx))
	require.False(t, service.IsAuthenticated(ctx))
}

func TestService_SignOut(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	service, tokens := newTestService(t, server)
	ctx := context.Background()

	signUp(t, service, "alice@example.com", "secret")
	require.NoError(t, service.SignOut(ctx))
	_, err = service.SignIn(ctx, &schema.SignInRequest{Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)
	require.NotEmpty(t, server.Sessions())

	require.NoError(t, service.SignOut(ctx))
	require.Nil(t, service.State().User())
	require.Nil(t, service.State().Session())
	require.Nil(t, tokens.Load(ctx))
	require.False(t, service.IsAuthenticated(ctx))
	require.Empty(t, server.Sessions(), "server session should be closed")
}

func TestService_SignOut_ServerFailureStillClears(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	server.SignOutHandler = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}
	service, tokens := newTestService(t, server)
	ctx := context.Background()

	signUp(t, service, "alice@example.com", "secret")
	_, err = service.SignIn(ctx, &schema.SignInRequest{Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, service.SignOut(ctx), "sign-out is no-fail")
	require.Nil(t, service.State().User())
	require.Nil(t, service.State().Session())
	require.Nil(t, tokens.Load(ctx))
	require.False(t, service.IsAuthenticated(ctx))
}

func TestService_SignOut_NoSessionNoRequest(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	service, _ := newTestService(t, server)
	ctx := context.Background()

	before := len(server.Requests())
	require.NoError(t, service.SignOut(ctx))
	require.Len(t, server.Requests(), before, "sign-out without a session must not call the server")
	require.False(t, service.IsAuthenticated(ctx))
}

func TestService_User(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	service, _ := newTestService(t, server)
	ctx := context.Background()

	created := signUp(t, service, "alice@example.com", "secret")
	fetched, err := service.User(ctx)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, "alice@example.com", service.State().User().Email)
}

func TestService_User_Unauthorized(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	service, _ := newTestService(t, server)

	_, err = service.User(context.Background())
	require.Error(t, err)
	apiErr := &Error{}
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestService_UpdateUser(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	service, _ := newTestService(t, server)
	ctx := context.Background()

	signUp(t, service, "alice@example.com", "secret")
	firstName := "Alice"
	updated, err := service.UpdateUser(ctx, &schema.UpdateUserRequest{FirstName: &firstName})
	require.NoError(t, err)
	require.Equal(t, "Alice", updated.FirstName)
	require.Equal(t, "Alice", service.State().User().FirstName)
}

func TestService_PasswordReset(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	service, _ := newTestService(t, server)
	ctx := context.Background()

	signUp(t, service, "alice@example.com", "secret")
	require.NoError(t, service.SignOut(ctx))

	require.NoError(t, service.RequestPasswordReset(ctx, "alice@example.com"))
	resetToken := server.LastResetToken("alice@example.com")
	require.NotEmpty(t, resetToken)

	require.NoError(t, service.ResetPassword(ctx, resetToken, "updated"))
	require.Nil(t, service.State().User(), "password reset must not change session state")

	_, err = service.SignIn(ctx, &schema.SignInRequest{Email: "alice@example.com", Password: "updated"})
	require.NoError(t, err)
}

func TestService_ResetPassword_InvalidToken(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	service, _ := newTestService(t, server)

	err = service.ResetPassword(context.Background(), "nope", "updated")
	require.Error(t, err)
	require.Equal(t, "invalid reset token", err.Error())
}

func TestService_Restore(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	ctx := context.Background()

	first, tokens := newTestService(t, server)
	signUp(t, first, "alice@example.com", "secret")

	// a second service over the same store simulates a process restart
	rt, err := transport.New(testAPIKey, transport.WithStore(tokens))
	require.NoError(t, err)
	second := New(server.URL, &http.Client{Transport: rt}, tokens, WithLogger(zerolog.Nop()))
	require.Nil(t, second.State().User())

	require.NoError(t, second.Restore(ctx))
	require.NotNil(t, second.State().User())
	require.Equal(t, "alice@example.com", second.State().User().Email)
	require.True(t, second.IsAuthenticated(ctx))
}

func TestService_Restore_NoTokenIsNoop(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	service, _ := newTestService(t, server)

	before := len(server.Requests())
	require.NoError(t, service.Restore(context.Background()))
	require.Len(t, server.Requests(), before, "restore without a token must not call the server")
}

func TestService_IsAuthenticated_ExpiredTokenClearsState(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	ctx := context.Background()

	now := time.Now()
	tokens := store.NewMemoryStore(store.WithNow(func() time.Time { return now }))
	rt, err := transport.New(testAPIKey, transport.WithStore(tokens))
	require.NoError(t, err)
	service := New(server.URL, &http.Client{Transport: rt}, tokens, WithLogger(zerolog.Nop()))

	signUp(t, service, "alice@example.com", "secret")
	require.True(t, service.IsAuthenticated(ctx))

	now = now.Add(2 * time.Hour)
	require.False(t, service.IsAuthenticated(ctx))
	require.Nil(t, service.State().User(), "stale user must be cleared by the check")
	require.Nil(t, tokens.Load(ctx))
}

func TestService_FallbackErrorMessage(t *testing.T) {
	server, err := mock.NewServer(testAPIKey)
	require.NoError(t, err)
	defer server.Close()
	server.SignInHandler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}
	service, _ := newTestService(t, server)

	_, err = service.SignIn(context.Background(), &schema.SignInRequest{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	require.Equal(t, "sign in failed", err.Error())
}
