package transport

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/reown-com/appkit-go/auth/store"
)

const (
	apiKeyHeader       = "X-API-Key"
	organizationHeader = "X-Organization-ID"
	requestIDHeader    = "X-Request-Id"
)

// RoundTripper decorates every outgoing AppKit request with the API
// credentials and, when the store holds a usable token, a bearer
// Authorization header. The token is re-read from the store on each request,
// so an expiry detected by the store immediately stops the header from being
// sent.
type RoundTripper struct {
	apiKey         string
	organizationID string
	store          store.Store
	transport      http.RoundTripper
}

func New(apiKey string, options ...Option) (*RoundTripper, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	ret := &RoundTripper{
		apiKey:    apiKey,
		store:     store.NewMemoryStore(),
		transport: http.DefaultTransport,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret, nil
}

func (r *RoundTripper) Store() store.Store {
	return r.store
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	next := clone(req)
	next.Header.Set(apiKeyHeader, r.apiKey)
	if r.organizationID != "" {
		next.Header.Set(organizationHeader, r.organizationID)
	}
	if next.Header.Get(requestIDHeader) == "" {
		next.Header.Set(requestIDHeader, uuid.NewString())
	}
	if !isAnonymous(req.Context()) {
		if token := r.store.Load(req.Context()); token != nil {
			next.Header.Set("Authorization", "Bearer "+token.AccessToken)
		}
	}
	return r.transport.RoundTrip(next)
}
