package transport

import (
	"net/http"

	"github.com/reown-com/appkit-go/auth/store"
)

type Option func(*RoundTripper)

// WithStore sets the token store consulted on each request.
func WithStore(store store.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithOrganizationID sets the organization header value.
func WithOrganizationID(organizationID string) Option {
	return func(t *RoundTripper) {
		t.organizationID = organizationID
	}
}

// WithTransport sets the underlying round tripper.
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}
