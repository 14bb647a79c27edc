package transport

import (
	"errors"
	"net/http"
)

// ErrMissingAPIKey is returned when a RoundTripper is built without an API key.
var ErrMissingAPIKey = errors.New("api key is required")

func clone(r *http.Request) *http.Request {
	// headers are mutated; body is passed through untouched
	return r.Clone(r.Context())
}
