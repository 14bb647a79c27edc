// Package transport provides the HTTP round tripper used for all AppKit API
// calls. It attaches the API key, optional organization id, a request id and
// the stored bearer token to every outgoing request.
package transport
