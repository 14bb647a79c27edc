// Package session holds the observable authentication state: the current
// user and the current session. The auth service is the only writer; the
// invariant is that a non-nil user implies a usable token in the store,
// enforced best-effort by the service on every check.
package session
