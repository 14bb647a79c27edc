// Package auth implements the AppKit authentication operations: sign-up,
// sign-in, sign-out, profile fetch/update and password reset.
//
// Every operation is a single HTTP exchange against the AppKit API whose
// success feeds two collaborators:
//   - the token store (auth/store), which persists the bearer token and
//     invalidates it on expiry as a side effect of reading it, and
//   - the session state (auth/session), which holds the observable current
//     user and session.
//
// Errors are normalized into *Error with the server message or a fixed
// per-operation fallback. Sign-out is the one no-fail operation: local
// state is cleared regardless of the server response.
package auth
