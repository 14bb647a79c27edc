// Package store persists the AppKit session token.
//
// A Store holds at most one bearer token. Reads are destructive for dead
// tokens: an absent, malformed, or expired snapshot is removed as part of
// the read, so callers only ever observe a usable token or nil.
package store
