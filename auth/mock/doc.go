// Package mock provides an in-process AppKit API server for tests and
// examples.
package mock
