// Package appkit provides a thin Go client for the AppKit authentication
// API (sign-up, sign-in, sign-out, profile fetch/update, password reset).
//
// The package glues the auth operations defined in the auth package with a
// credential-injecting HTTP transport, durable token persistence and an
// observable session state. In practice it is used as an umbrella package
// exposing one primary entry-point: NewClient, which returns a fully
// configured auth service and restores any persisted session best-effort.
//
// The Options structure carries yaml/json and go-flags tags so it can be
// populated from configuration files or CLI flags.
//
// Example:
//
//	service, _ := appkit.NewClient(&appkit.Options{APIKey: "key"})
//	user, err := service.SignIn(ctx, &schema.SignInRequest{Email: email, Password: password})
//
// See the README for a more complete introduction.
package appkit
