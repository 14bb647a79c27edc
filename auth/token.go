package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/reown-com/appkit-go/schema"
	"golang.org/x/oauth2"
)

// tokenFromPayload converts the wire token into its persisted form. When the
// server omits expiresAt and the access token is a JWT, the exp claim is
// used instead; a token with neither stays valid until replaced.
func tokenFromPayload(payload *schema.Token) *oauth2.Token {
	if payload == nil || payload.Token == "" {
		return nil
	}
	token := &oauth2.Token{AccessToken: payload.Token, TokenType: "Bearer"}
	if payload.ExpiresAt != nil {
		token.Expiry = *payload.ExpiresAt
	} else if expiry, ok := jwtExpiry(payload.Token); ok {
		token.Expiry = expiry
	}
	return token
}

// jwtExpiry extracts exp from an unverified JWT. Verification belongs to the
// server; the client only needs the expiry to schedule invalidation.
func jwtExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return time.Time{}, false
	}
	return expiresAt.Time, true
}
