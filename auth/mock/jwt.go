package mock

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "appkit-mock"

// createJWT signs an RS256 access token for the given user id.
func (m *Server) createJWT(userID string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": issuer,
		"sub": userID,
		"exp": now.Add(expiry).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(m.PrivateKey)
}

// subjectOf verifies raw against the server key and returns its subject.
func (m *Server) subjectOf(raw string) (string, bool) {
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		return &m.PrivateKey.PublicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", false
	}
	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", false
	}
	return subject, true
}
