package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"plannr/internal/domain"
)

type jwtInspector struct {
	parser *jwt.Parser
}

// NewJWTInspector returns a TokenInspector that reads the exp claim of the backend's JWT
// without verifying its signature. The signing key belongs to the backend; the claim is
// only used to stop presenting a token that has already expired.
func NewJWTInspector() domain.TokenInspector {
	return &jwtInspector{parser: jwt.NewParser()}
}

func (i *jwtInspector) ExpiresAt(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.UTC(), true
}
