package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueToken signs an HS256 token that AuthMiddleware accepts. Production tokens come
// from the identity provider; this serves local development and tests.
func IssueToken(secret, issuer, tenantID, actor string, ttl time.Duration) (string, error) {
	if tenantID == "" || actor == "" {
		return "", errors.New("tenant and actor are required")
	}
	now := time.Now()
	claims := LedgerClaims{
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actor,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
