package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type tags. The tag is what keeps a captured refresh token from being
// replayed as an access token and vice versa.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is the full token payload: {sub, exp, type}.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// JWTUtil issues and validates the two token kinds. Validate* returns
// ErrInvalidToken for every failure mode (signature, structure, expiry,
// wrong type) so callers cannot tell them apart.
type JWTUtil interface {
	GenerateAccessToken(userID uuid.UUID) (token string, exp time.Time, err error)
	GenerateRefreshToken(userID uuid.UUID) (token string, exp time.Time, err error)
	ValidateAccessToken(raw string) (Claims, error)
	ValidateRefreshToken(raw string) (Claims, error)
}
