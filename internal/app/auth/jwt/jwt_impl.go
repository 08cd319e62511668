package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/personalgpt/backend/internal/domain/auth/errors"
	domainjwt "github.com/personalgpt/backend/internal/domain/auth/jwt"
	"github.com/personalgpt/backend/internal/infra/config"
)

// JwtUtilImpl signs and validates HS256 tokens with the process secret. The
// secret and TTLs are fixed at construction; nothing here mutates after New.
type JwtUtilImpl struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTUtil(cfg *config.Config) (*JwtUtilImpl, error) {
	if cfg.JWTSecret == "" {
		return nil, customErrors.NewInvalidArgument("empty JWT secret")
	}
	return &JwtUtilImpl{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

func (j *JwtUtilImpl) GenerateAccessToken(userID uuid.UUID) (string, time.Time, error) {
	return j.generate(userID, domainjwt.TypeAccess, j.accessTTL)
}

func (j *JwtUtilImpl) GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error) {
	return j.generate(userID, domainjwt.TypeRefresh, j.refreshTTL)
}

func (j *JwtUtilImpl) generate(userID uuid.UUID, typ string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()

	claims := domainjwt.Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (j *JwtUtilImpl) ValidateAccessToken(raw string) (domainjwt.Claims, error) {
	return j.validate(raw, domainjwt.TypeAccess)
}

func (j *JwtUtilImpl) ValidateRefreshToken(raw string) (domainjwt.Claims, error) {
	return j.validate(raw, domainjwt.TypeRefresh)
}

// validate collapses every failure mode into ErrInvalidToken so the caller
// cannot distinguish a bad signature from a wrong type tag or an expired
// token.
func (j *JwtUtilImpl) validate(raw, wantType string) (domainjwt.Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &domainjwt.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return j.secret, nil
	})

	if err != nil || !token.Valid {
		return domainjwt.Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*domainjwt.Claims)
	if !ok {
		return domainjwt.Claims{}, customErrors.ErrInvalidToken
	}

	// All three fields must be present; a structurally incomplete payload
	// never yields a partial result.
	if claims.Subject == "" || claims.ExpiresAt == nil || claims.Type == "" {
		return domainjwt.Claims{}, customErrors.ErrInvalidToken
	}

	// The library already rejects expired tokens, but the expiry check is
	// re-done here so the invariant does not depend on parser defaults.
	if !claims.ExpiresAt.Time.After(time.Now()) {
		return domainjwt.Claims{}, customErrors.ErrInvalidToken
	}

	if claims.Type != wantType {
		return domainjwt.Claims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}
