package repo

import (
	"context"
	"time"
)

// TokenRepo is the denylist consulted on every token validation. Keys are
// opaque token digests; entries live until the token's own expiry.
type TokenRepo interface {
	Revoke(ctx context.Context, key string, exp time.Time) error
	IsRevoked(ctx context.Context, key string) (bool, error)
}
