package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
)

func newRepo(t *testing.T) (*RedisTokenRepo, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)

	client := redisv9.NewClient(&redisv9.Options{
		Addr: mr.Addr(),
	})
	return NewRedisTokenRepo(client), mr
}

func TestRedisTokenRepo_RevokeAndIsRevoked(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	exp := time.Now().Add(10 * time.Minute)
	if err := repo.Revoke(ctx, "digest1", exp); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	revoked, err := repo.IsRevoked(ctx, "digest1")
	if err != nil {
		t.Fatalf("IsRevoked err: %v", err)
	}
	if !revoked {
		t.Fatal("token should be marked revoked")
	}
}

func TestRedisTokenRepo_KeyAbsent(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "absent-digest")
	if err != nil {
		t.Fatalf("IsRevoked err: %v", err)
	}
	if revoked {
		t.Fatal("absent key must be considered NOT revoked")
	}
}

func TestRedisTokenRepo_EntryExpires(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()

	if err := repo.Revoke(ctx, "digest2", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	revoked, err := repo.IsRevoked(ctx, "digest2")
	if err != nil {
		t.Fatalf("IsRevoked err: %v", err)
	}
	if revoked {
		t.Fatal("entry must expire together with the token")
	}
}

func TestRedisTokenRepo_PastExpiryStillStored(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	// an already-expired token still gets a short-lived key rather than a
	// Set with non-positive TTL
	if err := repo.Revoke(ctx, "digest3", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, err := repo.IsRevoked(ctx, "digest3")
	if err != nil || !revoked {
		t.Fatalf("expected revoked, got %v / %v", revoked, err)
	}
}
