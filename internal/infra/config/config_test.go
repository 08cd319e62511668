package config

import (
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/personalgpt")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("ACCESS_TOKEN_TTL", "2m")
	t.Setenv("REFRESH_TOKEN_TTL", "3h")
	t.Setenv("PASSWORD_PEPPER", "pepper")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 2*time.Minute {
		t.Fatalf("AccessTokenTTL want 2m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 3*time.Hour {
		t.Fatalf("RefreshTokenTTL want 3h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.HTTPAddress != ":8000" {
		t.Fatalf("HTTPAddress default want :8000, got %s", cfg.HTTPAddress)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/personalgpt")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AccessTokenTTL != 24*time.Hour {
		t.Fatalf("default access TTL want 24h, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 168*time.Hour {
		t.Fatalf("default refresh TTL want 168h, got %v", cfg.RefreshTokenTTL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	// everything except JWT_SECRET
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("REDIS_ADDRESS", "r")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing JWT_SECRET, got nil")
	}
}
