package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/personalgpt/backend/internal/domain/auth/errors"
	"github.com/personalgpt/backend/internal/domain/auth/model"
)

func TestSettingsRepo_GetByUserID(t *testing.T) {
	db := setupDB(t)
	users := NewPostgresUserRepo(db)
	settings := NewPostgresSettingsRepo(db)
	ctx := context.Background()

	user, def := newUser("s@x.com", "suser")
	if _, err := users.CreateUser(ctx, user, def); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := settings.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PreferredModel != "gpt-4" || got.Theme != "light" {
		t.Fatalf("unexpected defaults: %+v", got)
	}

	if _, err := settings.GetByUserID(ctx, uuid.New()); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSettingsRepo_PartialUpdate(t *testing.T) {
	db := setupDB(t)
	users := NewPostgresUserRepo(db)
	settings := NewPostgresSettingsRepo(db)
	ctx := context.Background()

	user, def := newUser("s@x.com", "suser")
	if _, err := users.CreateUser(ctx, user, def); err != nil {
		t.Fatalf("create: %v", err)
	}

	theme := "dark"
	got, err := settings.Update(ctx, user.ID, model.SettingsUpdate{Theme: &theme})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Theme != "dark" {
		t.Fatalf("theme not updated: %+v", got)
	}
	// absent fields must keep their stored values
	if got.PreferredModel != "gpt-4" || got.MaxTokens != 2000 || got.Timezone != "UTC" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestSettingsRepo_UpdateEmptyPatch(t *testing.T) {
	db := setupDB(t)
	users := NewPostgresUserRepo(db)
	settings := NewPostgresSettingsRepo(db)
	ctx := context.Background()

	user, def := newUser("s@x.com", "suser")
	if _, err := users.CreateUser(ctx, user, def); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := settings.Update(ctx, user.ID, model.SettingsUpdate{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Theme != "light" {
		t.Fatalf("empty patch must be a no-op: %+v", got)
	}
}

func TestSettingsRepo_UpdateMissingRow(t *testing.T) {
	db := setupDB(t)
	settings := NewPostgresSettingsRepo(db)

	theme := "dark"
	_, err := settings.Update(context.Background(), uuid.New(), model.SettingsUpdate{Theme: &theme})
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
