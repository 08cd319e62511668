package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/personalgpt/backend/internal/domain/auth/model"
)

// UserRepo is the persistence port for accounts. CreateUser inserts the user
// together with its default settings row in one transaction; a uniqueness
// violation surfaces as ErrAlreadyExists carrying the email/username message.
type UserRepo interface {
	CreateUser(ctx context.Context, user model.User, settings model.UserSettings) (uuid.UUID, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	UpdateUser(ctx context.Context, user model.User) error
}

// SettingsRepo reads and partially updates the per-user settings row.
type SettingsRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (model.UserSettings, error)
	Update(ctx context.Context, userID uuid.UUID, upd model.SettingsUpdate) (model.UserSettings, error)
}
