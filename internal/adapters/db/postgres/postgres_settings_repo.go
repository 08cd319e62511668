package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	customErrors "github.com/personalgpt/backend/internal/domain/auth/errors"
	"github.com/personalgpt/backend/internal/domain/auth/model"
)

type PostgresSettingsRepo struct {
	db *gorm.DB
}

func NewPostgresSettingsRepo(db *gorm.DB) *PostgresSettingsRepo {
	return &PostgresSettingsRepo{db: db}
}

func (p *PostgresSettingsRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (model.UserSettings, error) {
	var s model.UserSettings
	res := p.db.WithContext(ctx).Where("user_id = ?", userID).First(&s)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.UserSettings{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.UserSettings{}, customErrors.WrapInternal(err, "GetByUserID")
	}
	return s, nil
}

// Update writes only the fields present in upd; everything else keeps its
// stored value. Returns the full row as persisted afterwards.
func (p *PostgresSettingsRepo) Update(ctx context.Context, userID uuid.UUID, upd model.SettingsUpdate) (model.UserSettings, error) {
	changes := updateColumns(upd)
	if len(changes) > 0 {
		res := p.db.WithContext(ctx).
			Model(&model.UserSettings{}).
			Where("user_id = ?", userID).
			Updates(changes)
		if err := res.Error; err != nil {
			return model.UserSettings{}, customErrors.WrapInternal(err, "Update")
		}
		if res.RowsAffected == 0 {
			return model.UserSettings{}, customErrors.ErrNotFound
		}
	}
	return p.GetByUserID(ctx, userID)
}

func updateColumns(upd model.SettingsUpdate) map[string]interface{} {
	changes := map[string]interface{}{}
	if upd.PreferredModel != nil {
		changes["preferred_model"] = *upd.PreferredModel
	}
	if upd.Temperature != nil {
		changes["temperature"] = *upd.Temperature
	}
	if upd.MaxTokens != nil {
		changes["max_tokens"] = *upd.MaxTokens
	}
	if upd.Theme != nil {
		changes["theme"] = *upd.Theme
	}
	if upd.Language != nil {
		changes["language"] = *upd.Language
	}
	if upd.Timezone != nil {
		changes["timezone"] = *upd.Timezone
	}
	if upd.EmailNotifications != nil {
		changes["email_notifications"] = *upd.EmailNotifications
	}
	if upd.CustomInstructions != nil {
		changes["custom_instructions"] = *upd.CustomInstructions
	}
	if upd.SearchHistoryEnabled != nil {
		changes["search_history_enabled"] = *upd.SearchHistoryEnabled
	}
	if upd.DataRetentionDays != nil {
		changes["data_retention_days"] = *upd.DataRetentionDays
	}
	return changes
}
