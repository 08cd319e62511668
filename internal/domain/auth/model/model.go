package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record. PasswordHash never leaves the process: the
// transport layer maps User to its public DTO projection.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"size:255;uniqueIndex:uni_users_email"`
	Username     string    `gorm:"size:100;uniqueIndex:uni_users_username"`
	PasswordHash string    `gorm:"size:255"`
	FullName     string    `gorm:"size:255"`
	AvatarURL    string    `gorm:"size:500"`
	IsActive     bool      `gorm:"default:true;index"`
	IsVerified   bool      `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSettings is the 1:1 preferences row created together with the user.
type UserSettings struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	PreferredModel string  `gorm:"size:100;default:gpt-4"`
	Temperature    float64 `gorm:"default:0.7"`
	MaxTokens      int     `gorm:"default:2000"`

	Theme              string `gorm:"size:20;default:light"`
	Language           string `gorm:"size:10;default:en"`
	Timezone           string `gorm:"size:50;default:UTC"`
	EmailNotifications bool   `gorm:"default:true"`

	CustomInstructions   string `gorm:"type:text"`
	SearchHistoryEnabled bool   `gorm:"default:true"`
	DataRetentionDays    int    `gorm:"default:90"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultSettings returns the settings row attached to a freshly registered
// user.
func DefaultSettings(userID uuid.UUID) UserSettings {
	return UserSettings{
		ID:                   uuid.New(),
		UserID:               userID,
		PreferredModel:       "gpt-4",
		Temperature:          0.7,
		MaxTokens:            2000,
		Theme:                "light",
		Language:             "en",
		Timezone:             "UTC",
		EmailNotifications:   true,
		SearchHistoryEnabled: true,
		DataRetentionDays:    90,
	}
}

// SettingsUpdate carries only the fields the client actually sent; nil means
// "leave untouched".
type SettingsUpdate struct {
	PreferredModel       *string
	Temperature          *float64
	MaxTokens            *int
	Theme                *string
	Language             *string
	Timezone             *string
	EmailNotifications   *bool
	CustomInstructions   *string
	SearchHistoryEnabled *bool
	DataRetentionDays    *int
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	UserID       uuid.UUID
}
