package model

import (
	"time"

	"github.com/google/uuid"
)

// Schema skeleton for the chat side of the application. None of these carry
// behavior yet; the routes over them are placeholders.

type Conversation struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;index"`

	Title        string  `gorm:"size:255"`
	Summary      string  `gorm:"type:text"`
	SystemPrompt string  `gorm:"type:text"`
	ModelUsed    string  `gorm:"size:100;default:gpt-4"`
	Temperature  float64 `gorm:"default:0.7"`

	IsArchived bool `gorm:"default:false;index"`
	IsPinned   bool `gorm:"default:false"`

	MessageCount int `gorm:"default:0"`
	TokenCount   int `gorm:"default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`
}

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID `gorm:"type:uuid;index"`

	Role    string `gorm:"size:20"`
	Content string `gorm:"type:text"`

	TokenCount    int    `gorm:"default:0"`
	ModelResponse bool   `gorm:"default:false"`
	EmbeddingID   string `gorm:"size:255;index"`
	IsLiked       *bool

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// APIKey holds external-access credentials. The rate-limit columns are
// declarations only; nothing enforces them yet.
type APIKey struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;index"`

	Name    string `gorm:"size:255"`
	KeyHash string `gorm:"size:255;uniqueIndex"`

	Permissions       string `gorm:"type:jsonb;default:'{}'"`
	RateLimitRequests int    `gorm:"default:100"`
	RateLimitWindow   int    `gorm:"default:60"`

	IsActive   bool `gorm:"default:true;index"`
	LastUsedAt *time.Time

	CreatedAt time.Time
	ExpiresAt *time.Time
}
