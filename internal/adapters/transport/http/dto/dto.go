package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/personalgpt/backend/internal/domain/auth/model"
)

type RegisterDTO struct {
	Email    string `json:"email"     validate:"required,email"`
	Username string `json:"username"  validate:"required,alphanum,min=3,max=20"`
	Password string `json:"password"  validate:"required,strongpwd"`
	FullName string `json:"full_name" validate:"max=255"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutDTO is optional extra input: the client may hand over its refresh
// token so it gets denylisted together with the access token.
type LogoutDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// SettingsUpdateDTO uses pointers so that absent fields stay untouched
// instead of being reset to zero values.
type SettingsUpdateDTO struct {
	PreferredModel       *string  `json:"preferred_model"       validate:"omitempty,min=1,max=100"`
	Temperature          *float64 `json:"temperature"           validate:"omitempty,gte=0,lte=2"`
	MaxTokens            *int     `json:"max_tokens"            validate:"omitempty,gt=0"`
	Theme                *string  `json:"theme"                 validate:"omitempty,oneof=light dark"`
	Language             *string  `json:"language"              validate:"omitempty,min=2,max=10"`
	Timezone             *string  `json:"timezone"              validate:"omitempty,max=50"`
	EmailNotifications   *bool    `json:"email_notifications"`
	CustomInstructions   *string  `json:"custom_instructions"`
	SearchHistoryEnabled *bool    `json:"search_history_enabled"`
	DataRetentionDays    *int     `json:"data_retention_days"   validate:"omitempty,gt=0"`
}

// UserResponse is the public projection of a user; the password hash has no
// field here on purpose.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		FullName:   u.FullName,
		AvatarURL:  u.AvatarURL,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type SettingsResponse struct {
	ID                   uuid.UUID `json:"id"`
	UserID               uuid.UUID `json:"user_id"`
	PreferredModel       string    `json:"preferred_model"`
	Temperature          float64   `json:"temperature"`
	MaxTokens            int       `json:"max_tokens"`
	Theme                string    `json:"theme"`
	Language             string    `json:"language"`
	Timezone             string    `json:"timezone"`
	EmailNotifications   bool      `json:"email_notifications"`
	CustomInstructions   string    `json:"custom_instructions,omitempty"`
	SearchHistoryEnabled bool      `json:"search_history_enabled"`
	DataRetentionDays    int       `json:"data_retention_days"`
}

func NewSettingsResponse(s model.UserSettings) SettingsResponse {
	return SettingsResponse{
		ID:                   s.ID,
		UserID:               s.UserID,
		PreferredModel:       s.PreferredModel,
		Temperature:          s.Temperature,
		MaxTokens:            s.MaxTokens,
		Theme:                s.Theme,
		Language:             s.Language,
		Timezone:             s.Timezone,
		EmailNotifications:   s.EmailNotifications,
		CustomInstructions:   s.CustomInstructions,
		SearchHistoryEnabled: s.SearchHistoryEnabled,
		DataRetentionDays:    s.DataRetentionDays,
	}
}

type RegisterResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
