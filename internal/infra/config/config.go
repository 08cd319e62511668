package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is built once in main and passed by reference everywhere; it is
// never mutated after Load returns.
type Config struct {
	Environment string

	DatabaseURL string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	PasswordPepper  string

	HTTPAddress      string
	AllowedOrigins   []string
	AllowCredentials bool
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	for _, key := range []string{
		"ENVIRONMENT",
		"DATABASE_URL",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
		"JWT_SECRET", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "PASSWORD_PEPPER",
		"HTTP_ADDRESS", "ALLOWED_ORIGINS", "ALLOW_CREDENTIALS",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("ACCESS_TOKEN_TTL", "24h")
	v.SetDefault("REFRESH_TOKEN_TTL", "168h")
	v.SetDefault("HTTP_ADDRESS", ":8000")
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Environment:      v.GetString("ENVIRONMENT"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RedisAddress:     v.GetString("REDIS_ADDRESS"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		AccessTokenTTL:   v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  v.GetDuration("REFRESH_TOKEN_TTL"),
		PasswordPepper:   v.GetString("PASSWORD_PEPPER"),
		HTTPAddress:      v.GetString("HTTP_ADDRESS"),
		AllowedOrigins:   v.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials: v.GetBool("ALLOW_CREDENTIALS"),
	}

	switch {
	case cfg.DatabaseURL == "":
		return nil, fmt.Errorf("DATABASE_URL is required")
	case cfg.JWTSecret == "":
		return nil, fmt.Errorf("JWT_SECRET is required")
	case cfg.RedisAddress == "":
		return nil, fmt.Errorf("REDIS_ADDRESS is required")
	case cfg.AccessTokenTTL <= 0:
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	case cfg.RefreshTokenTTL <= 0:
		return nil, fmt.Errorf("REFRESH_TOKEN_TTL must be positive")
	}

	return cfg, nil
}
