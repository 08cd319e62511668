package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/personalgpt/backend/internal/adapters/transport/http/dto"
	"github.com/personalgpt/backend/internal/app/auth/password"
	customErrors "github.com/personalgpt/backend/internal/domain/auth/errors"
	"github.com/personalgpt/backend/internal/domain/auth/jwt"
	"github.com/personalgpt/backend/internal/domain/auth/model"
	"github.com/personalgpt/backend/internal/domain/auth/repo"
)

type authService struct {
	userRepo     repo.UserRepo
	settingsRepo repo.SettingsRepo
	tokenRepo    repo.TokenRepo
	jwtUtil      jwt.JWTUtil
	hasher       *password.Hasher
	v            *validator.Validate
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) (model.User, model.TokenPair, error)
	Login(context.Context, dto.LoginDTO) (model.User, model.TokenPair, error)
	Refresh(context.Context, dto.RefreshDTO) (string, error)
	Validate(context.Context, string) (model.User, error)
	GetSettings(context.Context, uuid.UUID) (model.UserSettings, error)
	UpdateSettings(context.Context, uuid.UUID, dto.SettingsUpdateDTO) (model.UserSettings, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

func New(
	ur repo.UserRepo,
	sr repo.SettingsRepo,
	tr repo.TokenRepo,
	jm jwt.JWTUtil,
	h *password.Hasher,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, settingsRepo: sr, tokenRepo: tr, jwtUtil: jm, hasher: h, v: v,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.User, model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.User{}, model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	// Distinct pre-checks give the caller distinct conflict messages; the
	// unique index remains the final authority under concurrent registers.
	if _, err := a.userRepo.GetUserByEmail(ctx, in.Email); err == nil {
		return model.User{}, model.TokenPair{}, customErrors.NewAlreadyExists("Email already registered")
	} else if !customErrors.IsNotFound(err) {
		return model.User{}, model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}
	if _, err := a.userRepo.GetUserByUsername(ctx, in.Username); err == nil {
		return model.User{}, model.TokenPair{}, customErrors.NewAlreadyExists("Username already taken")
	} else if !customErrors.IsNotFound(err) {
		return model.User{}, model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: passwordHash,
		FullName:     in.FullName,
		IsActive:     true,
	}
	if _, err = a.userRepo.CreateUser(ctx, user, model.DefaultSettings(user.ID)); err != nil {
		if customErrors.IsAlreadyExists(err) {
			return model.User{}, model.TokenPair{}, err
		}
		return model.User{}, model.TokenPair{}, customErrors.WrapInternal(err, "Register")
	}

	pair, err := a.issueTokens(user.ID)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}
	return user, pair, nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.User, model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.User{}, model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case customErrors.IsNotFound(err):
		// Same answer as a wrong password so the response does not reveal
		// whether the email exists.
		return model.User{}, model.TokenPair{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.User{}, model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	if !a.hasher.Verify(in.Password, user.PasswordHash) {
		return model.User{}, model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return model.User{}, model.TokenPair{}, customErrors.ErrInactiveUser
	}

	pair, err := a.issueTokens(user.ID)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}
	return user, pair, nil
}

func (a *authService) Refresh(ctx context.Context, in dto.RefreshDTO) (string, error) {
	if err := a.v.Struct(in); err != nil {
		return "", customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.jwtUtil.ValidateRefreshToken(in.RefreshToken)
	if err != nil {
		return "", customErrors.ErrInvalidToken
	}

	revoked, err := a.tokenRepo.IsRevoked(ctx, tokenKey(in.RefreshToken))
	if err != nil {
		return "", customErrors.WrapInternal(err, "Refresh")
	}
	if revoked {
		return "", customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", customErrors.ErrInvalidToken
	}

	// A user deactivated after the refresh token was issued must not be able
	// to mint new access tokens.
	user, err := a.userRepo.GetUserByID(ctx, uid)
	if err != nil || !user.IsActive {
		return "", customErrors.ErrInvalidToken
	}

	// The refresh token is not rotated; only a new access token comes back.
	at, _, err := a.jwtUtil.GenerateAccessToken(user.ID)
	if err != nil {
		return "", customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	return at, nil
}

func (a *authService) Validate(ctx context.Context, accessToken string) (model.User, error) {
	claims, err := a.jwtUtil.ValidateAccessToken(accessToken)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}

	revoked, err := a.tokenRepo.IsRevoked(ctx, tokenKey(accessToken))
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "Validate")
	}
	if revoked {
		return model.User{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}
	if !user.IsActive {
		return model.User{}, customErrors.ErrInactiveUser
	}
	return user, nil
}

func (a *authService) GetSettings(ctx context.Context, userID uuid.UUID) (model.UserSettings, error) {
	return a.settingsRepo.GetByUserID(ctx, userID)
}

func (a *authService) UpdateSettings(ctx context.Context, userID uuid.UUID, in dto.SettingsUpdateDTO) (model.UserSettings, error) {
	if err := a.v.Struct(in); err != nil {
		return model.UserSettings{}, customErrors.NewInvalidArgument(err.Error())
	}

	upd := model.SettingsUpdate{
		PreferredModel:       in.PreferredModel,
		Temperature:          in.Temperature,
		MaxTokens:            in.MaxTokens,
		Theme:                in.Theme,
		Language:             in.Language,
		Timezone:             in.Timezone,
		EmailNotifications:   in.EmailNotifications,
		CustomInstructions:   in.CustomInstructions,
		SearchHistoryEnabled: in.SearchHistoryEnabled,
		DataRetentionDays:    in.DataRetentionDays,
	}
	return a.settingsRepo.Update(ctx, userID, upd)
}

// Logout denylists the presented tokens until their natural expiry. The
// access token was already validated by the gate; it is re-validated here to
// recover its expiry.
func (a *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	claims, err := a.jwtUtil.ValidateAccessToken(accessToken)
	if err != nil {
		return customErrors.ErrInvalidToken
	}
	if err := a.tokenRepo.Revoke(ctx, tokenKey(accessToken), claims.ExpiresAt.Time); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}

	if refreshToken != "" {
		if rc, errRc := a.jwtUtil.ValidateRefreshToken(refreshToken); errRc == nil {
			_ = a.tokenRepo.Revoke(ctx, tokenKey(refreshToken), rc.ExpiresAt.Time)
		}
	}
	return nil
}

func (a *authService) issueTokens(uid uuid.UUID) (model.TokenPair, error) {
	at, atExp, err := a.jwtUtil.GenerateAccessToken(uid)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, rtExp, err := a.jwtUtil.GenerateRefreshToken(uid)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  at,
		RefreshToken: rt,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       uid,
	}, nil
}

// tokenKey is the denylist key for a raw token: a digest rather than the
// token itself, so Redis never stores usable credentials.
func tokenKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
