package http

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/personalgpt/backend/internal/adapters/transport/http/dto"
	"github.com/personalgpt/backend/internal/adapters/transport/http/middleware"
	appsvc "github.com/personalgpt/backend/internal/app/auth/service"
	authErrors "github.com/personalgpt/backend/internal/domain/auth/errors"
)

// Handler owns the /auth surface. Everything below /auth except register,
// login and refresh sits behind the RequireUser gate.
type Handler struct {
	svc appsvc.Service
	log *zap.Logger
}

func NewHandler(svc appsvc.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Register(r *gin.Engine) {
	auth := r.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/refresh", h.refresh)

	authed := auth.Group("", middleware.RequireUser(h.svc))
	authed.GET("/me", h.me)
	authed.GET("/settings", h.getSettings)
	authed.PUT("/settings", h.updateSettings)
	authed.POST("/logout", h.logout)
}

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Info("/auth/register",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email)))),
	)

	user, pair, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RegisterResponse{
		User:         dto.NewUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
	})
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Info("/auth/login",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email)))),
	)

	user, pair, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		User:         dto.NewUserResponse(user),
	})
}

func (h *Handler) refresh(c *gin.Context) {
	var body dto.RefreshDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, err := h.svc.Refresh(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

func (h *Handler) me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(user)})
}

func (h *Handler) getSettings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	settings, err := h.svc.GetSettings(c.Request.Context(), user.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": dto.NewSettingsResponse(settings)})
}

func (h *Handler) updateSettings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var body dto.SettingsUpdateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.svc.UpdateSettings(c.Request.Context(), user.ID, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": dto.NewSettingsResponse(settings)})
}

func (h *Handler) logout(c *gin.Context) {
	token, _ := middleware.CurrentToken(c)

	// the refresh token is optional extra input; an empty body is fine
	var body dto.LogoutDTO
	_ = c.ShouldBindJSON(&body)

	if err := h.svc.Logout(c.Request.Context(), token, body.RefreshToken); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// handleError translates domain sentinels into HTTP statuses. Token
// failures all collapse into one generic 401 body.
func handleError(c *gin.Context, err error) {
	switch {
	case authErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case authErrors.IsAlreadyExists(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": conflictMessage(err)})
	case authErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case authErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	case authErrors.IsInactiveUser(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "User account is inactive"})
	case authErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// conflictMessage strips the sentinel prefix so the client sees "Email
// already registered", not "already exists: Email already registered".
func conflictMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
