package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appsvc "github.com/personalgpt/backend/internal/app/auth/service"
	customErrors "github.com/personalgpt/backend/internal/domain/auth/errors"
	"github.com/personalgpt/backend/internal/domain/auth/model"
)

const (
	ctxUserKey  = "auth.user"
	ctxTokenKey = "auth.token"
)

// BearerToken extracts the credential from the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireUser resolves the bearer credential into an active user or aborts:
// 401 for a missing/invalid token or an unknown subject, 403 for a
// deactivated account.
func RequireUser(svc appsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := svc.Validate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(ctxUserKey, user)
			c.Set(ctxTokenKey, token)
			c.Next()
		case customErrors.IsInactiveUser(err):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User account is inactive"})
		default:
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		}
	}
}

// OptionalUser resolves the credential when present and valid; on any
// failure the request continues anonymously.
func OptionalUser(svc appsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := BearerToken(c); ok {
			if user, err := svc.Validate(c.Request.Context(), token); err == nil {
				c.Set(ctxUserKey, user)
				c.Set(ctxTokenKey, token)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved by RequireUser/OptionalUser.
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}

// CurrentToken returns the raw bearer credential of the current request.
func CurrentToken(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxTokenKey)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	return token, ok
}
