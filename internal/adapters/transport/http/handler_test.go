package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	transporthttp "github.com/personalgpt/backend/internal/adapters/transport/http"
	"github.com/personalgpt/backend/internal/adapters/transport/http/dto"
	"github.com/personalgpt/backend/internal/adapters/transport/http/middleware"
	appjwt "github.com/personalgpt/backend/internal/app/auth/jwt"
	"github.com/personalgpt/backend/internal/app/auth/password"
	appsvc "github.com/personalgpt/backend/internal/app/auth/service"
	authErrors "github.com/personalgpt/backend/internal/domain/auth/errors"
	"github.com/personalgpt/backend/internal/domain/auth/model"
	"github.com/personalgpt/backend/internal/infra/config"
)

/* in-memory repos backing the full HTTP stack */

type memStore struct {
	users    map[string]model.User
	settings map[string]model.UserSettings
	revoked  map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]model.User),
		settings: make(map[string]model.UserSettings),
		revoked:  make(map[string]bool),
	}
}

func (m *memStore) CreateUser(_ context.Context, u model.User, s model.UserSettings) (uuid.UUID, error) {
	for _, v := range m.users {
		if v.Email == u.Email {
			return uuid.Nil, authErrors.NewAlreadyExists("Email already registered")
		}
		if v.Username == u.Username {
			return uuid.Nil, authErrors.NewAlreadyExists("Username already taken")
		}
	}
	m.users[u.ID.String()] = u
	m.settings[u.ID.String()] = s
	return u.ID, nil
}

func (m *memStore) GetUserByID(_ context.Context, id uuid.UUID) (model.User, error) {
	u, ok := m.users[id.String()]
	if !ok {
		return model.User{}, authErrors.ErrNotFound
	}
	return u, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, authErrors.ErrNotFound
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, authErrors.ErrNotFound
}

func (m *memStore) UpdateUser(_ context.Context, u model.User) error {
	m.users[u.ID.String()] = u
	return nil
}

func (m *memStore) GetByUserID(_ context.Context, userID uuid.UUID) (model.UserSettings, error) {
	s, ok := m.settings[userID.String()]
	if !ok {
		return model.UserSettings{}, authErrors.ErrNotFound
	}
	return s, nil
}

func (m *memStore) Update(_ context.Context, userID uuid.UUID, upd model.SettingsUpdate) (model.UserSettings, error) {
	s, ok := m.settings[userID.String()]
	if !ok {
		return model.UserSettings{}, authErrors.ErrNotFound
	}
	if upd.Theme != nil {
		s.Theme = *upd.Theme
	}
	if upd.PreferredModel != nil {
		s.PreferredModel = *upd.PreferredModel
	}
	if upd.Temperature != nil {
		s.Temperature = *upd.Temperature
	}
	m.settings[userID.String()] = s
	return s, nil
}

func (m *memStore) Revoke(_ context.Context, key string, _ time.Time) error {
	m.revoked[key] = true
	return nil
}

func (m *memStore) IsRevoked(_ context.Context, key string) (bool, error) {
	return m.revoked[key], nil
}

/* helpers */

func newRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	util, err := appjwt.NewJWTUtil(&config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	require.NoError(t, err)

	svc := appsvc.New(store, store, store, util, password.NewHasher(""), appsvc.NewValidator())

	r := gin.New()
	transporthttp.NewHandler(svc, zap.NewNop()).Register(r)
	transporthttp.NewChatHandler(svc).Register(r)
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine) map[string]interface{} {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "a@x.com",
		"username": "auser",
		"password": "Secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

/* tests */

func TestRegisterThenMe(t *testing.T) {
	r, _ := newRouter(t)
	resp := registerUser(t, r)

	access, _ := resp["access_token"].(string)
	refresh, _ := resp["refresh_token"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	require.NotEqual(t, access, refresh)

	user := resp["user"].(map[string]interface{})
	require.Equal(t, "a@x.com", user["email"])
	_, hasHash := user["password_hash"]
	require.False(t, hasHash)

	w := doJSON(t, r, http.MethodGet, "/auth/me", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, "a@x.com", me["user"]["email"])
}

func TestMeWithoutHeader(t *testing.T) {
	r, _ := newRouter(t)
	w := doJSON(t, r, http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := newRouter(t)
	registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "a@x.com",
		"username": "otheruser",
		"password": "Secret123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Email already registered")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, _ := newRouter(t)
	registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "b@x.com",
		"username": "auser",
		"password": "Secret123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Username already taken")
}

// The 401 body must be identical for a wrong password and an unknown email.
func TestLoginGenericUnauthorized(t *testing.T) {
	r, _ := newRouter(t)
	registerUser(t, r)

	wrongPwd := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "a@x.com", "password": "Wrong1234",
	})
	noUser := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "ghost@x.com", "password": "Secret123",
	})
	require.Equal(t, http.StatusUnauthorized, wrongPwd.Code)
	require.Equal(t, http.StatusUnauthorized, noUser.Code)
	require.JSONEq(t, `{"error":"Invalid email or password"}`, wrongPwd.Body.String())
	require.Equal(t, wrongPwd.Body.String(), noUser.Body.String())
}

func TestInactiveUser(t *testing.T) {
	r, store := newRouter(t)
	resp := registerUser(t, r)
	access := resp["access_token"].(string)

	for id, u := range store.users {
		u.IsActive = false
		store.users[id] = u
	}

	// 403 on login
	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "a@x.com", "password": "Secret123",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// 403 (not 401) on the gate with a previously issued token
	w = doJSON(t, r, http.MethodGet, "/auth/me", access, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// 401 on refresh
	w = doJSON(t, r, http.MethodPost, "/auth/refresh", "", gin.H{
		"refresh_token": resp["refresh_token"],
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshFlow(t *testing.T) {
	r, _ := newRouter(t)
	resp := registerUser(t, r)

	w := doJSON(t, r, http.MethodPost, "/auth/refresh", "", gin.H{
		"refresh_token": resp["refresh_token"],
	})
	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out["access_token"])

	// an access token in the refresh slot must be rejected
	w = doJSON(t, r, http.MethodPost, "/auth/refresh", "", gin.H{
		"refresh_token": resp["access_token"],
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSettingsPartialUpdate(t *testing.T) {
	r, _ := newRouter(t)
	resp := registerUser(t, r)
	access := resp["access_token"].(string)

	w := doJSON(t, r, http.MethodGet, "/auth/settings", access, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/auth/settings", access, gin.H{"theme": "dark"})
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, "dark", out["settings"]["theme"])
	// untouched fields keep prior values
	require.Equal(t, "gpt-4", out["settings"]["preferred_model"])
}

func TestSettingsInvalidTheme(t *testing.T) {
	r, _ := newRouter(t)
	resp := registerUser(t, r)
	access := resp["access_token"].(string)

	w := doJSON(t, r, http.MethodPut, "/auth/settings", access, gin.H{"theme": "neon"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	r, _ := newRouter(t)
	resp := registerUser(t, r)
	access := resp["access_token"].(string)

	w := doJSON(t, r, http.MethodPost, "/auth/logout", access, gin.H{
		"refresh_token": resp["refresh_token"],
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/auth/me", access, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalUserContinuesAnonymously(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	util, err := appjwt.NewJWTUtil(&config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	require.NoError(t, err)
	svc := appsvc.New(store, store, store, util, password.NewHasher(""), appsvc.NewValidator())

	r := gin.New()
	r.GET("/whoami", middleware.OptionalUser(svc), func(c *gin.Context) {
		if u, ok := middleware.CurrentUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"email": u.Email})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": nil})
	})

	_, pair, err := svc.Register(context.Background(), dto.RegisterDTO{
		Email: "a@x.com", Username: "auser", Password: "Secret123",
	})
	require.NoError(t, err)

	// no header and a garbage token both pass through anonymously
	w := doJSON(t, r, http.MethodGet, "/whoami", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"email":null}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/whoami", "not-a-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"email":null}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/whoami", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"email":"a@x.com"}`, w.Body.String())
}

func TestChatStubsRequireAuth(t *testing.T) {
	r, _ := newRouter(t)

	w := doJSON(t, r, http.MethodGet, "/conversations", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	resp := registerUser(t, r)
	access := resp["access_token"].(string)

	w = doJSON(t, r, http.MethodGet, "/conversations", access, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/chat/message", access, gin.H{"message": "hi"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "AI response placeholder")
}
