package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/farhanahmed/family-hub-api/internal/auth"
	"github.com/farhanahmed/family-hub-api/internal/dto"
	"github.com/farhanahmed/family-hub-api/internal/middleware"
	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
	"github.com/farhanahmed/family-hub-api/internal/services"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	tokens := auth.NewTokenService("test-secret", time.Hour)
	authService := services.NewAuthService(userRepo, tokens)
	handler := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/api/v1/auth/register", handler.Register)
	r.POST("/api/v1/auth/login", handler.Login)
	r.GET("/api/v1/auth/me", middleware.RequireAuth(tokens, userRepo), handler.GetCurrentUser)
	r.POST("/api/v1/auth/logout", middleware.RequireAuth(tokens, userRepo), handler.Logout)

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

func (env authTestEnv) postJSON(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/v1/auth/register", map[string]string{
		"username":  "alice",
		"email":     "alice@example.com",
		"full_name": "Alice Example",
		"password":  "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.AccessToken)
	require.Equal(t, "bearer", response.TokenType)
	require.Equal(t, models.RoleUser, response.Role)
	require.NotZero(t, response.UserID)
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{
		"username":  "alice",
		"email":     "alice@example.com",
		"full_name": "Alice Example",
		"password":  "supersecret",
	}
	require.Equal(t, http.StatusCreated, env.postJSON(t, "/api/v1/auth/register", payload).Code)

	// Same username in a different case collides.
	payload["username"] = "ALICE"
	payload["email"] = "other@example.com"
	require.Equal(t, http.StatusConflict, env.postJSON(t, "/api/v1/auth/register", payload).Code)

	payload["username"] = "someone"
	payload["email"] = "Alice@Example.com"
	require.Equal(t, http.StatusConflict, env.postJSON(t, "/api/v1/auth/register", payload).Code)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.postJSON(t, "/api/v1/auth/register", map[string]string{
		"username":  "alice",
		"email":     "alice@example.com",
		"full_name": "Alice Example",
		"password":  "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, _, err := env.authService.Register(services.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := env.postJSON(t, "/api/v1/auth/login", map[string]string{
		"username": "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.AccessToken)
	require.Equal(t, models.RoleUser, response.Role)

	w = env.postJSON(t, "/api/v1/auth/login", map[string]string{
		"username": "alice",
		"password": "wrongpass",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, token, err := env.authService.Register(services.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Example",
		Password: "supersecret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var profile dto.UserProfileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Equal(t, "alice", profile.Username)
	require.True(t, profile.IsOnline)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var refreshed models.User
	require.NoError(t, env.db.Where("username = ?", "alice").First(&refreshed).Error)
	require.False(t, refreshed.IsOnline)
}
