package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/farhanahmed/family-hub-api/internal/auth"
	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
)

type middlewareTestEnv struct {
	db       *gorm.DB
	tokens   *auth.TokenService
	userRepo repository.UserRepository
}

func setupMiddlewareTestEnv(t *testing.T) middlewareTestEnv {
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

	return middlewareTestEnv{
		db:       db,
		tokens:   auth.NewTokenService("test-secret", time.Hour),
		userRepo: repository.NewUserRepository(db),
	}
}

func (env middlewareTestEnv) createUser(t *testing.T, username string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, env.userRepo.Create(user))
	return user
}

func performRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	env := setupMiddlewareTestEnv(t)
	user := env.createUser(t, "alice", models.RoleUser)

	var resolved *models.User
	r := gin.New()
	r.GET("/protected", RequireAuth(env.tokens, env.userRepo), func(c *gin.Context) {
		resolved, _ = GetCurrentUser(c)
		c.Status(http.StatusOK)
	})

	token, err := env.tokens.Issue(user.Username, time.Hour)
	require.NoError(t, err)

	w := performRequest(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resolved)
	require.Equal(t, user.ID, resolved.ID)
}

func TestRequireAuth_Failures(t *testing.T) {
	env := setupMiddlewareTestEnv(t)
	env.createUser(t, "alice", models.RoleUser)

	r := gin.New()
	r.GET("/protected", RequireAuth(env.tokens, env.userRepo), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	expired, err := env.tokens.Issue("alice", -time.Minute)
	require.NoError(t, err)

	otherKey := auth.NewTokenService("other-secret", time.Hour)
	badSignature, err := otherKey.Issue("alice", time.Hour)
	require.NoError(t, err)

	unknownSubject, err := env.tokens.Issue("ghost", time.Hour)
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":  "",
		"not bearer":      "Basic abc",
		"garbage token":   "Bearer not-a-token",
		"expired":         "Bearer " + expired,
		"bad signature":   "Bearer " + badSignature,
		"unknown subject": "Bearer " + unknownSubject,
	}

	for name, header := range cases {
		w := performRequest(r, header)
		require.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestRequireAdmin(t *testing.T) {
	env := setupMiddlewareTestEnv(t)
	admin := env.createUser(t, "root", models.RoleAdmin)
	member := env.createUser(t, "alice", models.RoleUser)

	r := gin.New()
	r.GET("/protected", RequireAuth(env.tokens, env.userRepo), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	adminToken, err := env.tokens.Issue(admin.Username, time.Hour)
	require.NoError(t, err)
	memberToken, err := env.tokens.Issue(member.Username, time.Hour)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, performRequest(r, "Bearer "+adminToken).Code)
	require.Equal(t, http.StatusForbidden, performRequest(r, "Bearer "+memberToken).Code)
	require.Equal(t, http.StatusUnauthorized, performRequest(r, "").Code)
}

func TestRequireInternalAdmin_StaticToken(t *testing.T) {
	env := setupMiddlewareTestEnv(t)
	env.createUser(t, "alice", models.RoleUser)
	admin := env.createUser(t, "root", models.RoleAdmin)

	var resolved *models.User
	r := gin.New()
	r.GET("/protected", RequireInternalAdmin("internal-secret", env.tokens, env.userRepo), func(c *gin.Context) {
		resolved, _ = GetCurrentUser(c)
		c.Status(http.StatusOK)
	})

	w := performRequest(r, "Bearer internal-secret")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resolved)
	require.Equal(t, admin.ID, resolved.ID)

	require.Equal(t, http.StatusUnauthorized, performRequest(r, "Bearer wrong-secret").Code)
}

func TestRequireInternalAdmin_NoAdminAccount(t *testing.T) {
	env := setupMiddlewareTestEnv(t)
	env.createUser(t, "alice", models.RoleUser)

	r := gin.New()
	r.GET("/protected", RequireInternalAdmin("internal-secret", env.tokens, env.userRepo), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(r, "Bearer internal-secret")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequireInternalAdmin_DisabledFallsBackToJWT(t *testing.T) {
	env := setupMiddlewareTestEnv(t)
	admin := env.createUser(t, "root", models.RoleAdmin)
	member := env.createUser(t, "alice", models.RoleUser)

	r := gin.New()
	r.GET("/protected", RequireInternalAdmin("", env.tokens, env.userRepo), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// With the bypass disabled the static value is treated as a regular
	// bearer token and rejected.
	require.Equal(t, http.StatusUnauthorized, performRequest(r, "Bearer ").Code)

	adminToken, err := env.tokens.Issue(admin.Username, time.Hour)
	require.NoError(t, err)
	memberToken, err := env.tokens.Issue(member.Username, time.Hour)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, performRequest(r, "Bearer "+adminToken).Code)
	require.Equal(t, http.StatusForbidden, performRequest(r, "Bearer "+memberToken).Code)
}
