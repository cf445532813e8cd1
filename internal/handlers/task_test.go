package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
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

type taskTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	tokens      *auth.TokenService
	taskService *services.TaskService
}

func setupTaskTestEnv(t *testing.T) taskTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignee{},
		&models.TaskUpdate{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokens := auth.NewTokenService("test-secret", time.Hour)
	taskService := services.NewTaskService(taskRepo, userRepo)
	handler := NewTaskHandler(taskService)

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	r := gin.New()
	tasks := r.Group("/api/v1/tasks")
	tasks.Use(requireAuth)
	{
		tasks.GET("/my", handler.ListMyTasks)
		tasks.GET("", middleware.RequireAdmin(), handler.ListTasks)
		tasks.POST("", handler.CreateTask)
		tasks.GET("/:id", handler.GetTask)
		tasks.POST("/:id/approve", middleware.RequireAdmin(), handler.ApproveTask)
		tasks.POST("/:id/confirm-timeline", handler.ConfirmTimeline)
		tasks.POST("/:id/updates", handler.PostProgressUpdate)
	}

	return taskTestEnv{
		db:          db,
		router:      r,
		tokens:      tokens,
		taskService: taskService,
	}
}

func (env taskTestEnv) createUser(t *testing.T, username string, role models.Role) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, env.db.Create(user).Error)

	token, err := env.tokens.Issue(user.Username, time.Hour)
	require.NoError(t, err)
	return user, token
}

func (env taskTestEnv) request(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestTaskHandler_CreateAndApprove(t *testing.T) {
	env := setupTaskTestEnv(t)
	_, adminToken := env.createUser(t, "root", models.RoleAdmin)
	bob, bobToken := env.createUser(t, "bob", models.RoleUser)

	w := env.request(t, http.MethodPost, "/api/v1/tasks", bobToken, map[string]any{
		"title":       "Fix the garden gate",
		"assigned_to": bob.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.False(t, created.IsApproved)
	require.Equal(t, models.TaskStatusPending, created.Status)

	// Approval is admin only.
	approvePath := fmt.Sprintf("/api/v1/tasks/%d/approve", created.ID)
	require.Equal(t, http.StatusForbidden, env.request(t, http.MethodPost, approvePath, bobToken, nil).Code)

	w = env.request(t, http.MethodPost, approvePath, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var approved dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &approved))
	require.True(t, approved.IsApproved)
}

func TestTaskHandler_ConfirmTimeline(t *testing.T) {
	env := setupTaskTestEnv(t)
	admin, _ := env.createUser(t, "root", models.RoleAdmin)
	bob, bobToken := env.createUser(t, "bob", models.RoleUser)
	_, carolToken := env.createUser(t, "carol", models.RoleUser)

	task, err := env.taskService.CreateTask(admin, services.CreateTaskInput{
		Title:      "Paint the fence",
		AssignedTo: &bob.ID,
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/v1/tasks/%d/confirm-timeline", task.ID)

	// Only participants may act on the timeline.
	w := env.request(t, http.MethodPost, path, carolToken, map[string]any{
		"action": "confirm",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPost, path, bobToken, map[string]any{
		"action":         "confirm",
		"estimated_days": 3,
		"notes":          "Starting tomorrow",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var confirmed dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &confirmed))
	require.Equal(t, models.TaskStatusInProgress, confirmed.Status)
	require.Equal(t, models.TimelineConfirmed, confirmed.TimelineStatus)

	w = env.request(t, http.MethodPost, path, bobToken, map[string]any{
		"action": "postpone",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_ListScopes(t *testing.T) {
	env := setupTaskTestEnv(t)
	admin, adminToken := env.createUser(t, "root", models.RoleAdmin)
	bob, bobToken := env.createUser(t, "bob", models.RoleUser)

	_, err := env.taskService.CreateTask(admin, services.CreateTaskInput{
		Title:      "For Bob",
		AssignedTo: &bob.ID,
	})
	require.NoError(t, err)
	_, err = env.taskService.CreateTask(admin, services.CreateTaskInput{
		Title: "Unassigned",
	})
	require.NoError(t, err)

	// The global listing is admin only.
	require.Equal(t, http.StatusForbidden, env.request(t, http.MethodGet, "/api/v1/tasks", bobToken, nil).Code)

	w := env.request(t, http.MethodGet, "/api/v1/tasks", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listing dto.TaskListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Equal(t, int64(2), listing.TotalCount)

	w = env.request(t, http.MethodGet, "/api/v1/tasks/my", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var mine []dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	require.Equal(t, "For Bob", mine[0].Title)
}

func TestTaskHandler_ProgressUpdates(t *testing.T) {
	env := setupTaskTestEnv(t)
	admin, _ := env.createUser(t, "root", models.RoleAdmin)
	bob, bobToken := env.createUser(t, "bob", models.RoleUser)
	_, carolToken := env.createUser(t, "carol", models.RoleUser)

	task, err := env.taskService.CreateTask(admin, services.CreateTaskInput{
		Title:      "Paint the fence",
		AssignedTo: &bob.ID,
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/v1/tasks/%d/updates", task.ID)

	w := env.request(t, http.MethodPost, path, bobToken, map[string]any{
		"content": "Bought the paint",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.Equal(t, http.StatusForbidden, env.request(t, http.MethodPost, path, carolToken, map[string]any{
		"content": "I helped too",
	}).Code)

	require.Equal(t, http.StatusBadRequest, env.request(t, http.MethodPost, path, bobToken, map[string]any{}).Code)
}
