package main

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/farhanahmed/family-hub-api/internal/auth"
	"github.com/farhanahmed/family-hub-api/internal/config"
	"github.com/farhanahmed/family-hub-api/internal/database"
	"github.com/farhanahmed/family-hub-api/internal/handlers"
	"github.com/farhanahmed/family-hub-api/internal/middleware"
	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
	"github.com/farhanahmed/family-hub-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	roleRequestRepo := repository.NewRoleRequestRepository(db)

	if err := bootstrapDefaultAdmin(cfg, userRepo); err != nil {
		log.Fatalf("Failed to bootstrap default admin: %v", err)
	}

	// Initialize services
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)
	authService := services.NewAuthService(userRepo, tokens)
	taskService := services.NewTaskService(taskRepo, userRepo)
	userService := services.NewUserService(userRepo, roleRequestRepo)
	projectService := services.NewProjectService(projectRepo)
	chatService := services.NewChatService(conversationRepo, messageRepo, userRepo)
	announcementService := services.NewAnnouncementService(announcementRepo)
	notificationService := services.NewNotificationService(messageRepo, taskRepo, announcementRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	chatHandler := handlers.NewChatHandler(chatService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(taskService, userService)

	requireAuth := middleware.RequireAuth(tokens, userRepo)
	requireInternalAdmin := middleware.RequireInternalAdmin(cfg.InternalAPIToken, tokens, userRepo)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Family Hub API is running",
		})
	})

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes (public except /me)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", requireAuth, authHandler.Logout)
			authRoutes.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.PATCH("/me", userHandler.UpdateProfile)
			users.POST("/role-requests", userHandler.RequestRole)
			users.POST("", middleware.RequireAdmin(), userHandler.CreateUser)
			users.PATCH("/:id", middleware.RequireAdmin(), userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RequireAdmin(), userHandler.DeleteUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("/my", taskHandler.ListMyTasks)
			tasks.GET("", middleware.RequireAdmin(), taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireAdmin(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireAdmin(), taskHandler.DeleteTask)
			tasks.POST("/:id/approve", middleware.RequireAdmin(), taskHandler.ApproveTask)
			tasks.POST("/:id/confirm-timeline", taskHandler.ConfirmTimeline)
			tasks.POST("/:id/updates", taskHandler.PostProgressUpdate)
			tasks.GET("/:id/updates", taskHandler.ListProgressUpdates)
		}

		// Project routes (protected, owner scoped)
		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PATCH("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.POST("/:id/submit", projectHandler.SubmitProject)
		}

		// Chat routes (protected)
		chat := api.Group("/chat")
		chat.Use(requireAuth)
		{
			chat.POST("/conversations", chatHandler.CreateConversation)
			chat.GET("/conversations", chatHandler.ListConversations)
			chat.GET("/conversations/:id/messages", chatHandler.ListMessages)
			chat.POST("/messages", chatHandler.SendMessage)
			chat.GET("/team-conversation", chatHandler.TeamConversation)
		}

		// Announcement routes (protected, writes admin only)
		announcements := api.Group("/announcements")
		announcements.Use(requireAuth)
		{
			announcements.GET("", announcementHandler.ListAnnouncements)
			announcements.POST("", middleware.RequireAdmin(), announcementHandler.CreateAnnouncement)
			announcements.PATCH("/:id", middleware.RequireAdmin(), announcementHandler.UpdateAnnouncement)
			announcements.DELETE("/:id", middleware.RequireAdmin(), announcementHandler.DeleteAnnouncement)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(requireAuth)
		{
			notifications.GET("/counts", notificationHandler.GetCounts)
			notifications.POST("/messages/mark-read", notificationHandler.MarkMessagesRead)
			notifications.POST("/announcements/mark-read", notificationHandler.MarkAnnouncementsRead)
		}

		// Admin routes (role requests and maintenance)
		admin := api.Group("/admin")
		{
			admin.GET("/role-requests", requireAuth, middleware.RequireAdmin(), userHandler.ListRoleRequests)
			admin.POST("/role-requests/:id/resolve", requireAuth, middleware.RequireAdmin(), userHandler.ResolveRoleRequest)
			admin.GET("/users/count", requireAuth, middleware.RequireAdmin(), adminHandler.CountUsers)
			admin.POST("/projects/:id/restore", requireAuth, middleware.RequireAdmin(), projectHandler.RestoreProject)
			admin.POST("/alert-sweep", requireInternalAdmin, adminHandler.TriggerAlertSweep)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// bootstrapDefaultAdmin ensures an admin account exists, keyed by the
// configured admin email. Skipped when no admin password is configured.
func bootstrapDefaultAdmin(cfg *config.Config, userRepo repository.UserRepository) error {
	if cfg.DefaultAdminPassword == "" {
		log.Println("DEFAULT_ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	if _, err := userRepo.FindByEmail(cfg.DefaultAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     cfg.DefaultAdminUsername,
		Email:        cfg.DefaultAdminEmail,
		FullName:     cfg.DefaultAdminFullName,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}

	log.Printf("Created default admin account %q", admin.Username)
	return nil
}
