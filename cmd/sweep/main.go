package main

import (
	"log"

	"github.com/farhanahmed/family-hub-api/internal/config"
	"github.com/farhanahmed/family-hub-api/internal/database"
	"github.com/farhanahmed/family-hub-api/internal/repository"
	"github.com/farhanahmed/family-hub-api/internal/services"
)

// One-shot runner for the stalled-task alert sweep, meant to be
// invoked from cron once a day.
func main() {
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()
	taskService := services.NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewUserRepository(db),
	)

	result, err := taskService.DailyAlertSweep()
	if err != nil {
		log.Fatalf("Alert sweep failed: %v", err)
	}

	log.Printf("Alert sweep complete: checked %d tasks, alerted %d", result.Checked, result.Alerted)
}
