package dto

import (
	"time"

	"github.com/farhanahmed/family-hub-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID             uint64               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Status         models.ProjectStatus `json:"status"`
	CreatedBy      uint64               `json:"created_by"`
	SubmissionLink string               `json:"submission_link,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:             project.ID,
		Title:          project.Title,
		Description:    project.Description,
		Status:         project.Status,
		CreatedBy:      project.CreatedBy,
		SubmissionLink: project.SubmissionLink,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}
