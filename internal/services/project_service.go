package services

import (
	"errors"
	"fmt"

	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrInvalidProjectStatus   = errors.New("invalid project status")
	ErrSubmissionLinkRequired = errors.New("submission link is required")
)

// ProjectService owns personal projects: CRUD scoped to the owner,
// completion submission and admin restore of soft-deleted rows.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Title       string
	Description string
	Status      models.ProjectStatus
}

// CreateProject creates a project owned by the actor.
func (s *ProjectService) CreateProject(actor *models.User, input CreateProjectInput) (*models.Project, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.ProjectStatusActive
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidProjectStatus
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		CreatedBy:   actor.ID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListMyProjects returns the actor's live projects.
func (s *ProjectService) ListMyProjects(actor *models.User) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByOwner(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one of the actor's projects. Admins may read any
// live project.
func (s *ProjectService) GetProject(actor *models.User, projectID uint64) (*models.Project, error) {
	return s.findForActor(actor, projectID)
}

// UpdateProjectInput represents input for updating a project
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Status      *models.ProjectStatus
}

// UpdateProject applies a partial update to one of the actor's projects.
func (s *ProjectService) UpdateProject(actor *models.User, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.findForActor(actor, projectID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidProjectStatus
		}
		project.Status = *input.Status
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// SubmitProject records a completion link and marks the project
// completed.
func (s *ProjectService) SubmitProject(actor *models.User, projectID uint64, link string) (*models.Project, error) {
	if link == "" {
		return nil, ErrSubmissionLinkRequired
	}

	project, err := s.findForActor(actor, projectID)
	if err != nil {
		return nil, err
	}

	project.SubmissionLink = link
	project.Status = models.ProjectStatusCompleted

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to submit project: %w", err)
	}

	return project, nil
}

// DeleteProject soft-deletes one of the actor's projects. The row stays
// behind so an admin can restore it.
func (s *ProjectService) DeleteProject(actor *models.User, projectID uint64) error {
	project, err := s.findForActor(actor, projectID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.SoftDelete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// RestoreProject clears a project's deletion mark (admin only).
func (s *ProjectService) RestoreProject(actor *models.User, projectID uint64) (*models.Project, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	if _, err := s.projectRepo.FindByIDUnscoped(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Restore(projectID); err != nil {
		return nil, fmt.Errorf("failed to restore project: %w", err)
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}

	return project, nil
}

// findForActor resolves a live project the actor may act on: owners
// reach their own projects, admins reach any.
func (s *ProjectService) findForActor(actor *models.User, projectID uint64) (*models.Project, error) {
	var (
		project *models.Project
		err     error
	)
	if actor.IsAdmin() {
		project, err = s.projectRepo.FindByID(projectID)
	} else {
		project, err = s.projectRepo.FindByIDForOwner(projectID, actor.ID)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return project, nil
}
