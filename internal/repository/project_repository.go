package repository

import (
	"github.com/farhanahmed/family-hub-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a live project by ID
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDForOwner finds a live project owned by the given user
func (r *GormProjectRepository) FindByIDForOwner(id, ownerID uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("created_by = ?", ownerID).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDUnscoped finds a project regardless of deletion state
func (r *GormProjectRepository) FindByIDUnscoped(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Unscoped().First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByOwner returns the user's live projects ordered by ID
func (r *GormProjectRepository) ListByOwner(ownerID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Where("created_by = ?", ownerID).
		Order("id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update persists changes to a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// SoftDelete marks a project deleted without removing the row
func (r *GormProjectRepository) SoftDelete(id uint64) error {
	return r.db.Delete(&models.Project{}, id).Error
}

// Restore clears a project's deletion mark
func (r *GormProjectRepository) Restore(id uint64) error {
	return r.db.Unscoped().
		Model(&models.Project{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}
