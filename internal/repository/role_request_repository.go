package repository

import (
	"github.com/farhanahmed/family-hub-api/internal/models"
	"gorm.io/gorm"
)

// GormRoleRequestRepository is a GORM implementation of RoleRequestRepository
type GormRoleRequestRepository struct {
	db *gorm.DB
}

// NewRoleRequestRepository creates a new RoleRequestRepository
func NewRoleRequestRepository(db *gorm.DB) RoleRequestRepository {
	return &GormRoleRequestRepository{db: db}
}

// Create creates a new role request
func (r *GormRoleRequestRepository) Create(request *models.RoleRequest) error {
	return r.db.Create(request).Error
}

// FindByID finds a role request by ID
func (r *GormRoleRequestRepository) FindByID(id uint64) (*models.RoleRequest, error) {
	var request models.RoleRequest
	if err := r.db.First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns all role requests, newest first, with users preloaded
func (r *GormRoleRequestRepository) List() ([]models.RoleRequest, error) {
	var requests []models.RoleRequest
	err := r.db.Order("requested_at DESC").
		Preload("User").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Update persists changes to a role request
func (r *GormRoleRequestRepository) Update(request *models.RoleRequest) error {
	return r.db.Save(request).Error
}
