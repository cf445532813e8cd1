package repository

import (
	"github.com/farhanahmed/family-hub-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAnnouncementRepository is a GORM implementation of AnnouncementRepository
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// Create creates a new announcement
func (r *GormAnnouncementRepository) Create(announcement *models.Announcement) error {
	return r.db.Create(announcement).Error
}

// FindByID finds an announcement by ID
func (r *GormAnnouncementRepository) FindByID(id uint64) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := r.db.First(&announcement, id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

// List returns all announcements, newest first, with creators preloaded
func (r *GormAnnouncementRepository) List() ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := r.db.Order("created_at DESC").
		Preload("Creator").
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

// Update persists changes to an announcement
func (r *GormAnnouncementRepository) Update(announcement *models.Announcement) error {
	return r.db.Save(announcement).Error
}

// Delete hard-deletes an announcement and its read markers
func (r *GormAnnouncementRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("announcement_id = ?", id).Delete(&models.AnnouncementRead{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Announcement{}, id).Error
	})
}

// Count returns the total number of announcements
func (r *GormAnnouncementRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Announcement{}).Count(&count).Error
	return count, err
}

// CountReadsByUser counts read markers the user has
func (r *GormAnnouncementRepository) CountReadsByUser(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.AnnouncementRead{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ListUnreadIDs returns IDs of announcements the user has not marked read
func (r *GormAnnouncementRepository) ListUnreadIDs(userID uint64) ([]uint64, error) {
	var ids []uint64

	readSubQuery := r.db.Model(&models.AnnouncementRead{}).
		Select("announcement_id").
		Where("user_id = ?", userID)

	err := r.db.Model(&models.Announcement{}).
		Where("id NOT IN (?)", readSubQuery).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// CreateReads inserts read markers, skipping pairs that already exist
func (r *GormAnnouncementRepository) CreateReads(reads []models.AnnouncementRead) error {
	if len(reads) == 0 {
		return nil
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "announcement_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&reads).Error
}
