package services

import (
	"errors"
	"fmt"

	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrContentRequired      = errors.New("title and content are required")
)

// AnnouncementService handles broadcast announcements.
type AnnouncementService struct {
	announcementRepo repository.AnnouncementRepository
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(announcementRepo repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
	}
}

// CreateAnnouncementInput represents input for creating an announcement
type CreateAnnouncementInput struct {
	Title   string
	Content string
}

// CreateAnnouncement publishes a new announcement (admin only).
func (s *AnnouncementService) CreateAnnouncement(actor *models.User, input CreateAnnouncementInput) (*models.Announcement, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	if input.Title == "" || input.Content == "" {
		return nil, ErrContentRequired
	}

	announcement := &models.Announcement{
		Title:     input.Title,
		Content:   input.Content,
		CreatedBy: actor.ID,
	}

	if err := s.announcementRepo.Create(announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	return announcement, nil
}

// ListAnnouncements returns all announcements, newest first.
func (s *AnnouncementService) ListAnnouncements() ([]models.Announcement, error) {
	announcements, err := s.announcementRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}

// UpdateAnnouncementInput represents input for updating an announcement
type UpdateAnnouncementInput struct {
	Title   *string
	Content *string
}

// UpdateAnnouncement applies a partial update (admin only).
func (s *AnnouncementService) UpdateAnnouncement(actor *models.User, id uint64, input UpdateAnnouncementInput) (*models.Announcement, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	announcement, err := s.announcementRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to find announcement: %w", err)
	}

	if input.Title != nil {
		announcement.Title = *input.Title
	}
	if input.Content != nil {
		announcement.Content = *input.Content
	}

	if err := s.announcementRepo.Update(announcement); err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}

	return announcement, nil
}

// DeleteAnnouncement removes an announcement and its read markers
// (admin only).
func (s *AnnouncementService) DeleteAnnouncement(actor *models.User, id uint64) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}

	if _, err := s.announcementRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return fmt.Errorf("failed to find announcement: %w", err)
	}

	if err := s.announcementRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	return nil
}
