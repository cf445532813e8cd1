package dto

import (
	"time"

	"github.com/farhanahmed/family-hub-api/internal/models"
)

// AnnouncementDTO represents an announcement in API responses
type AnnouncementDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedBy uint64    `json:"created_by"`
	Creator   *UserDTO  `json:"creator,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToAnnouncementDTO converts an Announcement model to AnnouncementDTO
func ToAnnouncementDTO(announcement models.Announcement) AnnouncementDTO {
	dto := AnnouncementDTO{
		ID:        announcement.ID,
		Title:     announcement.Title,
		Content:   announcement.Content,
		CreatedBy: announcement.CreatedBy,
		CreatedAt: announcement.CreatedAt,
	}

	if announcement.Creator.ID != 0 {
		creator := ToUserDTO(announcement.Creator)
		dto.Creator = &creator
	}

	return dto
}
