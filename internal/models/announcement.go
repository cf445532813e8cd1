package models

import "time"

type Announcement struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedBy uint64    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Creator User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// AnnouncementRead marks an announcement as read by a user. A user's
// unread count is total announcements minus their read rows.
type AnnouncementRead struct {
	AnnouncementID uint64    `gorm:"primarykey" json:"announcement_id"`
	UserID         uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}
