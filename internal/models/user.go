package models

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Username     string     `gorm:"type:varchar(100);not null;index:idx_users_username_lower,unique,expression:LOWER(username)" json:"username"`
	Email        string     `gorm:"type:varchar(255);not null;index:idx_users_email_lower,unique,expression:LOWER(email)" json:"email"`
	FullName     string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone        string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	AvatarURL    string     `gorm:"type:varchar(255)" json:"avatar_url,omitempty"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role       `gorm:"type:varchar(50);not null;default:'user'" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	IsOnline     bool       `gorm:"not null;default:false" json:"is_online"`
	LastSeen     *time.Time `json:"last_seen"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	CreatedTasks  []Task         `gorm:"foreignKey:CreatedBy" json:"-"`
	AssignedTasks []Task         `gorm:"foreignKey:AssignedTo" json:"-"`
	Announcements []Announcement `gorm:"foreignKey:CreatedBy" json:"-"`
	Messages      []Message      `gorm:"foreignKey:SenderID" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
