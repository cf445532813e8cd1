package models

import "time"

type RoleRequestStatus string

const (
	RoleRequestPending  RoleRequestStatus = "pending"
	RoleRequestApproved RoleRequestStatus = "approved"
	RoleRequestRejected RoleRequestStatus = "rejected"
)

// RoleRequest tracks a user's request to be granted a different role.
type RoleRequest struct {
	ID            uint64            `gorm:"primarykey" json:"id"`
	UserID        uint64            `gorm:"not null;index" json:"user_id"`
	CurrentRole   Role              `gorm:"type:varchar(50)" json:"current_role"`
	RequestedRole Role              `gorm:"type:varchar(50);not null" json:"requested_role"`
	Status        RoleRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AdminNotes    string            `gorm:"type:text" json:"admin_notes,omitempty"`
	RequestedAt   time.Time         `json:"requested_at"`
	ApprovedAt    *time.Time        `json:"approved_at"`
	ApprovedBy    *uint64           `json:"approved_by"`
	UpdatedAt     time.Time         `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
