package dto

import (
	"time"

	"github.com/farhanahmed/family-hub-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64      `json:"id"`
	Username string      `json:"username"`
	FullName string      `json:"full_name"`
	Role     models.Role `json:"role"`
}

// UserProfileDTO represents the full account view returned to the
// account owner and to admins
type UserProfileDTO struct {
	ID        uint64      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Phone     string      `json:"phone,omitempty"`
	AvatarURL string      `json:"avatar_url,omitempty"`
	Role      models.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	IsOnline  bool        `json:"is_online"`
	LastSeen  *time.Time  `json:"last_seen"`
	CreatedAt time.Time   `json:"created_at"`
}

// TokenDTO represents an issued access token
type TokenDTO struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	Role        models.Role `json:"role,omitempty"`
	UserID      uint64      `json:"user_id,omitempty"`
}

// RoleRequestDTO represents a role request in API responses
type RoleRequestDTO struct {
	ID            uint64                   `json:"id"`
	UserID        uint64                   `json:"user_id"`
	User          *UserDTO                 `json:"user,omitempty"`
	CurrentRole   models.Role              `json:"current_role"`
	RequestedRole models.Role              `json:"requested_role"`
	Status        models.RoleRequestStatus `json:"status"`
	AdminNotes    string                   `json:"admin_notes,omitempty"`
	RequestedAt   time.Time                `json:"requested_at"`
	ApprovedAt    *time.Time               `json:"approved_at"`
	ApprovedBy    *uint64                  `json:"approved_by"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	}
}

// ToUserProfileDTO converts a User model to UserProfileDTO
func ToUserProfileDTO(user models.User) UserProfileDTO {
	return UserProfileDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		AvatarURL: user.AvatarURL,
		Role:      user.Role,
		IsActive:  user.IsActive,
		IsOnline:  user.IsOnline,
		LastSeen:  user.LastSeen,
		CreatedAt: user.CreatedAt,
	}
}

// ToRoleRequestDTO converts a RoleRequest model to RoleRequestDTO
func ToRoleRequestDTO(request models.RoleRequest) RoleRequestDTO {
	dto := RoleRequestDTO{
		ID:            request.ID,
		UserID:        request.UserID,
		CurrentRole:   request.CurrentRole,
		RequestedRole: request.RequestedRole,
		Status:        request.Status,
		AdminNotes:    request.AdminNotes,
		RequestedAt:   request.RequestedAt,
		ApprovedAt:    request.ApprovedAt,
		ApprovedBy:    request.ApprovedBy,
	}

	if request.User.ID != 0 {
		user := ToUserDTO(request.User)
		dto.User = &user
	}

	return dto
}
