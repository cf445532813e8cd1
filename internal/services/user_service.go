package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/farhanahmed/family-hub-api/internal/auth"
	"github.com/farhanahmed/family-hub-api/internal/constants"
	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidRole         = errors.New("role must be user or admin")
	ErrRoleRequestNotFound = errors.New("role request not found")
	ErrRoleRequestResolved = errors.New("role request has already been resolved")
)

// UserService handles profile updates and admin user management.
type UserService struct {
	userRepo        repository.UserRepository
	roleRequestRepo repository.RoleRequestRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, roleRequestRepo repository.RoleRequestRepository) *UserService {
	return &UserService{
		userRepo:        userRepo,
		roleRequestRepo: roleRequestRepo,
	}
}

// UpdateProfileInput represents a partial profile update
type UpdateProfileInput struct {
	Username *string
	Email    *string
	FullName *string
	Phone    *string
	Password *string
}

// UpdateProfile applies a partial update to a user's own profile,
// re-checking username and email uniqueness case-insensitively.
func (s *UserService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.applyProfileUpdate(user, input); err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastSeen = &now

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// ListUsers returns all user accounts.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CountUsers returns the total number of accounts
func (s *UserService) CountUsers() (int64, error) {
	count, err := s.userRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// ProvisionUserInput represents admin input for creating an account
type ProvisionUserInput struct {
	Username string
	Email    string
	FullName string
	Phone    string
	Password string
	Role     models.Role
}

// ProvisionUser creates an account on behalf of a user (admin only).
// Unlike self-registration, the role may be set directly.
func (s *UserService) ProvisionUser(actor *models.User, input ProvisionUserInput) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        input.Email,
		FullName:     input.FullName,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// AdminUpdateUserInput represents admin input for updating an account
type AdminUpdateUserInput struct {
	Username *string
	Email    *string
	FullName *string
	Phone    *string
	Password *string
	Role     *models.Role
	IsActive *bool
}

// UpdateUser applies a partial update to any account (admin only).
func (s *UserService) UpdateUser(actor *models.User, userID uint64, input AdminUpdateUserInput) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.applyProfileUpdate(user, UpdateProfileInput{
		Username: input.Username,
		Email:    input.Email,
		FullName: input.FullName,
		Phone:    input.Phone,
		Password: input.Password,
	}); err != nil {
		return nil, err
	}

	if input.Role != nil {
		if *input.Role != models.RoleUser && *input.Role != models.RoleAdmin {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser hard-deletes an account (admin only).
func (s *UserService) DeleteUser(actor *models.User, userID uint64) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// RequestRole files a role-upgrade request for the user.
func (s *UserService) RequestRole(user *models.User, requested models.Role) (*models.RoleRequest, error) {
	if requested != models.RoleUser && requested != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	request := &models.RoleRequest{
		UserID:        user.ID,
		CurrentRole:   user.Role,
		RequestedRole: requested,
		Status:        models.RoleRequestPending,
		RequestedAt:   time.Now(),
	}

	if err := s.roleRequestRepo.Create(request); err != nil {
		return nil, fmt.Errorf("failed to create role request: %w", err)
	}

	return request, nil
}

// ListRoleRequests returns all role requests, newest first (admin only).
func (s *UserService) ListRoleRequests(actor *models.User) ([]models.RoleRequest, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	requests, err := s.roleRequestRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list role requests: %w", err)
	}
	return requests, nil
}

// ResolveRoleRequest approves or rejects a pending role request (admin
// only). Approval also applies the requested role to the account.
func (s *UserService) ResolveRoleRequest(actor *models.User, requestID uint64, approve bool, notes string) (*models.RoleRequest, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	request, err := s.roleRequestRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleRequestNotFound
		}
		return nil, fmt.Errorf("failed to find role request: %w", err)
	}

	if request.Status != models.RoleRequestPending {
		return nil, ErrRoleRequestResolved
	}

	now := time.Now()
	request.AdminNotes = notes

	if approve {
		user, err := s.userRepo.FindByID(request.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to find user: %w", err)
		}

		user.Role = request.RequestedRole
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to apply role: %w", err)
		}

		request.Status = models.RoleRequestApproved
		request.ApprovedAt = &now
		request.ApprovedBy = &actor.ID
	} else {
		request.Status = models.RoleRequestRejected
	}

	if err := s.roleRequestRepo.Update(request); err != nil {
		return nil, fmt.Errorf("failed to update role request: %w", err)
	}

	return request, nil
}

// applyProfileUpdate mutates common profile fields in place, enforcing
// uniqueness when the username or email actually changes.
func (s *UserService) applyProfileUpdate(user *models.User, input UpdateProfileInput) error {
	if input.Username != nil && !strings.EqualFold(*input.Username, user.Username) {
		if _, err := s.userRepo.FindByUsername(*input.Username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check username: %w", err)
		}
		user.Username = *input.Username
	}

	if input.Email != nil && !strings.EqualFold(*input.Email, user.Email) {
		if _, err := s.userRepo.FindByEmail(*input.Email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = *input.Email
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return ErrPasswordTooShort
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return ErrFailedToHashPassword
		}
		user.PasswordHash = hash
	}

	return nil
}
