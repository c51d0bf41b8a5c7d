package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/plissemesh/production-backend/pkg/db/models"
	"github.com/plissemesh/production-backend/pkg/enums"
)

// UserDTO is the transport shape that omits the credential hash.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	DisplayName string         `json:"display_name"`
	Role        enums.UserRole `json:"role"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Actor identifies the authenticated user performing an admin operation.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// CreateInput captures a new shop-floor or admin account.
type CreateInput struct {
	Email       string
	DisplayName string
	Role        enums.UserRole
	Actor       Actor
}

// CreateResult returns the stored account plus the one-time password the
// admin hands to the user. The plaintext is never persisted.
type CreateResult struct {
	User         *UserDTO `json:"user"`
	TempPassword string   `json:"temp_password"`
}

// UpdateInput carries a partial account update.
type UpdateInput struct {
	UserID      uuid.UUID
	DisplayName *string
	Role        *enums.UserRole
	IsActive    *bool
	Actor       Actor
}

// ChangePasswordInput lets a user rotate their own password.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
