package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plissemesh/production-backend/pkg/config"
	"github.com/plissemesh/production-backend/pkg/db"
	"github.com/plissemesh/production-backend/pkg/db/models"
	pkgerrors "github.com/plissemesh/production-backend/pkg/errors"
	"github.com/plissemesh/production-backend/pkg/security"
)

const tempPasswordLength = 12

// Service manages the shop-floor and admin accounts. All operations except
// ChangePassword are restricted to admins.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*CreateResult, error)
	List(ctx context.Context, actor Actor) ([]UserDTO, error)
	Get(ctx context.Context, userID uuid.UUID, actor Actor) (*UserDTO, error)
	Update(ctx context.Context, input UpdateInput) (*UserDTO, error)
	ResetPassword(ctx context.Context, userID uuid.UUID, actor Actor) (*CreateResult, error)
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
}

type service struct {
	repo     Repository
	password config.PasswordConfig
}

// NewService builds the users service.
func NewService(repo Repository, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, password: password}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if err := requireAdmin(input.Actor); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid email required")
	}
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "display name required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	tempPassword, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate password")
	}
	hash, err := security.HashPassword(tempPassword, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         input.Role,
		IsActive:     true,
	}
	if _, err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	return &CreateResult{User: FromModel(user), TempPassword: tempPassword}, nil
}

func (s *service) List(ctx context.Context, actor Actor) ([]UserDTO, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, *FromModel(&users[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID, actor Actor) (*UserDTO, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*UserDTO, error) {
	if err := requireAdmin(input.Actor); err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "display name cannot be empty")
		}
		updates["display_name"] = name
		user.DisplayName = name
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		updates["role"] = *input.Role
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		// An admin cannot deactivate their own account; that would lock
		// everyone out of user management on a single-admin floor.
		if !*input.IsActive && input.Actor.UserID == user.ID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot deactivate own account")
		}
		updates["is_active"] = *input.IsActive
		user.IsActive = *input.IsActive
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, user.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return FromModel(user), nil
}

func (s *service) ResetPassword(ctx context.Context, userID uuid.UUID, actor Actor) (*CreateResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tempPassword, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate password")
	}
	hash, err := security.HashPassword(tempPassword, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "hash password")
	}
	if err := s.repo.Update(ctx, user.ID, map[string]any{"password_hash": hash}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store password")
	}
	return &CreateResult{User: FromModel(user), TempPassword: tempPassword}, nil
}

func (s *service) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if input.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(input.NewPassword) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "new password must be at least 8 characters")
	}
	user, err := s.findUser(ctx, input.UserID)
	if err != nil {
		return err
	}

	ok, err := security.VerifyPassword(input.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password incorrect")
	}

	hash, err := security.HashPassword(input.NewPassword, s.password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "hash password")
	}
	if err := s.repo.Update(ctx, user.ID, map[string]any{"password_hash": hash}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store password")
	}
	return nil
}

func (s *service) findUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

func requireAdmin(actor Actor) error {
	if actor.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !actor.Role.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	return nil
}
