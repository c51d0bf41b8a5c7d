package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	internalusers "github.com/plissemesh/production-backend/internal/users"
	"github.com/plissemesh/production-backend/pkg/enums"
	pkgerrors "github.com/plissemesh/production-backend/pkg/errors"
)

type stubUsersService struct {
	create         func(ctx context.Context, input internalusers.CreateInput) (*internalusers.CreateResult, error)
	list           func(ctx context.Context, actor internalusers.Actor) ([]internalusers.UserDTO, error)
	get            func(ctx context.Context, userID uuid.UUID, actor internalusers.Actor) (*internalusers.UserDTO, error)
	update         func(ctx context.Context, input internalusers.UpdateInput) (*internalusers.UserDTO, error)
	resetPassword  func(ctx context.Context, userID uuid.UUID, actor internalusers.Actor) (*internalusers.CreateResult, error)
	changePassword func(ctx context.Context, input internalusers.ChangePasswordInput) error
}

func (s *stubUsersService) Create(ctx context.Context, input internalusers.CreateInput) (*internalusers.CreateResult, error) {
	if s.create != nil {
		return s.create(ctx, input)
	}
	return &internalusers.CreateResult{}, nil
}

func (s *stubUsersService) List(ctx context.Context, actor internalusers.Actor) ([]internalusers.UserDTO, error) {
	if s.list != nil {
		return s.list(ctx, actor)
	}
	return nil, nil
}

func (s *stubUsersService) Get(ctx context.Context, userID uuid.UUID, actor internalusers.Actor) (*internalusers.UserDTO, error) {
	if s.get != nil {
		return s.get(ctx, userID, actor)
	}
	return &internalusers.UserDTO{}, nil
}

func (s *stubUsersService) Update(ctx context.Context, input internalusers.UpdateInput) (*internalusers.UserDTO, error) {
	if s.update != nil {
		return s.update(ctx, input)
	}
	return &internalusers.UserDTO{}, nil
}

func (s *stubUsersService) ResetPassword(ctx context.Context, userID uuid.UUID, actor internalusers.Actor) (*internalusers.CreateResult, error) {
	if s.resetPassword != nil {
		return s.resetPassword(ctx, userID, actor)
	}
	return &internalusers.CreateResult{}, nil
}

func (s *stubUsersService) ChangePassword(ctx context.Context, input internalusers.ChangePasswordInput) error {
	if s.changePassword != nil {
		return s.changePassword(ctx, input)
	}
	return nil
}

func TestAdminUserCreateReturnsTempPassword(t *testing.T) {
	adminID := uuid.New()
	svc := &stubUsersService{
		create: func(ctx context.Context, input internalusers.CreateInput) (*internalusers.CreateResult, error) {
			if input.Email != "mehmet@example.com" {
				t.Fatalf("unexpected email %q", input.Email)
			}
			if input.Role != enums.UserRoleMeshCutting {
				t.Fatalf("unexpected role %s", input.Role)
			}
			if input.Actor.UserID != adminID {
				t.Fatalf("actor not propagated")
			}
			return &internalusers.CreateResult{
				User:         &internalusers.UserDTO{ID: uuid.New(), Email: input.Email, Role: input.Role},
				TempPassword: "one-time-secret",
			}, nil
		},
	}

	handler := AdminUserCreate(svc, testLogger())
	body := strings.NewReader(`{"email":"mehmet@example.com","display_name":"Mehmet","role":"mesh_cutting"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", body)
	req = authenticatedRequest(req, adminID, enums.UserRoleAdmin)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data internalusers.CreateResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TempPassword != "one-time-secret" {
		t.Fatalf("temp password missing from response")
	}
}

func TestAdminUserCreateRejectsBadEmail(t *testing.T) {
	handler := AdminUserCreate(&stubUsersService{}, testLogger())
	body := strings.NewReader(`{"email":"not-an-email","display_name":"X","role":"quality"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", body)
	req = authenticatedRequest(req, uuid.New(), enums.UserRoleAdmin)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminUserCreateRejectsUnknownRole(t *testing.T) {
	handler := AdminUserCreate(&stubUsersService{}, testLogger())
	body := strings.NewReader(`{"email":"a@example.com","display_name":"A","role":"superuser"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users", body)
	req = authenticatedRequest(req, uuid.New(), enums.UserRoleAdmin)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminUserUpdateParsesPartialBody(t *testing.T) {
	userID := uuid.New()
	svc := &stubUsersService{
		update: func(ctx context.Context, input internalusers.UpdateInput) (*internalusers.UserDTO, error) {
			if input.UserID != userID {
				t.Fatalf("unexpected user id %s", input.UserID)
			}
			if input.DisplayName != nil {
				t.Fatalf("display name should be unset")
			}
			if input.IsActive == nil || *input.IsActive {
				t.Fatalf("is_active not parsed")
			}
			return &internalusers.UserDTO{ID: userID, IsActive: false}, nil
		},
	}

	router := chi.NewRouter()
	router.Patch("/api/admin/v1/users/{userID}", AdminUserUpdate(svc, testLogger()))

	body := strings.NewReader(`{"is_active":false}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/users/"+userID.String(), body)
	req = authenticatedRequest(req, uuid.New(), enums.UserRoleAdmin)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminUserResetPasswordNotFound(t *testing.T) {
	svc := &stubUsersService{
		resetPassword: func(ctx context.Context, userID uuid.UUID, actor internalusers.Actor) (*internalusers.CreateResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		},
	}

	router := chi.NewRouter()
	router.Post("/api/admin/v1/users/{userID}/reset-password", AdminUserResetPassword(svc, testLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/users/"+uuid.NewString()+"/reset-password", nil)
	req = authenticatedRequest(req, uuid.New(), enums.UserRoleAdmin)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAccountChangePasswordUsesAuthenticatedUser(t *testing.T) {
	userID := uuid.New()
	svc := &stubUsersService{
		changePassword: func(ctx context.Context, input internalusers.ChangePasswordInput) error {
			if input.UserID != userID {
				t.Fatalf("unexpected user id %s", input.UserID)
			}
			if input.CurrentPassword != "old-pass" || input.NewPassword != "new-pass-123" {
				t.Fatalf("passwords not mapped")
			}
			return nil
		},
	}

	handler := AccountChangePassword(svc, testLogger())
	body := strings.NewReader(`{"current_password":"old-pass","new_password":"new-pass-123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/change-password", body)
	req = authenticatedRequest(req, userID, enums.UserRoleQuality)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAccountChangePasswordWrongCurrent(t *testing.T) {
	svc := &stubUsersService{
		changePassword: func(ctx context.Context, input internalusers.ChangePasswordInput) error {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password incorrect")
		},
	}

	handler := AccountChangePassword(svc, testLogger())
	body := strings.NewReader(`{"current_password":"wrong","new_password":"new-pass-123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/change-password", body)
	req = authenticatedRequest(req, uuid.New(), enums.UserRoleQuality)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
