package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	internalauth "github.com/plissemesh/production-backend/internal/auth"
	internalorders "github.com/plissemesh/production-backend/internal/orders"
	internalusers "github.com/plissemesh/production-backend/internal/users"
	pkgauth "github.com/plissemesh/production-backend/pkg/auth"
	"github.com/plissemesh/production-backend/pkg/config"
	"github.com/plissemesh/production-backend/pkg/db/models"
	"github.com/plissemesh/production-backend/pkg/enums"
	"github.com/plissemesh/production-backend/pkg/logger"
	"github.com/plissemesh/production-backend/pkg/pagination"
	"github.com/plissemesh/production-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req internalauth.LoginRequest) (*internalauth.LoginResponse, error) {
	return &internalauth.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req internalauth.RefreshRequest) (*internalauth.RefreshResponse, error) {
	return &internalauth.RefreshResponse{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubUsersService struct{}

func (stubUsersService) Create(ctx context.Context, input internalusers.CreateInput) (*internalusers.CreateResult, error) {
	return &internalusers.CreateResult{}, nil
}

func (stubUsersService) List(ctx context.Context, actor internalusers.Actor) ([]internalusers.UserDTO, error) {
	return nil, nil
}

func (stubUsersService) Get(ctx context.Context, userID uuid.UUID, actor internalusers.Actor) (*internalusers.UserDTO, error) {
	return &internalusers.UserDTO{}, nil
}

func (stubUsersService) Update(ctx context.Context, input internalusers.UpdateInput) (*internalusers.UserDTO, error) {
	return &internalusers.UserDTO{}, nil
}

func (stubUsersService) ResetPassword(ctx context.Context, userID uuid.UUID, actor internalusers.Actor) (*internalusers.CreateResult, error) {
	return &internalusers.CreateResult{}, nil
}

func (stubUsersService) ChangePassword(ctx context.Context, input internalusers.ChangePasswordInput) error {
	return nil
}

type stubOrdersService struct{}

func (stubOrdersService) CreateManual(ctx context.Context, input internalorders.CreateManualInput) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrdersService) UpsertExternal(ctx context.Context, input internalorders.ExternalOrderInput) (*models.Order, bool, error) {
	return &models.Order{}, false, nil
}

func (stubOrdersService) DeleteExternal(ctx context.Context, store enums.StoreKey, shopifyOrderID string) error {
	return nil
}

func (stubOrdersService) UpdateItemStatus(ctx context.Context, input internalorders.UpdateItemStatusInput) (*internalorders.ItemStatusResult, error) {
	return &internalorders.ItemStatusResult{}, nil
}

func (stubOrdersService) OverrideStatus(ctx context.Context, input internalorders.OverrideStatusInput) error {
	return nil
}

func (stubOrdersService) Delete(ctx context.Context, orderID uuid.UUID, actor internalorders.Actor) error {
	return nil
}

func (stubOrdersService) AddBox(ctx context.Context, input internalorders.AddBoxInput) (*models.Box, error) {
	return &models.Box{}, nil
}

func (stubOrdersService) RemoveBox(ctx context.Context, orderID, boxID uuid.UUID, actor internalorders.Actor) error {
	return nil
}

func (stubOrdersService) List(ctx context.Context, params pagination.Params, filters internalorders.Filters) (*internalorders.OrderList, error) {
	return &internalorders.OrderList{}, nil
}

func (stubOrdersService) Detail(ctx context.Context, orderID uuid.UUID) (*internalorders.Detail, error) {
	return &internalorders.Detail{}, nil
}

type stubReportsService struct{}

func (stubReportsService) OrderCutSheet(ctx context.Context, orderID uuid.UUID) (string, []byte, error) {
	return "cutsheet.xlsx", []byte("xlsx"), nil
}

type stubWebhookService struct{}

func (stubWebhookService) VerifySignature(store enums.StoreKey, body []byte, signature string) error {
	return nil
}

func (stubWebhookService) HandleOrderEvent(ctx context.Context, store enums.StoreKey, topic string, body []byte) error {
	return nil
}

func routerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = config.JWTConfig{
		Secret:            "router-test-secret",
		Issuer:            "plisse-production",
		ExpirationMinutes: 60,
	}
	// zero rate-limit config keeps the login throttle disabled in tests
	return cfg
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "routes-test", Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		stubPinger{},
		stubSessionChecker{},
		stubAuthService{},
		stubUsersService{},
		stubOrdersService{},
		stubReportsService{},
		stubWebhookService{},
	)
}

func bearerToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, routerConfig())

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestOrdersGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(t, routerConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestOrdersGroupSucceedsWithJWT(t *testing.T) {
	cfg := routerConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", bearerToken(t, cfg, enums.UserRoleQuality))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := routerConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users", nil)
	req.Header.Set("Authorization", bearerToken(t, cfg, enums.UserRoleMeshCutting))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestAdminGroupAllowsAdmin(t *testing.T) {
	cfg := routerConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/users", nil)
	req.Header.Set("Authorization", bearerToken(t, cfg, enums.UserRoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestBoxRemovalRequiresQualityRole(t *testing.T) {
	cfg := routerConfig()
	router := newTestRouter(t, cfg)

	target := "/api/v1/orders/" + uuid.NewString() + "/boxes/" + uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	req.Header.Set("Authorization", bearerToken(t, cfg, enums.UserRoleFrameCutting))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestGuardedCreateRequiresIdempotencyKey(t *testing.T) {
	cfg := routerConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders", strings.NewReader(`{"store":"nl"}`))
	req.Header.Set("Authorization", bearerToken(t, cfg, enums.UserRoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestWebhookRouteIsPublic(t *testing.T) {
	router := newTestRouter(t, routerConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/shopify/nl", strings.NewReader(`{"id":1}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestLoginRouteWired(t *testing.T) {
	router := newTestRouter(t, routerConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@example.com","password":"secret"}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data internalauth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access" {
		t.Fatalf("login response not delivered")
	}
}

func TestCutSheetRouteServesAttachment(t *testing.T) {
	cfg := routerConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+uuid.NewString()+"/cutsheet", nil)
	req.Header.Set("Authorization", bearerToken(t, cfg, enums.UserRoleFrameCutting))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Header().Get("Content-Disposition"), "cutsheet.xlsx") {
		t.Fatalf("attachment header missing")
	}
}
