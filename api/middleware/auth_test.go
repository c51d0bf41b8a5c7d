package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/plissemesh/production-backend/pkg/auth"
	"github.com/plissemesh/production-backend/pkg/config"
	"github.com/plissemesh/production-backend/pkg/enums"
	"github.com/plissemesh/production-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "middleware-test", Output: io.Discard})
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "plisse-production",
		ExpirationMinutes: 60,
	}
}

type stubSessionChecker struct {
	has func(ctx context.Context, accessID string) (bool, error)
}

func (s *stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	if s.has != nil {
		return s.has(ctx, accessID)
	}
	return true, nil
}

func mintToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID, role enums.UserRole, jti string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthSeedsIdentity(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	jti := uuid.NewString()
	token := mintToken(t, cfg, userID, enums.UserRoleMeshCutting, jti)

	checker := &stubSessionChecker{
		has: func(ctx context.Context, accessID string) (bool, error) {
			if accessID != jti {
				t.Fatalf("unexpected access id %q", accessID)
			}
			return true, nil
		},
	}

	var gotUser uuid.UUID
	var gotRole enums.UserRole
	var gotSession string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		gotSession = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	Auth(cfg, checker, testLogger())(next).ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d: %s", resp.Code, resp.Body.String())
	}
	if gotUser != userID {
		t.Fatalf("user id not seeded")
	}
	if gotRole != enums.UserRoleMeshCutting {
		t.Fatalf("role not seeded")
	}
	if gotSession != jti {
		t.Fatalf("session id not seeded")
	}
}

func TestAuthMissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	Auth(testJWTConfig(), &stubSessionChecker{}, testLogger())(next).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthGarbageToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with bad token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	resp := httptest.NewRecorder()
	Auth(testJWTConfig(), &stubSessionChecker{}, testLogger())(next).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRevokedSession(t *testing.T) {
	cfg := testJWTConfig()
	token := mintToken(t, cfg, uuid.New(), enums.UserRoleQuality, uuid.NewString())
	checker := &stubSessionChecker{
		has: func(ctx context.Context, accessID string) (bool, error) {
			return false, nil
		},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with revoked session")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	Auth(cfg, checker, testLogger())(next).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSessionStoreFailure(t *testing.T) {
	cfg := testJWTConfig()
	token := mintToken(t, cfg, uuid.New(), enums.UserRoleQuality, uuid.NewString())
	checker := &stubSessionChecker{
		has: func(ctx context.Context, accessID string) (bool, error) {
			return false, errors.New("redis unavailable")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	Auth(cfg, checker, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run when session store is down")
	})).ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestAuthWrongSecret(t *testing.T) {
	otherCfg := testJWTConfig()
	otherCfg.Secret = "different-secret"
	token := mintToken(t, otherCfg, uuid.New(), enums.UserRoleAdmin, uuid.NewString())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	Auth(testJWTConfig(), &stubSessionChecker{}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with foreign signature")
	})).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
