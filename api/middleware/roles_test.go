package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/plissemesh/production-backend/pkg/enums"
)

func roleRequest(role enums.UserRole) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/x/items/y/status", nil)
	return req.WithContext(WithIdentity(req.Context(), uuid.New(), role, uuid.NewString()))
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	resp := httptest.NewRecorder()
	RequireRole(testLogger(), enums.UserRoleFrameCutting, enums.UserRoleMeshCutting)(next).ServeHTTP(resp, roleRequest(enums.UserRoleMeshCutting))

	if !called {
		t.Fatal("listed role should pass")
	}
}

func TestRequireRoleAdminBypass(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	resp := httptest.NewRecorder()
	RequireRole(testLogger(), enums.UserRoleQuality)(next).ServeHTTP(resp, roleRequest(enums.UserRoleAdmin))

	if !called {
		t.Fatal("admin should bypass role gates")
	}
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for unlisted role")
	})

	resp := httptest.NewRecorder()
	RequireRole(testLogger(), enums.UserRoleFrameCutting)(next).ServeHTTP(resp, roleRequest(enums.UserRoleQuality))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for non-admin")
	})

	resp := httptest.NewRecorder()
	RequireAdmin(testLogger())(next).ServeHTTP(resp, roleRequest(enums.UserRoleMeshCutting))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	passed := false
	adminNext := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		passed = true
	})
	resp = httptest.NewRecorder()
	RequireAdmin(testLogger())(adminNext).ServeHTTP(resp, roleRequest(enums.UserRoleAdmin))
	if !passed {
		t.Fatal("admin should pass")
	}
}
