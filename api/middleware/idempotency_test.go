package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	goredis "github.com/redis/go-redis/v9"

	"github.com/plissemesh/production-backend/pkg/enums"
)

type fakeIdempotencyStore struct {
	values map[string]string
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{values: map[string]string{}}
}

func (f *fakeIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (f *fakeIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, exists := f.values[key]; exists {
		return false, nil
	}
	f.values[key] = value.(string)
	return true, nil
}

func (f *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "idem:" + scope + ":" + id
}

func (f *fakeIdempotencyStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func idempotentRouter(store *fakeIdempotencyStore, handler http.HandlerFunc) *chi.Mux {
	router := chi.NewRouter()
	router.Use(Idempotency(store, testLogger()))
	router.Post("/api/admin/v1/orders", handler)
	router.Post("/api/v1/orders/{orderID}/boxes", handler)
	router.Get("/api/v1/orders", handler)
	return router
}

func postOrder(key, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders", strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	return req.WithContext(WithIdentity(req.Context(), uuid.New(), enums.UserRoleAdmin, uuid.NewString()))
}

func TestIdempotencyRequiresKeyOnGuardedRoute(t *testing.T) {
	router := idempotentRouter(newFakeIdempotencyStore(), func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without idempotency key")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, postOrder("", `{"store":"nl"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	router := idempotentRouter(store, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"abc"}}`))
	})

	userID := uuid.New()
	makeReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders", strings.NewReader(`{"store":"nl"}`))
		req.Header.Set("Idempotency-Key", "key-1")
		return req.WithContext(WithIdentity(req.Context(), userID, enums.UserRoleAdmin, uuid.NewString()))
	}

	first := httptest.NewRecorder()
	router.ServeHTTP(first, makeReq())
	second := httptest.NewRecorder()
	router.ServeHTTP(second, makeReq())

	if calls != 1 {
		t.Fatalf("expected exactly one execution, got %d", calls)
	}
	if second.Code != http.StatusCreated {
		t.Fatalf("replay should reuse stored status, got %d", second.Code)
	}
	if second.Body.String() != `{"data":{"id":"abc"}}` {
		t.Fatalf("replay body mismatch: %s", second.Body.String())
	}
	if second.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("replay content type missing")
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newFakeIdempotencyStore()
	router := idempotentRouter(store, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	userID := uuid.New()
	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders", strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "key-2")
		req = req.WithContext(WithIdentity(req.Context(), userID, enums.UserRoleAdmin, uuid.NewString()))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	send(`{"store":"nl"}`)
	conflict := send(`{"store":"de"}`)

	if conflict.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", conflict.Code)
	}
}

func TestIdempotencyScopedPerUser(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	router := idempotentRouter(store, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	send := func(userID uuid.UUID) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders", strings.NewReader(`{"store":"nl"}`))
		req.Header.Set("Idempotency-Key", "shared-key")
		req = req.WithContext(WithIdentity(req.Context(), userID, enums.UserRoleAdmin, uuid.NewString()))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
	}

	send(uuid.New())
	send(uuid.New())

	if calls != 2 {
		t.Fatalf("different users must not share idempotency records, got %d calls", calls)
	}
}

func TestIdempotencyIgnoresUnguardedRoutes(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	router := idempotentRouter(store, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	// list endpoint has no rule and no key requirement
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if calls != 1 {
		t.Fatalf("unguarded route should pass through")
	}
	if len(store.values) != 0 {
		t.Fatalf("no record should be stored for unguarded routes")
	}
}

func TestIdempotencyGuardsBoxCreation(t *testing.T) {
	store := newFakeIdempotencyStore()
	router := idempotentRouter(store, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/boxes", strings.NewReader(`{"length_cm":1}`))
	req = req.WithContext(WithIdentity(req.Context(), uuid.New(), enums.UserRoleQuality, uuid.NewString()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("box creation without key should be rejected, got %d", resp.Code)
	}
}
