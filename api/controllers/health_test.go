package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/plissemesh/production-backend/pkg/config"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error {
	return s.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	return cfg
}

func TestHealthLive(t *testing.T) {
	handler := HealthLive(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-App-Env") != "test" {
		t.Fatalf("env header not set")
	}
}

func TestHealthReadyAllUp(t *testing.T) {
	handler := HealthReady(testConfig(), testLogger(), &stubPinger{}, &stubPinger{}, &stubPinger{})
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != "ready" {
		t.Fatalf("unexpected status %q", envelope.Data.Status)
	}
	if envelope.Data.Checks["database"] != "up" || envelope.Data.Checks["redis"] != "up" {
		t.Fatalf("unexpected checks %v", envelope.Data.Checks)
	}
}

func TestHealthReadyDatabaseDown(t *testing.T) {
	handler := HealthReady(testConfig(), testLogger(), &stubPinger{err: errors.New("connection refused")}, &stubPinger{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestHealthReadyBigQueryDownIsNotFatal(t *testing.T) {
	handler := HealthReady(testConfig(), testLogger(), &stubPinger{}, &stubPinger{}, &stubPinger{err: errors.New("quota exceeded")})
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Checks map[string]string `json:"checks"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Checks["bigquery"] != "down" {
		t.Fatalf("expected bigquery down, got %v", envelope.Data.Checks)
	}
}
