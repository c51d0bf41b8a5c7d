package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/plissemesh/production-backend/api/responses"
	"github.com/plissemesh/production-backend/pkg/config"
	"github.com/plissemesh/production-backend/pkg/logger"
)

const readinessTimeout = 5 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-App-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks every hard dependency. BigQuery is optional: the API
// serves production traffic without analytics.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, redis, bigquery pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		w.Header().Set("X-App-Env", cfg.App.Env)

		checks := map[string]string{}
		ready := true

		check := func(name string, p pinger, required bool) {
			if p == nil {
				checks[name] = "disabled"
				return
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "down"
				if required {
					ready = false
				}
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "readiness check failed", err)
				}
				return
			}
			checks[name] = "up"
		}

		check("database", db, true)
		check("redis", redis, true)
		check("bigquery", bigquery, false)

		if !ready {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, map[string]any{
				"status": "not_ready",
				"checks": checks,
			})
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"checks": checks,
		})
	}
}
