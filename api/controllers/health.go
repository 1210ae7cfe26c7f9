package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/hanbit-enc/siteops-backend/api/responses"
	"github.com/hanbit-enc/siteops-backend/pkg/config"
	"github.com/hanbit-enc/siteops-backend/pkg/db"
	"github.com/hanbit-enc/siteops-backend/pkg/logger"
	"github.com/hanbit-enc/siteops-backend/pkg/redis"
)

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SiteOps-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when every wired dependency answers a
// ping within the timeout.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SiteOps-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		ready := true

		checks["database"] = pingStatus(ctx, logg, "database", dbP)
		if checks["database"] != "ok" {
			ready = false
		}
		checks["redis"] = pingStatus(ctx, logg, "redis", redisPinger(redisP))
		if checks["redis"] != "ok" {
			ready = false
		}

		payload := map[string]any{"status": "ready", "checks": checks}
		if !ready {
			payload["status"] = "degraded"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, payload)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}

func pingStatus(ctx context.Context, logg *logger.Logger, name string, p db.Pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		if logg != nil {
			logg.Error(ctx, "health check failed: "+name, err)
		}
		return "unreachable"
	}
	return "ok"
}

// redisPinger adapts the redis health surface to the shared pinger shape.
func redisPinger(p redis.Pinger) db.Pinger {
	if p == nil {
		return nil
	}
	return pingerFunc(p.Ping)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }
