package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/ecclesia-app/ecclesia-backend/api/responses"
	"github.com/ecclesia-app/ecclesia-backend/pkg/config"
	pkgerrors "github.com/ecclesia-app/ecclesia-backend/pkg/errors"
	"github.com/ecclesia-app/ecclesia-backend/pkg/logger"
)

const readinessTimeout = 3 * time.Second

// Pinger is the health-check surface shared by the database and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ecclesia-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the backing stores before reporting ready. A nil pinger
// is skipped so partial wiring in tests still works.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, redis Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ecclesia-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var combined error
		if db != nil {
			if err := db.Ping(ctx); err != nil {
				combined = multierr.Append(combined, err)
			}
		}
		if redis != nil {
			if err := redis.Ping(ctx); err != nil {
				combined = multierr.Append(combined, err)
			}
		}

		if combined != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
