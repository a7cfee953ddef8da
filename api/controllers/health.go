package controllers

import (
	"context"
	"net/http"

	"github.com/batoolapp/lenses-backend/api/responses"
	"github.com/batoolapp/lenses-backend/pkg/config"
	"github.com/batoolapp/lenses-backend/pkg/db"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
	"github.com/batoolapp/lenses-backend/pkg/redis"
	"github.com/batoolapp/lenses-backend/pkg/storage/gcs"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Batool-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes each wired dependency. A single unreachable dependency
// fails the whole check. Nil dependencies are skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger, gcsP gcs.Pinger) http.HandlerFunc {
	type probe struct {
		name string
		ping func(context.Context) error
	}

	probes := []probe{}
	if dbP != nil {
		probes = append(probes, probe{"database", dbP.Ping})
	}
	if redisP != nil {
		probes = append(probes, probe{"redis", redisP.Ping})
	}
	if gcsP != nil {
		probes = append(probes, probe{"storage", gcsP.Ping})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Batool-Env", cfg.App.Env)

		for _, p := range probes {
			if err := p.ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, p.name+" unavailable").
						WithDetails(map[string]string{"dependency": p.name}))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
