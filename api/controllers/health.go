package controllers

import (
	"net/http"

	"github.com/peasmarket/storefront/api/responses"
	"github.com/peasmarket/storefront/pkg/config"
	pkgerrors "github.com/peasmarket/storefront/pkg/errors"
	"github.com/peasmarket/storefront/pkg/logger"
	pkgredis "github.com/peasmarket/storefront/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Peas-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. With the memory cart driver there is no
// external dependency, so pinger is nil and readiness is unconditional.
func HealthReady(cfg *config.Config, pinger pkgredis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Peas-Env", cfg.App.Env)

		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart storage unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
