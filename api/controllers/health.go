package controllers

import (
	"net/http"

	"github.com/PAUpau912/maki-kape-pos-system/api/responses"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/config"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/db"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kape-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, pinger db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Kape-Env", cfg.App.Env)
		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
