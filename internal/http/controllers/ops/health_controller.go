package ops

import (
	"context"
	"net/http"
	"time"

	httperrors "github.com/sakhu-org/sakhu-backend/internal/http/errors"
	"github.com/sakhu-org/sakhu-backend/internal/http/helpers"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
)

// Pinger chequea una dependencia (DB, bucket).
type Pinger func(ctx context.Context) error

// HealthController expone /healthz (liveness) y /readyz (readiness).
type HealthController struct {
	checks map[string]Pinger
}

func NewHealthController(checks map[string]Pinger) *HealthController {
	return &HealthController{checks: checks}
}

// Live maneja GET /healthz: siempre 200 mientras el proceso responda.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready maneja GET /readyz: 503 si alguna dependencia no responde.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	results := make(map[string]string, len(c.checks))
	healthy := true
	for name, ping := range c.checks {
		if err := ping(ctx); err != nil {
			logger.From(ctx).Warn("readiness check failed",
				logger.Component(name), logger.Err(err))
			results[name] = "down"
			healthy = false
			continue
		}
		results[name] = "ok"
	}

	if !healthy {
		helpers.WriteJSON(w, httperrors.ErrServiceUnavailable.HTTPStatus, map[string]any{
			"status": "degraded",
			"checks": results,
		})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"checks": results,
	})
}
