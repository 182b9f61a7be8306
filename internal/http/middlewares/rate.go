package middlewares

import (
	"math"
	"net/http"
	"strconv"

	"github.com/sakhu-org/sakhu-backend/internal/http/errors"
	"github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/rate"
)

// KeyFunc arma la clave de rate limit para un request.
type KeyFunc func(r *http.Request) string

// KeyByIP limita por IP del caller.
func KeyByIP(prefix string) KeyFunc {
	return func(r *http.Request) string { return prefix + ":" + ClientIP(r) }
}

// WithRateLimit aplica el limiter a cada request. Si el backend del limiter
// falla (redis caído), el request pasa: limitar es protección, no
// disponibilidad.
func WithRateLimit(l rate.Limiter, key KeyFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := l.Allow(r.Context(), key(r))
			if err != nil {
				logger.From(r.Context()).Warn("rate limiter unavailable", logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			if !res.Allowed {
				retry := int(math.Ceil(res.RetryAfter.Seconds()))
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				errors.WriteError(w, errors.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
