// Package ops contiene los endpoints operacionales: keepalive del scheduler
// y health checks.
package ops

import (
	"net/http"
	"strconv"

	"github.com/sakhu-org/sakhu-backend/internal/http/helpers"
	"github.com/sakhu-org/sakhu-backend/internal/keepalive"
)

// KeepaliveController expone /internal/keepalive y /internal/keepalive/monitor.
// Es un adaptador fino: toda la lógica vive en el servicio.
type KeepaliveController struct {
	service *keepalive.Service
}

func NewKeepaliveController(service *keepalive.Service) *KeepaliveController {
	return &KeepaliveController{service: service}
}

func requestFrom(r *http.Request) keepalive.Request {
	return keepalive.Request{
		Method:        r.Method,
		Authorization: r.Header.Get("Authorization"),
		ForwardedFor:  r.Header.Get("X-Forwarded-For"),
		UserAgent:     r.Header.Get("User-Agent"),
	}
}

func write(w http.ResponseWriter, resp keepalive.Response) {
	if resp.RetryAfterSec > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfterSec))
	}
	helpers.WriteJSON(w, resp.HTTPStatus, resp.Body)
}

// Ping maneja GET/HEAD /internal/keepalive
func (c *KeepaliveController) Ping(w http.ResponseWriter, r *http.Request) {
	write(w, c.service.Handle(r.Context(), requestFrom(r)))
}

// Monitor maneja GET /internal/keepalive/monitor
func (c *KeepaliveController) Monitor(w http.ResponseWriter, r *http.Request) {
	write(w, c.service.Monitor(r.Context(), requestFrom(r)))
}
