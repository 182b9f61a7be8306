// Package keepalive implementa el endpoint de salud que pingea el scheduler
// externo: autoriza por bearer token + allowlist de IPs, limita por
// (token, IP), hace una lectura mínima contra la dependencia con un retry, y
// mantiene racha de fallos con alerta debounced. Su compañero /monitor
// detecta ejecuciones perdidas del scheduler.
package keepalive

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	log "github.com/sakhu-org/sakhu-backend/internal/observability/logger"
	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

const (
	// RouteName etiqueta logs y alertas.
	RouteName = "/internal/keepalive"
	// PageName etiqueta el registro durable de visita que lee el monitor.
	PageName = "internal/keepalive"

	// Racha de fallos que dispara la alerta (una sola vez hasta el próximo éxito).
	failureThreshold = 2

	// Retry único sobre 5xx: min(300, max(80, 120*2)).
	retryDelay = 240 * time.Millisecond
)

// VisitStore es la capacidad de persistencia que consume el keepalive.
type VisitStore interface {
	CreateVisit(ctx context.Context, v *core.SiteVisit) error
	LastVisitByPage(ctx context.Context, page string) (*core.SiteVisit, error)
}

// Notifier despacha alertas best-effort; nunca devuelve error al caller.
type Notifier interface {
	SendFailureAlert(ctx context.Context, route, reason string, recent []ErrorEvent)
}

// Config del servicio, ya parseada (el target se interpreta una sola vez).
type Config struct {
	Token            string
	IPAllowlist      []string
	RateWindow       time.Duration
	RateBypass       bool
	ExpectedInterval time.Duration
	Target           Target
}

type Service struct {
	cfg     Config
	auth    *Authorizer
	limiter *IntervalLimiter
	prober  Prober
	visits  VisitStore
	alerts  Notifier
	logger  *zap.Logger

	// Inyectables en tests.
	Now   func() time.Time
	Sleep func(time.Duration)

	// Estado de escalamiento, solo mutado bajo mu.
	mu        sync.Mutex
	streak    int
	alertSent bool

	events *eventRing
}

func NewService(cfg Config, prober Prober, visits VisitStore, alerts Notifier) *Service {
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = 60 * time.Second
	}
	if cfg.ExpectedInterval <= 0 {
		cfg.ExpectedInterval = 300 * time.Second
	}
	return &Service{
		cfg:     cfg,
		auth:    NewAuthorizer(cfg.Token, cfg.IPAllowlist),
		limiter: NewIntervalLimiter(cfg.RateWindow, cfg.RateBypass),
		prober:  prober,
		visits:  visits,
		alerts:  alerts,
		logger:  log.Named("keepalive"),
		Now:     time.Now,
		Sleep:   time.Sleep,
		events:  newEventRing(eventRingCap),
	}
}

// Request es lo que el handler HTTP le pasa al servicio.
type Request struct {
	Method        string
	Authorization string
	ForwardedFor  string
	UserAgent     string
}

// Response lista para serializar: status HTTP + body + Retry-After opcional.
type Response struct {
	HTTPStatus    int
	RetryAfterSec int
	Body          any
}

type okBody struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	// Nombre de campo heredado: el scheduler ya parsea "supabaseStatus".
	DependencyStatus int    `json:"supabaseStatus"`
	Details          string `json:"details"`
}

type errBody struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
}

// Handle procesa una llamada del scheduler al keepalive.
func (s *Service) Handle(ctx context.Context, req Request) Response {
	start := s.Now()
	ts := FormatTimestamp(start)
	ip := ClientIP(req.ForwardedFor)

	verdict, provided := s.auth.Authorize(req.Authorization, ip)
	switch verdict {
	case AuthMissingToken:
		return s.reject(req, ts, start, ip, "", 401, "missing authorization")
	case AuthMisconfigured:
		return s.reject(req, ts, start, ip, MaskToken(provided), 500, "scheduler token not configured")
	case AuthInvalidToken:
		return s.reject(req, ts, start, ip, MaskToken(provided), 403, "invalid token")
	case AuthIPDenied:
		return s.reject(req, ts, start, ip, MaskToken(provided), 403, "ip not allowed")
	}
	masked := MaskToken(provided)

	if allowed, retryAfter := s.limiter.Allow(provided, ip); !allowed {
		resp := s.reject(req, ts, start, ip, masked, 429, "rate limit exceeded")
		resp.RetryAfterSec = retryAfter
		return resp
	}

	depStatus, missingConfig := s.probeWithRetry(ctx, req, ts, start, ip, masked)

	details := "read error"
	switch {
	case depStatus == 200:
		details = "read success"
	case missingConfig:
		details = "missing_config"
	}

	if depStatus == 200 || missingConfig {
		s.resetStreak()
		s.recordVisit(ctx, req.UserAgent, ip)
	}

	s.logger.Info("keepalive",
		log.Route(RouteName),
		log.Method(req.Method),
		log.Status(200),
		log.ClientIP(ip),
		log.TokenMasked(masked),
		log.DependencyStatus(depStatus),
		log.DurationMs(s.Now().Sub(start).Milliseconds()),
		log.String("details", details),
	)

	return Response{HTTPStatus: 200, Body: okBody{
		Status:           "ok",
		Timestamp:        ts,
		DependencyStatus: depStatus,
		Details:          details,
	}}
}

// probeWithRetry hace el intento inicial y, solo ante 5xx, un único retry
// tras una espera corta fija.
func (s *Service) probeWithRetry(ctx context.Context, req Request, ts string, start time.Time, ip, masked string) (status int, missingConfig bool) {
	attempt := func() (int, bool) {
		st, err := s.prober.Probe(ctx, s.cfg.Target)
		if err == ErrMissingConfig {
			return 0, true
		}
		if err != nil && st == 0 {
			st = 500
		}
		return st, false
	}

	status, missingConfig = attempt()
	if missingConfig {
		return 0, true
	}
	if status >= 500 && status < 600 {
		s.logger.Warn("keepalive retry",
			log.Route(RouteName),
			log.Method(req.Method),
			log.ClientIP(ip),
			log.TokenMasked(masked),
			log.DependencyStatus(status),
			log.DurationMs(s.Now().Sub(start).Milliseconds()),
			log.String("error", fmt.Sprintf("dependency %d - retry in %dms", status, retryDelay.Milliseconds())),
		)
		s.events.push(ErrorEvent{
			Timestamp:        ts,
			Method:           req.Method,
			StatusCode:       200,
			IP:               ip,
			TokenMasked:      masked,
			DependencyStatus: status,
			LatencyMs:        s.Now().Sub(start).Milliseconds(),
			Reason:           fmt.Sprintf("dependency %d - retry in %dms", status, retryDelay.Milliseconds()),
		})
		s.Sleep(retryDelay)
		status, missingConfig = attempt()
	}
	return status, missingConfig
}

// reject loguea el fallo, escala la racha y arma la respuesta de error.
func (s *Service) reject(req Request, ts string, start time.Time, ip, masked string, code int, message string) Response {
	latency := s.Now().Sub(start).Milliseconds()

	s.logger.Warn("keepalive rejected",
		log.Route(RouteName),
		log.Method(req.Method),
		log.Status(code),
		log.ClientIP(ip),
		log.TokenMasked(masked),
		log.DurationMs(latency),
		log.String("error", message),
	)
	s.events.push(ErrorEvent{
		Timestamp:   ts,
		Method:      req.Method,
		StatusCode:  code,
		IP:          ip,
		TokenMasked: masked,
		LatencyMs:   latency,
		Reason:      message,
	})
	s.escalate(message)

	return Response{HTTPStatus: code, Body: errBody{
		Status:    "error",
		Timestamp: ts,
		Code:      code,
		Message:   message,
	}}
}

// escalate suma al streak y, al cruzar el umbral, manda UNA alerta hasta que
// un éxito resetee el estado.
func (s *Service) escalate(reason string) {
	s.mu.Lock()
	s.streak++
	shouldAlert := s.streak >= failureThreshold && !s.alertSent
	if shouldAlert {
		s.alertSent = true
	}
	s.mu.Unlock()

	if shouldAlert && s.alerts != nil {
		s.alerts.SendFailureAlert(context.Background(), RouteName, reason, s.events.lastN(alertEventCount))
	}
}

func (s *Service) resetStreak() {
	s.mu.Lock()
	s.streak = 0
	s.alertSent = false
	s.mu.Unlock()
}

// recordVisit escribe el marcador durable de éxito. Best-effort: un fallo
// acá no voltea la respuesta.
func (s *Service) recordVisit(ctx context.Context, userAgent, ip string) {
	if s.visits == nil {
		return
	}
	v := &core.SiteVisit{Page: PageName}
	if userAgent != "" {
		v.UserAgent = &userAgent
	}
	if ip != "" {
		v.IP = &ip
	}
	if err := s.visits.CreateVisit(ctx, v); err != nil {
		s.logger.Warn("keepalive visit write failed", log.Route(RouteName), log.Err(err))
	}
}

// ── Monitor ─────────────────────────────────────────────────────────

// Monitor chequea que el scheduler realmente esté llamando al keepalive.
// Siempre responde 200 una vez autorizado: la degradación viaja en "details"
// y por el canal de alertas, nunca en el status HTTP.
func (s *Service) Monitor(ctx context.Context, req Request) Response {
	ts := FormatTimestamp(s.Now())

	verdict, _ := s.auth.Authorize(req.Authorization, "")
	if verdict == AuthMissingToken || verdict == AuthMisconfigured || verdict == AuthInvalidToken {
		return Response{HTTPStatus: 401, Body: errBody{
			Status:    "error",
			Timestamp: ts,
			Code:      401,
			Message:   "unauthorized",
		}}
	}

	var lastAt *time.Time
	if s.visits != nil {
		if last, err := s.visits.LastVisitByPage(ctx, PageName); err == nil && last != nil {
			lastAt = &last.CreatedAt
		}
	}

	if lastAt == nil {
		s.monitorAlert("scheduler missed run (no calls recorded)")
		return monitorOK(ts, "no-calls")
	}

	if age := s.Now().Sub(*lastAt); age > s.cfg.ExpectedInterval {
		s.monitorAlert(fmt.Sprintf("scheduler missed run (> %ds since last)", int(s.cfg.ExpectedInterval.Seconds())))
		return monitorOK(ts, "stale")
	}
	return monitorOK(ts, "recent")
}

func (s *Service) monitorAlert(reason string) {
	s.logger.Warn("scheduler staleness", log.Route(RouteName), log.String("reason", reason))
	if s.alerts != nil {
		s.alerts.SendFailureAlert(context.Background(), RouteName, reason, s.events.lastN(alertEventCount))
	}
}

func monitorOK(ts, details string) Response {
	return Response{HTTPStatus: 200, Body: okBody{
		Status:           "ok",
		Timestamp:        ts,
		DependencyStatus: 0,
		Details:          details,
	}}
}
