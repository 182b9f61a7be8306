package keepalive

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhu-org/sakhu-backend/internal/store/core"
)

// ── Fakes ───────────────────────────────────────────────────────────

type fakeProber struct {
	mu       sync.Mutex
	statuses []int
	errs     []error
	calls    int
}

func (f *fakeProber) Probe(_ context.Context, _ Target) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	st := 200
	if i < len(f.statuses) {
		st = f.statuses[i]
	}
	return st, err
}

type fakeVisits struct {
	mu      sync.Mutex
	created []core.SiteVisit
	last    *core.SiteVisit
	lastErr error
}

func (f *fakeVisits) CreateVisit(_ context.Context, v *core.SiteVisit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *v)
	return nil
}

func (f *fakeVisits) LastVisitByPage(_ context.Context, _ string) (*core.SiteVisit, error) {
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	return f.last, nil
}

type fakeAlerter struct {
	mu      sync.Mutex
	reasons []string
	events  [][]ErrorEvent
}

func (f *fakeAlerter) SendFailureAlert(_ context.Context, _ string, reason string, recent []ErrorEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reasons = append(f.reasons, reason)
	f.events = append(f.events, recent)
}

func (f *fakeAlerter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reasons)
}

func newTestService(t *testing.T, cfg Config, prober Prober, visits VisitStore, alerts Notifier) *Service {
	t.Helper()
	if cfg.Token == "" {
		cfg.Token = "sekret"
	}
	s := NewService(cfg, prober, visits, alerts)
	s.Sleep = func(time.Duration) {} // sin esperas reales en tests
	return s
}

func bearerReq(token string) Request {
	return Request{Method: "GET", Authorization: "Bearer " + token, UserAgent: "cron/1.0"}
}

// ── Autorización ────────────────────────────────────────────────────

func TestHandle_MissingAuthorization(t *testing.T) {
	s := newTestService(t, Config{RateBypass: true}, &fakeProber{}, &fakeVisits{}, &fakeAlerter{})

	resp := s.Handle(context.Background(), Request{Method: "GET"})

	require.Equal(t, 401, resp.HTTPStatus)
	body := resp.Body.(errBody)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, 401, body.Code)
	assert.Equal(t, "missing authorization", body.Message)
}

func TestHandle_TokenNotConfigured(t *testing.T) {
	s := NewService(Config{Token: "", RateBypass: true}, &fakeProber{}, &fakeVisits{}, &fakeAlerter{})
	s.Sleep = func(time.Duration) {}

	resp := s.Handle(context.Background(), bearerReq("whatever"))

	require.Equal(t, 500, resp.HTTPStatus)
	assert.Equal(t, "scheduler token not configured", resp.Body.(errBody).Message)
}

func TestHandle_InvalidToken(t *testing.T) {
	s := newTestService(t, Config{RateBypass: true}, &fakeProber{}, &fakeVisits{}, &fakeAlerter{})

	resp := s.Handle(context.Background(), bearerReq("wrong"))

	require.Equal(t, 403, resp.HTTPStatus)
	assert.Equal(t, "invalid token", resp.Body.(errBody).Message)
}

func TestHandle_CorrectTokenNoAllowlist_PassesAnyIP(t *testing.T) {
	s := newTestService(t, Config{RateBypass: true}, &fakeProber{}, &fakeVisits{}, &fakeAlerter{})

	req := bearerReq("sekret")
	req.ForwardedFor = "203.0.113.9"
	resp := s.Handle(context.Background(), req)

	require.Equal(t, 200, resp.HTTPStatus)
	assert.Equal(t, "ok", resp.Body.(okBody).Status)
}

func TestHandle_IPAllowlist(t *testing.T) {
	cfg := Config{IPAllowlist: []string{"1.2.3.4"}, RateBypass: true}

	s := newTestService(t, cfg, &fakeProber{}, &fakeVisits{}, &fakeAlerter{})
	req := bearerReq("sekret")
	req.ForwardedFor = "5.6.7.8"
	resp := s.Handle(context.Background(), req)
	require.Equal(t, 403, resp.HTTPStatus)
	assert.Equal(t, "ip not allowed", resp.Body.(errBody).Message)

	s2 := newTestService(t, cfg, &fakeProber{}, &fakeVisits{}, &fakeAlerter{})
	req.ForwardedFor = "1.2.3.4, 10.0.0.1"
	resp = s2.Handle(context.Background(), req)
	require.Equal(t, 200, resp.HTTPStatus)
}

// ── Rate limiting ───────────────────────────────────────────────────

func TestHandle_RateLimitWithinWindow(t *testing.T) {
	s := newTestService(t, Config{RateWindow: 60 * time.Second}, &fakeProber{}, &fakeVisits{}, &fakeAlerter{})

	base := time.Now()
	now := base
	s.Now = func() time.Time { return now }
	s.limiter.now = func() time.Time { return now }

	req := bearerReq("sekret")
	req.ForwardedFor = "1.2.3.4"

	resp := s.Handle(context.Background(), req)
	require.Equal(t, 200, resp.HTTPStatus)

	// Segunda llamada a los 10s: rechazada con el resto de la ventana.
	now = base.Add(10 * time.Second)
	resp = s.Handle(context.Background(), req)
	require.Equal(t, 429, resp.HTTPStatus)
	assert.Equal(t, "rate limit exceeded", resp.Body.(errBody).Message)
	assert.InDelta(t, 50, resp.RetryAfterSec, 1)

	// Pasada la ventana vuelve a entrar.
	now = base.Add(61 * time.Second)
	resp = s.Handle(context.Background(), req)
	require.Equal(t, 200, resp.HTTPStatus)
}

func TestHandle_RateLimitKeyedByTokenAndIP(t *testing.T) {
	s := newTestService(t, Config{RateWindow: 60 * time.Second}, &fakeProber{}, &fakeVisits{}, &fakeAlerter{})

	req := bearerReq("sekret")
	req.ForwardedFor = "1.2.3.4"
	require.Equal(t, 200, s.Handle(context.Background(), req).HTTPStatus)

	// Misma ventana, otra IP: clave distinta, pasa.
	req.ForwardedFor = "9.9.9.9"
	require.Equal(t, 200, s.Handle(context.Background(), req).HTTPStatus)
}

// ── Probe y retry ───────────────────────────────────────────────────

func TestHandle_RetryThenSucceed(t *testing.T) {
	prober := &fakeProber{statuses: []int{503, 200}}
	var slept []time.Duration
	s := newTestService(t, Config{RateBypass: true}, prober, &fakeVisits{}, &fakeAlerter{})
	s.Sleep = func(d time.Duration) { slept = append(slept, d) }

	resp := s.Handle(context.Background(), bearerReq("sekret"))

	require.Equal(t, 200, resp.HTTPStatus)
	body := resp.Body.(okBody)
	assert.Equal(t, 200, body.DependencyStatus)
	assert.Equal(t, "read success", body.Details)
	assert.Equal(t, 2, prober.calls)
	require.Len(t, slept, 1)
	assert.Equal(t, 240*time.Millisecond, slept[0])
}

func TestHandle_NoRetryOn4xx(t *testing.T) {
	prober := &fakeProber{statuses: []int{404}}
	s := newTestService(t, Config{RateBypass: true}, prober, &fakeVisits{}, &fakeAlerter{})

	resp := s.Handle(context.Background(), bearerReq("sekret"))

	require.Equal(t, 200, resp.HTTPStatus)
	body := resp.Body.(okBody)
	assert.Equal(t, 404, body.DependencyStatus)
	assert.Equal(t, "read error", body.Details)
	assert.Equal(t, 1, prober.calls)
}

func TestHandle_PersistentFailureStillHTTP200(t *testing.T) {
	prober := &fakeProber{statuses: []int{503, 503}}
	visits := &fakeVisits{}
	s := newTestService(t, Config{RateBypass: true}, prober, visits, &fakeAlerter{})

	resp := s.Handle(context.Background(), bearerReq("sekret"))

	require.Equal(t, 200, resp.HTTPStatus)
	body := resp.Body.(okBody)
	assert.Equal(t, 503, body.DependencyStatus)
	assert.Equal(t, "read error", body.Details)
	assert.Equal(t, 2, prober.calls)
	assert.Empty(t, visits.created, "un probe fallido no escribe marcador de éxito")
}

func TestHandle_MissingConfigTreatedAsNonFailure(t *testing.T) {
	prober := &StoreProber{Store: nil}
	visits := &fakeVisits{}
	s := newTestService(t, Config{RateBypass: true}, prober, visits, &fakeAlerter{})

	resp := s.Handle(context.Background(), bearerReq("sekret"))

	require.Equal(t, 200, resp.HTTPStatus)
	body := resp.Body.(okBody)
	assert.Equal(t, 0, body.DependencyStatus)
	assert.Equal(t, "missing_config", body.Details)
}

func TestHandle_SuccessRecordsVisit(t *testing.T) {
	visits := &fakeVisits{}
	s := newTestService(t, Config{RateBypass: true}, &fakeProber{}, visits, &fakeAlerter{})

	req := bearerReq("sekret")
	req.ForwardedFor = "1.2.3.4"
	resp := s.Handle(context.Background(), req)

	require.Equal(t, 200, resp.HTTPStatus)
	require.Len(t, visits.created, 1)
	v := visits.created[0]
	assert.Equal(t, PageName, v.Page)
	require.NotNil(t, v.UserAgent)
	assert.Equal(t, "cron/1.0", *v.UserAgent)
	require.NotNil(t, v.IP)
	assert.Equal(t, "1.2.3.4", *v.IP)
}

// ── Escalamiento de fallos ──────────────────────────────────────────

func TestEscalator_SecondConsecutiveFailureAlertsOnce(t *testing.T) {
	alerts := &fakeAlerter{}
	s := newTestService(t, Config{RateBypass: true}, &fakeProber{}, &fakeVisits{}, alerts)

	bad := bearerReq("wrong")
	s.Handle(context.Background(), bad)
	assert.Equal(t, 0, alerts.count(), "un solo fallo no alcanza el umbral")

	s.Handle(context.Background(), bad)
	assert.Equal(t, 1, alerts.count())

	// Más fallos: debounced, sin alertas nuevas.
	s.Handle(context.Background(), bad)
	s.Handle(context.Background(), bad)
	assert.Equal(t, 1, alerts.count())
}

func TestEscalator_SuccessResetsStreakAndRearmsAlert(t *testing.T) {
	alerts := &fakeAlerter{}
	s := newTestService(t, Config{RateBypass: true}, &fakeProber{}, &fakeVisits{}, alerts)

	bad := bearerReq("wrong")
	s.Handle(context.Background(), bad)
	s.Handle(context.Background(), bad)
	require.Equal(t, 1, alerts.count())

	// Éxito: resetea racha y rearma la alerta.
	require.Equal(t, 200, s.Handle(context.Background(), bearerReq("sekret")).HTTPStatus)

	s.Handle(context.Background(), bad)
	assert.Equal(t, 1, alerts.count())
	s.Handle(context.Background(), bad)
	assert.Equal(t, 2, alerts.count())
}

func TestEscalator_AlertCarriesRecentErrors(t *testing.T) {
	alerts := &fakeAlerter{}
	s := newTestService(t, Config{RateBypass: true}, &fakeProber{}, &fakeVisits{}, alerts)

	bad := bearerReq("wrong")
	s.Handle(context.Background(), bad)
	s.Handle(context.Background(), bad)

	require.Equal(t, 1, alerts.count())
	events := alerts.events[0]
	require.Len(t, events, 2)
	assert.Equal(t, "invalid token", events[0].Reason)
	assert.Equal(t, 403, events[1].StatusCode)
}

// ── Monitor ─────────────────────────────────────────────────────────

func TestMonitor_Unauthorized(t *testing.T) {
	s := newTestService(t, Config{}, &fakeProber{}, &fakeVisits{}, &fakeAlerter{})

	resp := s.Monitor(context.Background(), Request{Method: "GET"})
	require.Equal(t, 401, resp.HTTPStatus)
	assert.Equal(t, "unauthorized", resp.Body.(errBody).Message)

	resp = s.Monitor(context.Background(), bearerReq("wrong"))
	require.Equal(t, 401, resp.HTTPStatus)
}

func TestMonitor_NoCalls(t *testing.T) {
	alerts := &fakeAlerter{}
	visits := &fakeVisits{lastErr: core.ErrNotFound}
	s := newTestService(t, Config{}, &fakeProber{}, visits, alerts)

	resp := s.Monitor(context.Background(), bearerReq("sekret"))

	require.Equal(t, 200, resp.HTTPStatus)
	body := resp.Body.(okBody)
	assert.Equal(t, "no-calls", body.Details)
	assert.Equal(t, 0, body.DependencyStatus)
	require.Equal(t, 1, alerts.count())
	assert.Equal(t, "scheduler missed run (no calls recorded)", alerts.reasons[0])
}

func TestMonitor_Stale(t *testing.T) {
	alerts := &fakeAlerter{}
	old := time.Now().Add(-10 * time.Minute)
	visits := &fakeVisits{last: &core.SiteVisit{Page: PageName, CreatedAt: old}}
	s := newTestService(t, Config{ExpectedInterval: 300 * time.Second}, &fakeProber{}, visits, alerts)

	resp := s.Monitor(context.Background(), bearerReq("sekret"))

	require.Equal(t, 200, resp.HTTPStatus)
	assert.Equal(t, "stale", resp.Body.(okBody).Details)
	require.Equal(t, 1, alerts.count())
	assert.Equal(t, "scheduler missed run (> 300s since last)", alerts.reasons[0])
}

func TestMonitor_Recent(t *testing.T) {
	alerts := &fakeAlerter{}
	visits := &fakeVisits{last: &core.SiteVisit{Page: PageName, CreatedAt: time.Now().Add(-30 * time.Second)}}
	s := newTestService(t, Config{ExpectedInterval: 300 * time.Second}, &fakeProber{}, visits, alerts)

	resp := s.Monitor(context.Background(), bearerReq("sekret"))

	require.Equal(t, 200, resp.HTTPStatus)
	assert.Equal(t, "recent", resp.Body.(okBody).Details)
	assert.Equal(t, 0, alerts.count())
}
