// Package alerts despacha notificaciones operativas (Slack webhook y/o
// email). Todo es best-effort: una alerta que no sale se loguea y se sigue;
// las alertas nunca voltean el request que las originó.
package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sakhu-org/sakhu-backend/internal/keepalive"
	log "github.com/sakhu-org/sakhu-backend/internal/observability/logger"
)

type Config struct {
	SlackWebhookURL string
	EmailTo         string
	EmailFrom       string
}

type Dispatcher struct {
	cfg    Config
	sender Sender
	client *http.Client
	logger *zap.Logger
}

// NewDispatcher arma el despachador. sender puede ser nil (sin canal email);
// con SlackWebhookURL vacío tampoco hay canal Slack: las alertas se
// descartan en silencio, que es el comportamiento esperado en dev.
func NewDispatcher(cfg Config, sender Sender) *Dispatcher {
	return &Dispatcher{
		cfg:    cfg,
		sender: sender,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: log.Named("alerts"),
	}
}

var _ keepalive.Notifier = (*Dispatcher)(nil)

// SendFailureAlert implementa keepalive.Notifier.
func (d *Dispatcher) SendFailureAlert(ctx context.Context, route, reason string, recent []keepalive.ErrorEvent) {
	subject := fmt.Sprintf("[sakhu] failure alert: %s", route)
	body := formatBody(route, reason, recent)

	d.sendSlack(ctx, subject+"\n"+body)
	d.sendEmail(subject, body)
}

// Notify manda un aviso operativo genérico (formularios, admin).
func (d *Dispatcher) Notify(ctx context.Context, subject, body string) {
	d.sendSlack(ctx, subject+"\n"+body)
	d.sendEmail(subject, body)
}

func (d *Dispatcher) sendSlack(ctx context.Context, text string) {
	if d.cfg.SlackWebhookURL == "" {
		return
	}
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.SlackWebhookURL, bytes.NewReader(payload))
	if err != nil {
		d.logger.Warn("slack request build failed", log.Err(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Warn("slack alert failed", log.Err(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		d.logger.Warn("slack alert rejected", log.Status(resp.StatusCode))
	}
}

func (d *Dispatcher) sendEmail(subject, body string) {
	if d.sender == nil || d.cfg.EmailTo == "" {
		return
	}
	if err := d.sender.Send(d.cfg.EmailTo, subject, "", body); err != nil {
		d.logger.Warn("email alert failed", log.Err(err))
	}
}

func formatBody(route, reason string, recent []keepalive.ErrorEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "route: %s\nreason: %s\n", route, reason)
	if len(recent) > 0 {
		b.WriteString("recent errors:\n")
		for _, e := range recent {
			fmt.Fprintf(&b, "  - %s %s status=%d dep=%d ip=%s token=%s err=%s\n",
				e.Timestamp, e.Method, e.StatusCode, e.DependencyStatus, e.IP, e.TokenMasked, e.Reason)
		}
	}
	return b.String()
}
