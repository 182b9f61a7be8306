package alerts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhu-org/sakhu-backend/internal/keepalive"
)

type recordingSender struct {
	to, subject, text string
	calls             int
	err               error
}

func (r *recordingSender) Send(to, subject, _ string, textBody string) error {
	r.calls++
	r.to, r.subject, r.text = to, subject, textBody
	return r.err
}

func TestSendFailureAlert_PostsToSlack(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher(Config{SlackWebhookURL: srv.URL}, nil)
	d.SendFailureAlert(context.Background(), "/internal/keepalive", "invalid token", []keepalive.ErrorEvent{
		{Timestamp: "2025-01-01T00:00:00+00:00", Method: "GET", StatusCode: 403, Reason: "invalid token"},
	})

	require.NotNil(t, got)
	assert.Contains(t, got["text"], "/internal/keepalive")
	assert.Contains(t, got["text"], "invalid token")
	assert.Contains(t, got["text"], "status=403")
}

func TestSendFailureAlert_EmailsWhenConfigured(t *testing.T) {
	s := &recordingSender{}
	d := NewDispatcher(Config{EmailTo: "ops@example.org"}, s)

	d.SendFailureAlert(context.Background(), "/internal/keepalive", "rate limit exceeded", nil)

	require.Equal(t, 1, s.calls)
	assert.Equal(t, "ops@example.org", s.to)
	assert.Contains(t, s.subject, "/internal/keepalive")
	assert.Contains(t, s.text, "rate limit exceeded")
}

func TestSendFailureAlert_NoChannelsIsSilent(t *testing.T) {
	d := NewDispatcher(Config{}, nil)
	// No panic, no error: las alertas sin canales se descartan.
	d.SendFailureAlert(context.Background(), "/internal/keepalive", "whatever", nil)
}

func TestSendFailureAlert_SenderErrorIsSwallowed(t *testing.T) {
	s := &recordingSender{err: io.ErrUnexpectedEOF}
	d := NewDispatcher(Config{EmailTo: "ops@example.org"}, s)
	d.SendFailureAlert(context.Background(), "/internal/keepalive", "reason", nil)
	assert.Equal(t, 1, s.calls)
}
