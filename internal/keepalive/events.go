package keepalive

import "sync"

// ErrorEvent es un intento fallido retenido en memoria para enriquecer las
// alertas. No se persiste.
type ErrorEvent struct {
	Timestamp        string `json:"timestamp"`
	Method           string `json:"method"`
	StatusCode       int    `json:"statusCode"`
	IP               string `json:"ip,omitempty"`
	TokenMasked      string `json:"tokenIdMasked,omitempty"`
	DependencyStatus int    `json:"dependencyStatus,omitempty"`
	LatencyMs        int64  `json:"latencyMs"`
	Reason           string `json:"error"`
}

const (
	eventRingCap    = 20
	alertEventCount = 5
)

// eventRing retiene los últimos N eventos de error, el más nuevo al final.
type eventRing struct {
	mu  sync.Mutex
	buf []ErrorEvent
	max int
}

func newEventRing(max int) *eventRing {
	if max <= 0 {
		max = eventRingCap
	}
	return &eventRing{max: max}
}

func (r *eventRing) push(e ErrorEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = append(r.buf, e)
	if len(r.buf) > r.max {
		r.buf = r.buf[len(r.buf)-r.max:]
	}
}

// lastN devuelve una copia de los últimos n eventos (el más nuevo al final).
func (r *eventRing) lastN(n int) []ErrorEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > len(r.buf) {
		n = len(r.buf)
	}
	out := make([]ErrorEvent, n)
	copy(out, r.buf[len(r.buf)-n:])
	return out
}
