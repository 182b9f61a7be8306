package rate

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter replica el fixed-window del RedisLimiter en proceso, para
// despliegues sin redis. No comparte estado entre instancias.
type MemoryLimiter struct {
	Max    int64
	Window time.Duration

	mu   sync.Mutex
	wins map[string]*window
}

type window struct {
	start time.Time
	hits  int64
}

func NewMemoryLimiter(max int, win time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		Max:    int64(max),
		Window: win,
		wins:   make(map[string]*window),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := time.Now().UTC()
	start := now.Truncate(l.Window)

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.wins[key]
	if w == nil || !w.start.Equal(start) {
		w = &window{start: start}
		l.wins[key] = w
	}
	w.hits++

	remaining := l.Max - w.hits
	if remaining < 0 {
		remaining = 0
	}
	res := Result{
		Allowed:     w.hits <= l.Max,
		Remaining:   remaining,
		CurrentHits: w.hits,
		WindowTTL:   start.Add(l.Window).Sub(now),
	}
	if !res.Allowed {
		res.RetryAfter = res.WindowTTL
	}
	return res, nil
}
