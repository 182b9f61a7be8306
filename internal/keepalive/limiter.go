package keepalive

import (
	"math"
	"sync"
	"time"
)

// limiterKey identifica al caller: hash del token + IP. Clave compuesta en
// vez de concatenar strings para que ni el token crudo ni ambigüedades de
// separador entren al mapa.
type limiterKey struct {
	tokenHash string
	ip        string
}

// IntervalLimiter admite a lo sumo una llamada por clave por ventana.
// Distinto del fixed-window de rate.RedisLimiter: acá la semántica es
// "mínimo intervalo entre llamadas aceptadas", en proceso y sin redis.
type IntervalLimiter struct {
	window time.Duration
	bypass bool

	mu   sync.Mutex
	last map[limiterKey]time.Time

	now func() time.Time
}

func NewIntervalLimiter(window time.Duration, bypass bool) *IntervalLimiter {
	if window <= 0 {
		window = 60 * time.Second
	}
	return &IntervalLimiter{
		window: window,
		bypass: bypass,
		last:   make(map[limiterKey]time.Time),
		now:    time.Now,
	}
}

// Allow decide si la llamada pasa. Solo las llamadas aceptadas actualizan el
// marcador de "última aceptada"; los rechazos no corren la ventana. Devuelve
// los segundos a esperar (ceil del resto de ventana) cuando rechaza.
func (l *IntervalLimiter) Allow(token, ip string) (allowed bool, retryAfterSec int) {
	if l.bypass {
		return true, 0
	}

	key := limiterKey{tokenHash: MaskToken(token), ip: ip}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if last, ok := l.last[key]; ok {
		elapsed := now.Sub(last)
		if elapsed < l.window {
			remaining := l.window - elapsed
			return false, int(math.Ceil(remaining.Seconds()))
		}
	}
	l.last[key] = now

	// Poda oportunista: entradas con ventana vencida no aportan nada.
	for k, t := range l.last {
		if now.Sub(t) > 2*l.window {
			delete(l.last, k)
		}
	}
	return true, 0
}
