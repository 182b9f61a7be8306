package keepalive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalLimiter_Window(t *testing.T) {
	l := NewIntervalLimiter(60*time.Second, false)
	base := time.Now()
	now := base
	l.now = func() time.Time { return now }

	ok, _ := l.Allow("tok", "1.2.3.4")
	assert.True(t, ok)

	now = base.Add(30 * time.Second)
	ok, retry := l.Allow("tok", "1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, 30, retry)

	// Los rechazos no corren la ventana: a los 60s del primer hit, pasa.
	now = base.Add(60 * time.Second)
	ok, _ = l.Allow("tok", "1.2.3.4")
	assert.True(t, ok)
}

func TestIntervalLimiter_RetryAfterRoundsUp(t *testing.T) {
	l := NewIntervalLimiter(60*time.Second, false)
	base := time.Now()
	now := base
	l.now = func() time.Time { return now }

	l.Allow("tok", "ip")
	now = base.Add(10*time.Second + 300*time.Millisecond)
	ok, retry := l.Allow("tok", "ip")
	assert.False(t, ok)
	assert.Equal(t, 50, retry) // ceil(49.7)
}

func TestIntervalLimiter_DistinctKeys(t *testing.T) {
	l := NewIntervalLimiter(60*time.Second, false)

	ok, _ := l.Allow("tok", "1.2.3.4")
	assert.True(t, ok)

	// Otra IP, mismo token: clave distinta.
	ok, _ = l.Allow("tok", "9.9.9.9")
	assert.True(t, ok)

	// Otro token, misma IP: clave distinta.
	ok, _ = l.Allow("otro", "1.2.3.4")
	assert.True(t, ok)

	// Repetir una clave ya vista: rechazado.
	ok, _ = l.Allow("tok", "1.2.3.4")
	assert.False(t, ok)
}

func TestIntervalLimiter_Bypass(t *testing.T) {
	l := NewIntervalLimiter(60*time.Second, true)
	for i := 0; i < 5; i++ {
		ok, retry := l.Allow("tok", "ip")
		assert.True(t, ok)
		assert.Zero(t, retry)
	}
}
