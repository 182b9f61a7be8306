package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Mem struct{ c *gocache.Cache }

func NewMemory(defaultTTL time.Duration) *Mem {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &Mem{c: gocache.New(defaultTTL, time.Minute)}
}

func (m *Mem) Get(k string) ([]byte, bool) {
	v, ok := m.c.Get(k)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	return b, true
}

func (m *Mem) Set(k string, v []byte, ttl time.Duration) { m.c.Set(k, v, ttl) }
func (m *Mem) Delete(k string)                           { m.c.Delete(k) }
