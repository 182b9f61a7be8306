// Package cache provee un cache chico de lectura para el contenido público
// (hero, testimonios, noticias). Soporta memory (in-process) y redis.
package cache

import "time"

type Cache interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}

// Config para elegir backend.
type Config struct {
	Driver string // "memory" | "redis"
	Addr   string
	DB     int
	TTL    time.Duration
}

// New crea el cache según la configuración. Driver desconocido cae a memory.
func New(cfg Config) Cache {
	switch cfg.Driver {
	case "redis":
		if cfg.Addr != "" {
			return NewRedis(cfg.Addr, cfg.DB)
		}
		return NewMemory(cfg.TTL)
	default:
		return NewMemory(cfg.TTL)
	}
}
