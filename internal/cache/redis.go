package cache

import (
	"context"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

type Redis struct{ c *rdb.Client }

func NewRedis(addr string, db int) *Redis {
	return &Redis{c: rdb.NewClient(&rdb.Options{Addr: addr, DB: db})}
}

func (r *Redis) Get(k string) ([]byte, bool) {
	b, err := r.c.Get(context.Background(), k).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (r *Redis) Set(k string, v []byte, ttl time.Duration) {
	_ = r.c.Set(context.Background(), k, v, ttl).Err()
}

func (r *Redis) Delete(k string) { _ = r.c.Del(context.Background(), k).Err() }

// Client expone el cliente para reutilizarlo (p.ej. rate limiting).
func (r *Redis) Client() *rdb.Client { return r.c }
