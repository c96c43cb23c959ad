package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// dialTimeout bounds the startup connectivity check. Session reads and
// writes afterwards run under the request context.
const dialTimeout = 5 * time.Second

// Config selects the Redis backend for the session store. Addr comes from
// configuration only; an empty Addr means the caller should fall back to the
// in-memory store instead of dialing.
type Config struct {
	Addr string
	DB   int
}

// Open dials Redis, verifies connectivity with a ping, and returns a
// SessionStore bound to the connection. Close on the store releases the
// client.
func Open(ctx context.Context, cfg Config) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewSessionStore(client), nil
}
