package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shortnote/note-system/internal/infrastructure/config"
)

// defaultTimeout bounds the startup ping when the configuration carries none.
const defaultTimeout = 5 * time.Second

// Connect builds the client for the Redis instance holding session payloads
// and pings it, so a misconfigured REDIS_ADDR fails at startup rather than
// on the first login. Callers own the client and close it on shutdown.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
