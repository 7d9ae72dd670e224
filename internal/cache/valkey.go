// Package cache provides Valkey (Redis-compatible) client initialization
// and the hydrated entity-view cache used by the content read paths.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// connectTimeout bounds the startup ping. Valkey is an optional
// dependency, so a misconfigured address should fail fast rather than
// stall boot.
const connectTimeout = 5 * time.Second

// ConnectValkey creates a client for the given addr ("host:port") and
// verifies it with a ping. Callers skip this entirely when no address is
// configured; the view cache then runs in its nil always-miss mode.
func ConnectValkey(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping %s: %w", addr, err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}
