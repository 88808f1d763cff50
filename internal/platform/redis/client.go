// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package redis provides a managed client for volatile data storage.

The festival keeps four kinds of short-lived state here: submission drafts
(sliding TTL), the gallery catalogue cache, password reset tokens and the
asynq handoff queue. The queue shares the connection settings parsed by
[ParseURL] but opens its own pool.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connection tuning. Draft saves and catalogue reads are single-key commands.
const (
	poolSize     = 16
	minIdleConns = 2
	maxIdleConns = 8

	dialTimeout  = 3 * time.Second
	ioTimeout    = 2 * time.Second
	pingTimeout  = 2 * time.Second
	connLifetime = 30 * time.Minute
)

// ParseURL validates a redis:// or rediss:// URL and applies the festival
// connection defaults.
func ParseURL(redisURL string) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout
	options.ContextTimeoutEnabled = true
	return options, nil
}

/*
NewClient connects to Redis and verifies the connection with a ping.

Parameters:
  - context: bounds the initial ping
  - redisURL: connection URL
  - clientName: reported by CLIENT LIST, usually the service name
  - logger: connection events
*/
func NewClient(context stdctx.Context, redisURL, clientName string, logger *slog.Logger) (*redis.Client, error) {
	options, err := ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	options.ClientName = clientName
	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.MaxIdleConns = maxIdleConns
	options.ConnMaxLifetime = connLifetime

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.String("client_name", clientName),
	)
	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client redis.UniversalClient) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
