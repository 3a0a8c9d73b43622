// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"
)

// DefaultKeyPrefix namespaces collection keys in Redis.
const DefaultKeyPrefix = "lottohub:collection:"

// RedisOptions tune the Redis document store.
type RedisOptions struct {
	KeyPrefix     string
	RetryAttempts int
	RetryInterval time.Duration
	Breaker       BreakerOptions
}

// BreakerOptions configure the circuit breaker in front of Redis.
type BreakerOptions struct {
	Enabled      bool
	Name         string
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

// ClientOptions override connection settings parsed from the Redis URL.
type ClientOptions struct {
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewRedisClient builds a client from a redis:// URL.
func NewRedisClient(url string, opts ClientOptions) (*redis.Client, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if opts.PoolSize > 0 {
		options.PoolSize = opts.PoolSize
	}
	if opts.DialTimeout > 0 {
		options.DialTimeout = opts.DialTimeout
	}
	if opts.ReadTimeout > 0 {
		options.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		options.WriteTimeout = opts.WriteTimeout
	}
	return redis.NewClient(options), nil
}

// RedisStore keeps each collection under its own key. Saves use MSET so a
// batch is applied atomically. Calls go through a circuit breaker and
// transient network errors are retried with exponential backoff.
type RedisStore struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
	opts    RedisOptions
}

func NewRedisStore(client *redis.Client, opts RedisOptions) *RedisStore {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}

	s := &RedisStore{client: client, opts: opts}
	if !opts.Breaker.Enabled {
		return s
	}

	cfg := opts.Breaker
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= cfg.MinRequests &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return s
}

func (s *RedisStore) key(name string) string {
	return s.opts.KeyPrefix + name
}

func (s *RedisStore) Load(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	found := false

	err := s.execute(ctx, "load["+name+"]", func() error {
		b, err := s.client.Get(ctx, s.key(name)).Bytes()
		if err == redis.Nil {
			// Missing keys are not failures
			return nil
		}
		if err != nil {
			return err
		}
		data, found = b, true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, docs map[string][]byte) error {
	if len(docs) == 0 {
		return nil
	}

	pairs := make([]interface{}, 0, 2*len(docs))
	for name, data := range docs {
		pairs = append(pairs, s.key(name), data)
	}

	return s.execute(ctx, "save", func() error {
		return s.client.MSet(ctx, pairs...).Err()
	})
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// execute runs fn with retries, behind the breaker when one is configured.
func (s *RedisStore) execute(ctx context.Context, operation string, fn func() error) error {
	if s.breaker == nil {
		return s.retry(ctx, operation, fn)
	}

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.retry(ctx, operation, fn)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s rejected by circuit breaker", ErrUnavailable, operation)
	}
	return err
}

func (s *RedisStore) retry(ctx context.Context, operation string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= s.opts.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<(attempt-1)) * s.opts.RetryInterval
			if delay > 5*time.Second {
				delay = 5 * time.Second
			}

			select {
			case <-ctx.Done():
				return fmt.Errorf("redis %s cancelled after %d attempts: %w", operation, attempt, ctx.Err())
			case <-time.After(delay):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetriableRedisError(err) {
			break
		}
		slog.Debug("retrying redis operation", "operation", operation, "attempt", attempt+1, "error", err)
	}

	return fmt.Errorf("redis %s failed: %w", operation, lastErr)
}

var retriableRedisErrors = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"broken pipe",
	"network is unreachable",
	"no route to host",
	"server closed",
	"redis: connection pool timeout",
}

func isRetriableRedisError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range retriableRedisErrors {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
