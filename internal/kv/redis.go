package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/metrics"
)

// Redis is the production Store, backed by a shared Redis database.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to Redis and verifies the connection.
// All keys are namespaced under prefix (default "rooming:").
func NewRedis(host, port, password, prefix string) (*Redis, error) {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}
	if prefix == "" {
		prefix = "rooming:"
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 5,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	logger.Log.Info("Redis store connected",
		zap.String("address", addr),
		zap.String("prefix", prefix),
	)

	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		recordOp("get", start, nil)
		return nil, false, nil
	}
	recordOp("get", start, err)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *Redis) Put(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := r.client.Set(ctx, r.prefix+key, value, 0).Err()
	recordOp("put", start, err)
	return err
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := r.client.Del(ctx, r.prefix+key).Err()
	recordOp("delete", start, err)
	return err
}

func (r *Redis) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	var keys []string
	pattern := r.prefix + prefix + "*"

	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(r.prefix):])
	}
	err := iter.Err()
	recordOp("list_keys", start, err)
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func recordOp(operation string, start time.Time, err error) {
	m := metrics.Get()
	status := "success"
	if err != nil {
		status = "error"
	}
	m.StoreOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.StoreOperationsTotal.WithLabelValues(operation, status).Inc()
}

// Incr increments a counter key outside the JSON-blob namespace.
// Used by the rate limiter, which shares the connection pool.
func (r *Redis) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, r.prefix+key).Result()
}

// Expire sets a TTL on a counter key.
func (r *Redis) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Expire(ctx, r.prefix+key, ttl).Err()
}

// SetEx writes a value with a TTL. Used for short-lived OAuth state tokens.
func (r *Redis) SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

// Close closes the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
