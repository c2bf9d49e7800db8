package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/archmap-dev/archmap/pkg/layout"
)

// redisKeyPrefix namespaces position keys in shared Redis instances.
const redisKeyPrefix = "archmap:positions:"

// RedisConfig configures the Redis-backed position store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore persists positions in a Redis hash per project, with each
// component ID as a field. Suited to multi-instance deployments where the
// HTTP API runs behind a load balancer.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &RedisStore{client: client}, nil
}

// Get loads the saved positions of a project.
func (s *RedisStore) Get(ctx context.Context, project string) (layout.PositionMap, error) {
	fields, err := s.client.HGetAll(ctx, redisKeyPrefix+project).Result()
	if err != nil {
		return nil, fmt.Errorf("redis get positions: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	positions := make(layout.PositionMap, len(fields))
	for id, raw := range fields {
		var p layout.Point
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			continue // skip corrupt fields, keep the rest
		}
		positions[id] = p
	}
	return positions, nil
}

// Set replaces the saved positions of a project wholesale. The hash is
// rewritten inside a pipeline so concurrent readers see either the old or
// the new map, never a mix of partial writes and stale fields.
func (s *RedisStore) Set(ctx context.Context, project string, positions layout.PositionMap) error {
	key := redisKeyPrefix + project

	values := make(map[string]any, len(positions))
	for id, p := range positions {
		raw, err := json.Marshal(p)
		if err != nil {
			return err
		}
		values[id] = string(raw)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(values) > 0 {
		pipe.HSet(ctx, key, values)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set positions: %w", err)
	}
	return nil
}

// Clear discards the saved positions of a project.
func (s *RedisStore) Clear(ctx context.Context, project string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+project).Err(); err != nil {
		return fmt.Errorf("redis clear positions: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

var _ PositionStore = (*RedisStore)(nil)
