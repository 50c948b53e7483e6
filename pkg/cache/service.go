package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clubly/pkg/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

var ErrCacheMiss = errors.New("cache miss")

const scanBatchSize = 200

type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error

	// GetOrSet reads key into dest, calling fetcher on a miss. Concurrent
	// misses on the same key share one fetcher call.
	GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error

	Ping(ctx context.Context) error
}

type service struct {
	client *redis.Client
	group  singleflight.Group
	log    *logger.Logger
}

func NewService(client *redis.Client) Service {
	return &service{client: client, log: logger.GetDefault()}
}

func (s *service) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

func (s *service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

func (s *service) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

// DeletePattern removes every key matching pattern using SCAN
func (s *service) DeletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("cache scan error: %w", err)
		}

		if len(keys) > 0 {
			if err := s.client.Unlink(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache delete pattern error: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *service) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	err := s.Get(ctx, key, dest)
	if err == nil {
		s.log.LogCacheOperation(ctx, "get", key, true)
		return nil
	}

	if !errors.Is(err, ErrCacheMiss) {
		s.log.WarnWithContext(ctx, "Cache get failed, fetching from source", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	s.log.LogCacheOperation(ctx, "get", key, false)

	data, err, _ := s.group.Do(key, func() (interface{}, error) {
		value, err := fetcher()
		if err != nil {
			return nil, err
		}

		if setErr := s.Set(context.WithoutCancel(ctx), key, value, ttl); setErr != nil {
			s.log.WarnWithContext(ctx, "Cache set failed", map[string]interface{}{
				"key":   key,
				"error": setErr.Error(),
			})
		}
		return value, nil
	})
	if err != nil {
		return fmt.Errorf("fetcher error: %w", err)
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal fetched data error: %w", err)
	}

	return json.Unmarshal(jsonData, dest)
}

func (s *service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
