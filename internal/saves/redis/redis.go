// Package redis реализует хранилище сохранений в Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Ключи игры живут под общим префиксом, TTL не используется:
// сохранения должны переживать любой простой.
const keyPrefix = "mmdress:save:"

// Store реализует saves.Store поверх redis.Client
type Store struct {
	client *redis.Client
}

// New подключается к Redis и проверяет соединение
func New(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("saves redis: failed to ping %s: %w", addr, err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("saves redis: failed to get %q: %w", key, err)
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("saves redis: failed to set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("saves redis: failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
