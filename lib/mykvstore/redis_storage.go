package mykvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) Storage {
	return &redisStorage{
		client: client,
	}
}

func (s *redisStorage) GetItem(c context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(c, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s failed: %w", key, err)
	}
	return value, true, nil
}

func (s *redisStorage) SetItem(c context.Context, key string, value string) error {
	// Like local storage, items never expire
	err := s.client.Set(c, key, value, 0).Err()
	if err != nil {
		return fmt.Errorf("redis set %s failed: %w", key, err)
	}
	return nil
}

func (s *redisStorage) RemoveItem(c context.Context, key string) error {
	err := s.client.Del(c, key).Err()
	if err != nil {
		return fmt.Errorf("redis delete %s failed: %w", key, err)
	}
	return nil
}
