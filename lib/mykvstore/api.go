// Package mykvstore offers a browser local-storage like key/value store: string keys
// mapped onto string values, with in-memory, redis and datastore backends.
package mykvstore

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=api.go -package mykvstore -destination storage_mock.go Storage
type Storage interface {
	GetItem(c context.Context, key string) (string, bool, error)
	SetItem(c context.Context, key string, value string) error
	RemoveItem(c context.Context, key string) error
}

// New selects redis when REDIS_ADDR is set, datastore when GOOGLE_CLOUD_PROJECT is set
// and an in-memory store otherwise.
func New(c context.Context) (Storage, func(), error) {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		err := client.Ping(c).Err()
		if err != nil {
			client.Close()
			return nil, func() {}, fmt.Errorf("error connecting to redis at %s: %s", redisAddr, err)
		}
		return NewRedisStorage(client), func() {
			client.Close()
		}, nil
	}

	return newEntityStorage(c)
}
