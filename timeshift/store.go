package timeshift

import (
	"github.com/redis/go-redis/v9"

	"tripbook/globals"
)

// RedisKV backs the engine's adjustment table with Redis. Keys are
// namespaced so several booklets can share one instance.
type RedisKV struct {
	client *redis.Client
	prefix string
}

func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

func (s *RedisKV) Get(key, def string) string {
	val, err := s.client.Get(globals.Ctx, s.prefix+key).Result()
	if err != nil {
		return def
	}
	return val
}

func (s *RedisKV) Set(key, value string) error {
	return s.client.Set(globals.Ctx, s.prefix+key, value, 0).Err()
}
