package store

import (
	"context"
	"errors"

	"academy/config"

	"github.com/redis/go-redis/v9"
)

// RedisKV backs the progress cache with Redis so a learner's cached record
// survives process restarts and is shared across instances.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV() *RedisKV {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(key string) (string, error) {
	val, err := r.client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisKV) Set(key, value string) error {
	return r.client.Set(context.Background(), key, value, 0).Err()
}

// Ping verifies connectivity at startup.
func (r *RedisKV) Ping() error {
	return r.client.Ping(context.Background()).Err()
}
