package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"paygate.io/infrastructure/logger"
)

type RedisRepository struct {
	Client redis.Cmdable
}

func NewRedisRepository(client redis.Cmdable) *RedisRepository {
	return &RedisRepository{Client: client}
}

func (redisRepo *RedisRepository) CreateEntry(ctx context.Context, key string, payload interface{}, ttl time.Duration) bool {
	_, err := redisRepo.Client.Set(ctx, key, payload, ttl).Result()
	if err != nil {
		logger.Error("redis error occured while running CreateEntry", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}

	logger.Info("redis CreateEntry completed")
	return true
}

// FindOne returns nil both for a missing key and for a failed lookup.
func (redisRepo *RedisRepository) FindOne(ctx context.Context, key string) *string {
	result, err := redisRepo.Client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		logger.Error("redis error occured while running FindOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return nil
	}

	logger.Info("redis FindOne completed")
	return &result
}

func (redisRepo *RedisRepository) DeleteOne(ctx context.Context, key string) bool {
	result, err := redisRepo.Client.Del(ctx, key).Result()
	if err != nil {
		logger.Error("redis error occured while running DeleteOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false
	}
	if int(result) != 1 {
		return false
	}

	logger.Info("redis DeleteOne completed")
	return true
}
