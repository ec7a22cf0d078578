package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"paygate.io/infrastructure/env"
	"paygate.io/infrastructure/logger"
)

type RedisClient struct {
	Client *redis.Client
}

func ConnectToCache(ctx context.Context, config *env.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        config.Addr,
		Password:    config.Password,
		DB:          0,
		PoolSize:    10,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Error("an error occured while trying to connect to redis", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "addr",
			Data: config.Addr,
		})
		_ = client.Close()
		return nil, err
	}
	logger.Info("connected to redis successfully")
	return &RedisClient{Client: client}, nil
}

func (rc *RedisClient) Close() error {
	if rc == nil || rc.Client == nil {
		return nil
	}
	return rc.Client.Close()
}
