package connection

import (
	"context"

	"paygate.io/infrastructure/database/connection/cache"
	"paygate.io/infrastructure/env"
)

// ConnectToDatabase opens the optional redis connection. A nil client means
// no cache was configured.
func ConnectToDatabase(ctx context.Context, config *env.Config) (*cache.RedisClient, error) {
	if config.Redis == nil {
		return nil, nil
	}
	return cache.ConnectToCache(ctx, config.Redis)
}
