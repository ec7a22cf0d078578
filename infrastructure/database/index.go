package database

import (
	"context"

	"paygate.io/infrastructure/database/connection"
	"paygate.io/infrastructure/database/connection/cache"
	"paygate.io/infrastructure/env"
)

func SetUpDatabase(ctx context.Context, config *env.Config) (*cache.RedisClient, error) {
	return connection.ConnectToDatabase(ctx, config)
}
