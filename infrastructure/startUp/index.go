package startup

import (
	"context"

	"paygate.io/infrastructure/database"
	"paygate.io/infrastructure/database/connection/cache"
	"paygate.io/infrastructure/env"
	"paygate.io/infrastructure/logger"
	"paygate.io/infrastructure/payments"
)

var redisClient *cache.RedisClient

// Used to start services such as loggers, caches and payment processors.
func StartServices(ctx context.Context, config *env.Config) error {
	logger.InitializeLogger()
	client, err := database.SetUpDatabase(ctx, config)
	if err != nil {
		return err
	}
	redisClient = client
	return payments.InitialisePaymentProcessors(config, redisClient)
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	if err := redisClient.Close(); err != nil {
		logger.Error("an error occured while trying to close redis", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	logger.Sync()
}
