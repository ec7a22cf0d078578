package infrastructure

import (
	"context"

	"paygate.io/infrastructure/env"
	startup "paygate.io/infrastructure/startUp"
)

type serverInterface interface {
	Start(ctx context.Context) error
}

func StartServer(ctx context.Context, config *env.Config) error {
	if err := startup.StartServices(ctx, config); err != nil {
		return err
	}
	defer startup.CleanUpServices()

	var server serverInterface = &ginServer{config: config}
	return server.Start(ctx)
}
