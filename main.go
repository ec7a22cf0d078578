package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"paygate.io/infrastructure"
	"paygate.io/infrastructure/env"
	"paygate.io/infrastructure/logger"
)

func init() {
	env.LoadEnv()
}

func main() {
	config, err := env.LoadConfig()
	if err != nil {
		logger.InitializeLogger()
		logger.Error("invalid configuration", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := infrastructure.StartServer(ctx, config); err != nil {
		logger.Error("server stopped with an error", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		stop()
		os.Exit(1)
	}
}
