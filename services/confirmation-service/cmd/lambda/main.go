package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"order-confirmation/services/confirmation-service/internal/app"
	"order-confirmation/services/confirmation-service/internal/lambdahandler"
	"order-confirmation/shared/pkg/config"
	"order-confirmation/shared/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Common.ServiceName, cfg.Common.LogLevel)

	n, cleanup, err := app.NewNotifier(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("notifier init failed")
	}
	defer cleanup()

	h := &lambdahandler.Handler{Log: log, Notifier: n}
	lambda.Start(h.Handle)
}
