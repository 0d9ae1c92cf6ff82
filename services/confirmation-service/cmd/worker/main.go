package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-faster/errors"

	"order-confirmation/services/confirmation-service/internal/app"
	httpx "order-confirmation/services/confirmation-service/internal/http"
	"order-confirmation/services/confirmation-service/internal/worker"
	"order-confirmation/shared/pkg/config"
	"order-confirmation/shared/pkg/logger"
	"order-confirmation/shared/pkg/rabbit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Common.ServiceName, cfg.Common.LogLevel)

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n, cleanup, err := app.NewNotifier(appCtx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("notifier init failed")
	}
	defer cleanup()

	rc, err := rabbit.Connect(cfg.Rabbit.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("rabbit connect failed")
	}
	defer func() { _ = rc.Close() }()

	if err := rabbit.DeclareBase(rc.Ch); err != nil {
		log.Fatal().Err(err).Msg("declare base failed")
	}

	dlqKey := cfg.Rabbit.Queue + ".dlq"
	if err := rabbit.DeclareQueueWithDLQ(rc.Ch, rabbit.QueueSpec{
		Name:     cfg.Rabbit.Queue,
		BindKeys: cfg.Rabbit.BindKeys,
		DLQKey:   dlqKey,
	}); err != nil {
		log.Fatal().Err(err).Msg("declare confirmation topology failed")
	}

	deliveries, err := rabbit.NewConsumer(rc.Ch).Consume(cfg.Rabbit.Queue, cfg.Rabbit.Prefetch)
	if err != nil {
		log.Fatal().Err(err).Msg("consume failed")
	}

	w := &worker.Consumer{Log: log, Notifier: n}
	consumeCtx, stopConsume := context.WithCancel(appCtx)
	defer stopConsume()
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		w.Run(consumeCtx, deliveries)
	}()

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: (&httpx.Server{
			Service: cfg.Common.ServiceName,
			Ready: func() error {
				if rc.Conn.IsClosed() || rc.Ch.IsClosed() {
					return errors.New("rabbit connection closed")
				}
				return nil
			},
		}).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http failed")
		}
	}()

	log.Info().Str("queue", cfg.Rabbit.Queue).Strs("bind_keys", cfg.Rabbit.BindKeys).Msg("confirmation worker started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutdown...")

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()

	// let the in-flight confirmation finish and get acked before anything
	// it depends on is torn down
	stopConsume()
	select {
	case <-consumerDone:
	case <-shCtx.Done():
		log.Warn().Msg("consumer did not stop in time")
	}
	cancel()
	_ = srv.Shutdown(shCtx)
}
