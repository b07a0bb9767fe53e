package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"janus/api/console"
	"janus/infra/config"
	"janus/infra/kafka"
	"janus/infra/logger"
	"janus/jobs/broadcaster"
	"janus/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	svc := service.NewOrderService(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(kafka.Config{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			BatchTimeout: time.Duration(cfg.Kafka.BatchTimeout) * time.Millisecond,
		})
		bc := broadcaster.New(svc.Events(), producer, log)
		go bc.Run(ctx)
		defer func() { _ = bc.Close() }()

		log.Info("event broadcaster enabled",
			logger.Field{Key: "topic", Value: cfg.Kafka.Topic},
			logger.Field{Key: "brokers", Value: cfg.Kafka.Brokers},
		)
	}

	log.Info("engine ready", logger.Field{Key: "app", Value: cfg.App.Name})

	con := console.New(svc, os.Stdout)
	if err := con.Run(os.Stdin); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
