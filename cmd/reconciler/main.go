package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"bonzai/internal/bookings/repository"
	"bonzai/internal/reconciler"
	"bonzai/pkg/config"
	"bonzai/pkg/events"
	"bonzai/pkg/kafka"
	kafka_config "bonzai/pkg/kafka/config"
)

const ServiceName = "reconciler"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting inventory reconciler")

	bookingRepo := repository.NewMongoBookingRepository(cfg)
	roomRepo := repository.NewMongoRoomRepository(cfg)
	rec := reconciler.NewReconciler(bookingRepo, roomRepo, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleSignals(cfg, cancel)

	consumer := initConsumer(cfg)
	if consumer != nil {
		defer func() {
			if err := consumer.Close(); err != nil {
				cfg.Log.Error("Failed to close event consumer", "error", err)
			}
		}()

		go func() {
			if err := consumer.Run(ctx, rec.EventHandler()); err != nil && !errors.Is(err, kafka.ErrConsumerClosed) {
				cfg.Log.Error("Event consumer stopped", "error", err)
			}
		}()
	}

	if err := rec.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Fatal("Reconciler stopped", "error", err)
	}

	cfg.Log.Info("Reconciler stopped gracefully")
}

// initConsumer wires the booking-events consumer when brokers are
// configured. Without a broker the reconciler still runs periodic sweeps.
func initConsumer(cfg *config.Config) *kafka.Consumer {
	if os.Getenv(kafka_config.EnvKafkaBrokers) == "" {
		cfg.Log.Info("No Kafka brokers configured, running periodic sweeps only")
		return nil
	}

	kafkaCfg := kafka_config.Load()
	consumer, err := kafka.NewConsumer(kafkaCfg, events.Topic)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event consumer", "error", err)
	}

	cfg.Log.Info("Booking-events consumer initialized",
		"brokers", kafkaCfg.Brokers,
		"group_id", kafkaCfg.ConsumerGroupID,
	)
	return consumer
}

func handleSignals(cfg *config.Config, cancel context.CancelFunc) {
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdown
	cfg.Log.Info("Shutdown signal received", "signal", sig)
	cancel()
}
