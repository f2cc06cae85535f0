package main

import (
	"os"

	"bonzai/internal/bookings/handler"
	"bonzai/internal/bookings/repository"
	"bonzai/internal/bookings/service"
	"bonzai/internal/bookings/validator"
	"bonzai/pkg/app"
	"bonzai/pkg/config"
	"bonzai/pkg/events"
	kafka_config "bonzai/pkg/kafka/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	bookingService := initServices(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Policy, cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	roomRepo := repository.NewMongoRoomRepository(cfg)
	bookingService := service.NewBookingService(
		bookingRepo,
		roomRepo,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

// initPublisher wires the Kafka publisher when brokers are configured and
// falls back to a no-op otherwise, so the service runs without a broker.
func initPublisher(cfg *config.Config) events.Publisher {
	if os.Getenv(kafka_config.EnvKafkaBrokers) == "" {
		cfg.Log.Info("No Kafka brokers configured, booking events disabled")
		return events.NopPublisher{}
	}

	kafkaCfg := kafka_config.Load()
	publisher, err := events.NewKafkaPublisher(kafkaCfg, ServiceName, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}

	cfg.Log.Info("Kafka event publisher initialized", "brokers", kafkaCfg.Brokers)
	return publisher
}
