package events

import (
	"context"

	"bonzai/pkg/kafka"
	kafka_config "bonzai/pkg/kafka/config"
	"bonzai/pkg/logger"
	"bonzai/pkg/model"
)

// Topic carries every booking lifecycle event, keyed by booking ID.
const Topic = "booking-events"

// Publisher emits booking lifecycle events. Publishing is advisory: the
// booking service never fails an operation because an event could not be
// written.
type Publisher interface {
	PublishBookingEvent(ctx context.Context, event model.BookingEvent) error
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(cfg *kafka_config.Config, source string, log *logger.Logger) (Publisher, error) {
	producer, err := kafka.NewProducer(cfg, Topic)
	if err != nil {
		return nil, err
	}
	return &kafkaPublisher{
		producer: producer,
		source:   source,
		log:      log,
	}, nil
}

func (p *kafkaPublisher) PublishBookingEvent(ctx context.Context, event model.BookingEvent) error {
	msg := kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(event.Type).
		WithSource(p.source).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", event.Type,
			"booking_id", event.BookingID,
			"error", err,
		)
		return err
	}

	p.log.Debug("Booking event published",
		"event_type", event.Type,
		"booking_id", event.BookingID,
	)
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher discards events; used when no broker is configured and in
// tests.
type NopPublisher struct{}

func (NopPublisher) PublishBookingEvent(ctx context.Context, event model.BookingEvent) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
