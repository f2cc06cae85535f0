package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	kafka_config "bonzai/pkg/kafka/config"

	"github.com/segmentio/kafka-go"
)

// Consumer wraps a kafka-go reader in a consumer group and feeds messages to
// a handler. Transient handler failures are retried up to the configured
// limit; permanent failures are committed and skipped.
type Consumer struct {
	reader     *kafka.Reader
	maxRetries int
	closed     bool
	mu         sync.RWMutex
}

func NewConsumer(cfg *kafka_config.Config, topic string) (*Consumer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if cfg.ConsumerGroupID == "" {
		return nil, fmt.Errorf("consumer group ID cannot be empty")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.ConsumerGroupID,
		Topic:       topic,
		MinBytes:    cfg.ConsumerMinBytes,
		MaxBytes:    cfg.ConsumerMaxBytes,
		MaxWait:     cfg.ConsumerMaxWait,
		StartOffset: cfg.ConsumerStartOffset,
	})

	return &Consumer{
		reader:     reader,
		maxRetries: cfg.ConsumerMaxRetries,
	}, nil
}

// Run consumes messages until the context is cancelled or the consumer is
// closed. Blocks; run it from a dedicated goroutine or main.
func (c *Consumer) Run(ctx context.Context, handler MessageHandler) error {
	for {
		c.mu.RLock()
		if c.closed {
			c.mu.RUnlock()
			return ErrConsumerClosed
		}
		c.mu.RUnlock()

		kafkaMsg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		msg := fromKafkaMessage(kafkaMsg)

		retries := 0
		for {
			err = handler(ctx, msg)
			if err == nil {
				break
			}
			if !ShouldRetry(err, retries, c.maxRetries) {
				break
			}
			retries++
		}
	}
}

// Close stops the consumer and releases the underlying reader.
func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.reader.Close()
}

func fromKafkaMessage(kafkaMsg kafka.Message) Message {
	headers := make(map[string]string, len(kafkaMsg.Headers))
	for _, h := range kafkaMsg.Headers {
		headers[h.Key] = string(h.Value)
	}

	return Message{
		Key:       string(kafkaMsg.Key),
		Value:     kafkaMsg.Value,
		Headers:   headers,
		Topic:     kafkaMsg.Topic,
		Partition: kafkaMsg.Partition,
		Offset:    kafkaMsg.Offset,
		Timestamp: kafkaMsg.Time,
	}
}
