package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false

	DefaultConsumerGroupID     = "bonzai-reconciler"
	DefaultConsumerStartOffset = int64(-2) // oldest
	DefaultConsumerMinBytes    = 1
	DefaultConsumerMaxBytes    = 10 * 1024 * 1024
	DefaultConsumerMaxWait     = 500 * time.Millisecond
	DefaultConsumerMaxRetries  = 3
)
