package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvRateSingle = "RATE_SINGLE"
	EnvRateDouble = "RATE_DOUBLE"
	EnvRateSuite  = "RATE_SUITE"

	EnvBedsSingle = "BEDS_SINGLE"
	EnvBedsDouble = "BEDS_DOUBLE"
	EnvBedsSuite  = "BEDS_SUITE"

	EnvCancellationCutoffDays = "CANCELLATION_CUTOFF_DAYS"

	EnvReconcileInterval = "RECONCILE_INTERVAL"
)
