package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "bonzai"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Nightly rates in currency-agnostic units.
	DefaultRateSingle = 500
	DefaultRateDouble = 1000
	DefaultRateSuite  = 1500

	// Bed capacity per room type. Suites sleep two.
	DefaultBedsSingle = 1
	DefaultBedsDouble = 2
	DefaultBedsSuite  = 2

	// Cancellation is rejected when check-in is this many days away or fewer.
	DefaultCancellationCutoffDays = 2

	DefaultReconcileInterval = 5 * time.Minute
)
