package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"bonzai/pkg/client"
	"bonzai/pkg/logger"
	"bonzai/pkg/model"
)

// Policy holds the tunable business tables: nightly rates, bed capacity and
// the cancellation window. Injected into the pricing calculator and the
// booking validator so nothing hard-codes them inline.
type Policy struct {
	RateSingle int
	RateDouble int
	RateSuite  int

	BedsSingle int
	BedsDouble int
	BedsSuite  int

	CancellationCutoffDays int
}

func (p Policy) Rate(t model.RoomType) int {
	switch t {
	case model.Single:
		return p.RateSingle
	case model.Double:
		return p.RateDouble
	case model.Suite:
		return p.RateSuite
	}
	return 0
}

func (p Policy) Beds(t model.RoomType) int {
	switch t {
	case model.Single:
		return p.BedsSingle
	case model.Double:
		return p.BedsDouble
	case model.Suite:
		return p.BedsSuite
	}
	return 0
}

// TotalBeds is the bed capacity of a requested room mix.
func (p Policy) TotalBeds(c model.RoomCounts) int {
	total := 0
	for _, t := range model.RoomTypes {
		total += c.Of(t) * p.Beds(t)
	}
	return total
}

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Policy Policy

	ReconcileInterval time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Policy: Policy{
			RateSingle: getEnvNum(EnvRateSingle, DefaultRateSingle),
			RateDouble: getEnvNum(EnvRateDouble, DefaultRateDouble),
			RateSuite:  getEnvNum(EnvRateSuite, DefaultRateSuite),

			BedsSingle: getEnvNum(EnvBedsSingle, DefaultBedsSingle),
			BedsDouble: getEnvNum(EnvBedsDouble, DefaultBedsDouble),
			BedsSuite:  getEnvNum(EnvBedsSuite, DefaultBedsSuite),

			CancellationCutoffDays: getEnvNum(EnvCancellationCutoffDays, DefaultCancellationCutoffDays),
		},

		ReconcileInterval: getEnvDuration(EnvReconcileInterval, DefaultReconcileInterval),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, logger.INFO),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.New(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errs = append(errs, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errs = append(errs, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errs = append(errs, "MongoDatabaseName cannot be empty")
	}

	if cfg.MongoConnTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errs = append(errs, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}
	if cfg.ReconcileInterval <= 0 {
		errs = append(errs, fmt.Sprintf("ReconcileInterval must be positive, got: %s", cfg.ReconcileInterval))
	}

	for _, rate := range []struct {
		name  string
		value int
	}{
		{"RateSingle", cfg.Policy.RateSingle},
		{"RateDouble", cfg.Policy.RateDouble},
		{"RateSuite", cfg.Policy.RateSuite},
	} {
		if rate.value <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive, got: %d", rate.name, rate.value))
		}
	}

	for _, beds := range []struct {
		name  string
		value int
	}{
		{"BedsSingle", cfg.Policy.BedsSingle},
		{"BedsDouble", cfg.Policy.BedsDouble},
		{"BedsSuite", cfg.Policy.BedsSuite},
	} {
		if beds.value <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive, got: %d", beds.name, beds.value))
		}
	}

	if cfg.Policy.CancellationCutoffDays < 0 {
		errs = append(errs, fmt.Sprintf("CancellationCutoffDays cannot be negative, got: %d", cfg.Policy.CancellationCutoffDays))
	}

	if len(errs) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, e := range errs {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"rate_single", cfg.Policy.RateSingle,
		"rate_double", cfg.Policy.RateDouble,
		"rate_suite", cfg.Policy.RateSuite,
		"beds_single", cfg.Policy.BedsSingle,
		"beds_double", cfg.Policy.BedsDouble,
		"beds_suite", cfg.Policy.BedsSuite,
		"cancellation_cutoff_days", cfg.Policy.CancellationCutoffDays,
		"reconcile_interval", cfg.ReconcileInterval,
	)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
