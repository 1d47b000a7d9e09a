package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverBadger   = "badger"

	defaultMaxDeliveryAttempts = 3
)

type (
	Tasks struct {
		PoolWatchInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware  rate limiter capacity
		RateLimiterBurst int           // middlewarerate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
		GRPCHealthPort   string // пусто - grpc health не поднимается
	}

	Log struct {
		Level string
	}

	Storage struct {
		Driver     string
		BadgerPath string // пусто - badger в памяти
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		Migrate  bool
	}

	Pricing struct {
		PerPharmacyFee decimal.Decimal
	}

	Dispatch struct {
		MaxDeliveryAttempts int
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		ConsumerGroup   string
		Topics          KafkaTopics
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	KafkaTopics struct {
		PrescriptionUploaded string
		CatalogChanged       string
		PoolAlerts           string
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Log      Log
		Storage  Storage
		Database Database
		Pricing  Pricing
		Dispatch Dispatch
		Kafka    Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	poolWatchInterval, err := osGetEnvDuration("BACKGROUND_POOL_WATCH_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	processTimeout, err := osGetEnvDuration("KAFKA_HANDLER_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	migrate, err := osGetBool("POSTGRES_MIGRATE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	perPharmacyFee, err := osGetDecimal("PRICING_PER_PHARMACY_FEE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	maxDeliveryAttempts, err := osGetInt("DISPATCH_MAX_DELIVERY_ATTEMPTS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if maxDeliveryAttempts == 0 {
		maxDeliveryAttempts = defaultMaxDeliveryAttempts
	}

	storageDriver := os.Getenv("STORAGE_DRIVER")
	if storageDriver == "" {
		storageDriver = StorageDriverPostgres
	}

	return &Config{
		Tasks: Tasks{
			PoolWatchInterval: poolWatchInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
			GRPCHealthPort:   os.Getenv("GRPC_HEALTH_PORT"),
		},
		Log: Log{
			Level: os.Getenv("LOG_LEVEL"),
		},
		Storage: Storage{
			Driver:     storageDriver,
			BadgerPath: os.Getenv("BADGER_PATH"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			Migrate:  migrate,
		},
		Pricing: Pricing{
			PerPharmacyFee: perPharmacyFee,
		},
		Dispatch: Dispatch{
			MaxDeliveryAttempts: maxDeliveryAttempts,
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Topics: KafkaTopics{
				PrescriptionUploaded: os.Getenv("KAFKA_TOPIC_PRESCRIPTION_UPLOADED"),
				CatalogChanged:       os.Getenv("KAFKA_TOPIC_CATALOG_CHANGED"),
				PoolAlerts:           os.Getenv("KAFKA_TOPIC_POOL_ALERTS"),
			},
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				ProcessTimeout: processTimeout,
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	switch cfg.Storage.Driver {
	case StorageDriverPostgres:
		if err := validateDatabase(&cfg.Database); err != nil {
			return err
		}
	case StorageDriverBadger:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDriverPostgres, StorageDriverBadger, cfg.Storage.Driver)
	}

	if cfg.Pricing.PerPharmacyFee.IsNegative() {
		return errors.New("PRICING_PER_PHARMACY_FEE must not be negative")
	}
	if cfg.Dispatch.MaxDeliveryAttempts < 1 {
		return errors.New("DISPATCH_MAX_DELIVERY_ATTEMPTS must be positive")
	}

	if cfg.Tasks.PoolWatchInterval == time.Duration(0) {
		return errors.New("BACKGROUND_POOL_WATCH_INTERVAL is required")
	}

	// без брокеров сигналы пула пишутся в лог
	if cfg.Kafka.Brokers != "" {
		if cfg.Kafka.Sarama.Version == "" {
			return errors.New("KAFKA_SARAMA_VERSION is required")
		}
		if cfg.Kafka.Topics.PoolAlerts == "" {
			return errors.New("KAFKA_TOPIC_POOL_ALERTS is required")
		}
	}

	return nil
}

func validateDatabase(cfg *Database) error {
	if cfg.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	return nil
}

// ValidateWorker дополнительные требования воркера, читающего события из kafka.
// Воркер работает отдельным процессом и видит заказы сервиса только через postgres:
// badger держит блокировку каталога, а в памяти у воркера была бы своя пустая база.
func (c *Config) ValidateWorker() error {
	if c.Storage.Driver != StorageDriverPostgres {
		return fmt.Errorf("worker requires STORAGE_DRIVER=%q, got %q", StorageDriverPostgres, c.Storage.Driver)
	}
	if c.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if c.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if c.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if c.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	if c.Kafka.Topics.PrescriptionUploaded == "" {
		return errors.New("KAFKA_TOPIC_PRESCRIPTION_UPLOADED is required")
	}
	if c.Kafka.Topics.CatalogChanged == "" {
		return errors.New("KAFKA_TOPIC_CATALOG_CHANGED is required")
	}
	if c.Kafka.Handlers.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_PROCESS_TIMEOUT is required")
	}
	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetDecimal(s string) (decimal.Decimal, error) {
	val := os.Getenv(s)
	if val == "" {
		return decimal.Zero, nil
	}

	res, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
