package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cinehall/pkg/client"
	"cinehall/pkg/logger"
)

type Config struct {
	Port string

	StoreBackend string
	StoreDir     string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	TurnaroundBuffer time.Duration
	TicketUnitPrice  float64

	SettlementDelayMin   time.Duration
	SettlementDelayMax   time.Duration
	LivenessPollInterval time.Duration
	SettlementGraceDelay time.Duration

	AssignDelayMin time.Duration
	AssignDelayMax time.Duration
	PrepDelayMin   time.Duration
	PrepDelayMax   time.Duration
	FinishDelayMin time.Duration
	FinishDelayMax time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		StoreBackend: getEnvStr(EnvStoreBackend, DefaultStoreBackend),
		StoreDir:     getEnvStr(EnvStoreDir, DefaultStoreDir),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		KafkaBrokers: getEnvList(EnvKafkaBrokers),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		TurnaroundBuffer: getEnvDuration(EnvTurnaroundBuffer, DefaultTurnaroundBuffer),
		TicketUnitPrice:  getEnvFloat(EnvTicketUnitPrice, DefaultTicketUnitPrice),

		SettlementDelayMin:   getEnvDuration(EnvSettlementDelayMin, DefaultSettlementDelayMin),
		SettlementDelayMax:   getEnvDuration(EnvSettlementDelayMax, DefaultSettlementDelayMax),
		LivenessPollInterval: getEnvDuration(EnvLivenessPollInterval, DefaultLivenessPollInterval),
		SettlementGraceDelay: getEnvDuration(EnvSettlementGraceDelay, DefaultSettlementGraceDelay),

		AssignDelayMin: getEnvDuration(EnvAssignDelayMin, DefaultAssignDelayMin),
		AssignDelayMax: getEnvDuration(EnvAssignDelayMax, DefaultAssignDelayMax),
		PrepDelayMin:   getEnvDuration(EnvPrepDelayMin, DefaultPrepDelayMin),
		PrepDelayMax:   getEnvDuration(EnvPrepDelayMax, DefaultPrepDelayMax),
		FinishDelayMin: getEnvDuration(EnvFinishDelayMin, DefaultFinishDelayMin),
		FinishDelayMax: getEnvDuration(EnvFinishDelayMax, DefaultFinishDelayMax),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
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

	switch cfg.StoreBackend {
	case "memory", "file", "mongo":
	default:
		errs = append(errs, fmt.Sprintf("StoreBackend must be one of memory|file|mongo, got: %s", cfg.StoreBackend))
	}
	if cfg.StoreBackend == "file" && cfg.StoreDir == "" {
		errs = append(errs, "StoreDir cannot be empty when StoreBackend is file")
	}

	if cfg.StoreBackend == "mongo" {
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
	}

	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
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

	if cfg.TurnaroundBuffer < 0 {
		errs = append(errs, fmt.Sprintf("TurnaroundBuffer cannot be negative, got: %s", cfg.TurnaroundBuffer))
	}
	if cfg.TicketUnitPrice <= 0 {
		errs = append(errs, fmt.Sprintf("TicketUnitPrice must be positive, got: %.2f", cfg.TicketUnitPrice))
	}

	for _, r := range []struct {
		name     string
		min, max time.Duration
	}{
		{"SettlementDelay", cfg.SettlementDelayMin, cfg.SettlementDelayMax},
		{"AssignDelay", cfg.AssignDelayMin, cfg.AssignDelayMax},
		{"PrepDelay", cfg.PrepDelayMin, cfg.PrepDelayMax},
		{"FinishDelay", cfg.FinishDelayMin, cfg.FinishDelayMax},
	} {
		if r.min < 0 {
			errs = append(errs, fmt.Sprintf("%sMin cannot be negative, got: %s", r.name, r.min))
		}
		if r.max < r.min {
			errs = append(errs, fmt.Sprintf("%sMax (%s) must be >= %sMin (%s)", r.name, r.max, r.name, r.min))
		}
	}
	if cfg.LivenessPollInterval <= 0 {
		errs = append(errs, fmt.Sprintf("LivenessPollInterval must be positive, got: %s", cfg.LivenessPollInterval))
	}
	if cfg.SettlementGraceDelay < 0 {
		errs = append(errs, fmt.Sprintf("SettlementGraceDelay cannot be negative, got: %s", cfg.SettlementGraceDelay))
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
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"store_dir", cfg.StoreDir,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_topic", cfg.KafkaTopic,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"turnaround_buffer", cfg.TurnaroundBuffer,
		"ticket_unit_price", cfg.TicketUnitPrice,
		"settlement_delay_min", cfg.SettlementDelayMin,
		"settlement_delay_max", cfg.SettlementDelayMax,
		"liveness_poll_interval", cfg.LivenessPollInterval,
		"settlement_grace_delay", cfg.SettlementGraceDelay,
		"assign_delay_min", cfg.AssignDelayMin,
		"assign_delay_max", cfg.AssignDelayMax,
		"prep_delay_min", cfg.PrepDelayMin,
		"prep_delay_max", cfg.PrepDelayMax,
		"finish_delay_min", cfg.FinishDelayMin,
		"finish_delay_max", cfg.FinishDelayMax,
	)
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

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
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

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}
