package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config captures runtime configuration for the API service.
type Config struct {
	HTTP      HTTPConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Kafka     KafkaConfig
	Report    ReportConfig
	Telemetry TelemetryConfig
	Service   ServiceConfig
}

type HTTPConfig struct {
	Port          int
	ShutdownGrace time.Duration
}

type StorageConfig struct {
	Backend  string
	SeedDemo bool
}

type DatabaseConfig struct {
	URL            string
	AutoMigrate    bool
	MigrationsPath string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type ReportConfig struct {
	Format   string
	Title    string
	FontPath string
}

type TelemetryConfig struct {
	LogLevel      string
	OTelEndpoint  string
	EnableTracing bool
	EnableMetrics bool
	SampleRate    float64
}

type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
}

const (
	defaultHTTPPort       = 8080
	defaultShutdownGrace  = 15 * time.Second
	defaultStorage        = StorageMemory
	defaultMigrationsPath = "migrations"
	defaultKafkaTopic     = "orders.lifecycle"
	defaultReportFormat   = "pdf"
	defaultReportTitle    = "Order List"
	defaultServiceName    = "orderdesk-api"
	defaultServiceVersion = "0.1.0"
	defaultEnvironment    = "development"
	defaultLogLevel       = "info"
	defaultOTelSampleRate = 1.0
)

// Load reads configuration from the environment, applying defaults when
// needed. Variables from the given dotenv files (".env" when none are
// given) fill in anything the environment does not already set; missing
// files are ignored.
func Load(dotenvFiles ...string) (*Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading dotenv: %w", err)
	}

	httpCfg, err := loadHTTPConfig()
	if err != nil {
		return nil, fmt.Errorf("loading HTTP config: %w", err)
	}

	storageCfg, err := loadStorageConfig()
	if err != nil {
		return nil, fmt.Errorf("loading storage config: %w", err)
	}

	telCfg, err := loadTelemetryConfig()
	if err != nil {
		return nil, fmt.Errorf("loading telemetry config: %w", err)
	}

	return &Config{
		HTTP:      httpCfg,
		Storage:   storageCfg,
		Database:  loadDatabaseConfig(),
		Kafka:     loadKafkaConfig(),
		Report:    loadReportConfig(),
		Telemetry: telCfg,
		Service:   loadServiceConfig(),
	}, nil
}

func loadHTTPConfig() (HTTPConfig, error) {
	port := defaultHTTPPort
	if value, ok := os.LookupEnv("API_HTTP_PORT"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return HTTPConfig{}, fmt.Errorf("invalid API_HTTP_PORT: %w", err)
		}
		port = parsed
	}

	grace := defaultShutdownGrace
	if value, ok := os.LookupEnv("API_SHUTDOWN_GRACE_SECONDS"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return HTTPConfig{}, fmt.Errorf("invalid API_SHUTDOWN_GRACE_SECONDS: %w", err)
		}
		grace = time.Duration(parsed) * time.Second
	}

	return HTTPConfig{
		Port:          port,
		ShutdownGrace: grace,
	}, nil
}

func loadStorageConfig() (StorageConfig, error) {
	backend := strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", defaultStorage))
	if backend != StorageMemory && backend != StoragePostgres {
		return StorageConfig{}, fmt.Errorf("invalid STORAGE_BACKEND %q: want %s or %s", backend, StorageMemory, StoragePostgres)
	}

	return StorageConfig{
		Backend:  backend,
		SeedDemo: getBoolEnv("SEED_DEMO_ORDERS", false),
	}, nil
}

func loadDatabaseConfig() DatabaseConfig {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = buildDatabaseURL()
	}

	return DatabaseConfig{
		URL:            databaseURL,
		AutoMigrate:    getBoolEnv("AUTO_MIGRATE", true),
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", defaultMigrationsPath),
	}
}

func loadKafkaConfig() KafkaConfig {
	var brokers []string
	for _, broker := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}

	return KafkaConfig{
		Brokers: brokers,
		Topic:   getEnvOrDefault("KAFKA_TOPIC", defaultKafkaTopic),
	}
}

func loadReportConfig() ReportConfig {
	return ReportConfig{
		Format:   strings.ToLower(getEnvOrDefault("REPORT_FORMAT", defaultReportFormat)),
		Title:    getEnvOrDefault("REPORT_TITLE", defaultReportTitle),
		FontPath: os.Getenv("REPORT_FONT_PATH"),
	}
}

func loadTelemetryConfig() (TelemetryConfig, error) {
	sampleRate := defaultOTelSampleRate
	if value, ok := os.LookupEnv("OTEL_SAMPLE_RATE"); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return TelemetryConfig{}, fmt.Errorf("invalid OTEL_SAMPLE_RATE: %w", err)
		}
		sampleRate = parsed
	}

	return TelemetryConfig{
		LogLevel:      getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
		OTelEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		EnableTracing: getBoolEnv("OTEL_ENABLE_TRACING", false),
		EnableMetrics: getBoolEnv("OTEL_ENABLE_METRICS", false),
		SampleRate:    sampleRate,
	}, nil
}

func loadServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:        getEnvOrDefault("API_SERVICE_NAME", defaultServiceName),
		Version:     getEnvOrDefault("SERVICE_VERSION", defaultServiceVersion),
		Environment: getEnvOrDefault("ENVIRONMENT", defaultEnvironment),
	}
}

func buildDatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&pool_max_conns=%s",
		getEnvOrDefault("DB_USER", "postgres"),
		getEnvOrDefault("DB_PASSWORD", "postgres"),
		getEnvOrDefault("DB_HOST", "localhost"),
		getEnvOrDefault("DB_PORT", "5432"),
		getEnvOrDefault("DB_NAME", "orderdesk"),
		getEnvOrDefault("DB_SSLMODE", "disable"),
		getEnvOrDefault("DB_MAX_CONNS", "10"),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return value == "true"
	}
	return defaultValue
}
