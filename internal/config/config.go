package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting the clinic records tools read from the environment.
type Config struct {
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	DBTimezone     string `mapstructure:"DB_TIMEZONE"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`

	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`

	OTelEnabled      bool          `mapstructure:"OTEL_ENABLED"`
	OTLPEndpoint     string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName      string        `mapstructure:"OTEL_SERVICE_NAME"`
	ServiceNamespace string        `mapstructure:"OTEL_SERVICE_NAMESPACE"`
	ServiceVersion   string        `mapstructure:"OTEL_SERVICE_VERSION"`
	Environment      string        `mapstructure:"ENVIRONMENT"`
	TracesSampler    string        `mapstructure:"OTEL_TRACES_SAMPLER"`
	MetricsInterval  time.Duration `mapstructure:"OTEL_METRICS_EXPORT_INTERVAL"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var keys = []string{
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_TIMEZONE",
	"DB_MAX_OPEN_CONNS",
	"RABBITMQ_URL",
	"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME", "OTEL_SERVICE_NAMESPACE",
	"OTEL_SERVICE_VERSION", "ENVIRONMENT", "OTEL_TRACES_SAMPLER", "OTEL_METRICS_EXPORT_INTERVAL",
	"LOG_LEVEL", "LOG_FORMAT",
}

// Load reads configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "clinic")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	// one shared handle, as the store is used from a single thread of control
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTEL_SERVICE_NAME", "clinic-records")
	v.SetDefault("OTEL_SERVICE_NAMESPACE", "wailsalutem")
	v.SetDefault("OTEL_SERVICE_VERSION", "1.0.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("OTEL_TRACES_SAMPLER", "always_on")
	v.SetDefault("OTEL_METRICS_EXPORT_INTERVAL", 30*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env is optional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings needed to open the store.
func (c *Config) Validate() error {
	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		return fmt.Errorf("missing required database settings (DB_HOST, DB_USER, DB_NAME)")
	}
	if c.DBMaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1, got %d", c.DBMaxOpenConns)
	}
	switch c.TracesSampler {
	case "always_on", "always_off", "traceidratio":
	default:
		return fmt.Errorf("OTEL_TRACES_SAMPLER must be always_on, always_off or traceidratio, got %q", c.TracesSampler)
	}
	return nil
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode, c.DBTimezone,
	)
}

// EventsEnabled reports whether domain events should be published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}
