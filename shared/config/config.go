package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"password"`
	DBName   string `env:"DB_NAME" envDefault:"hr_admin_db"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
}

// GetDSN returns the database connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Host      string        `env:"REDIS_HOST" envDefault:"localhost"`
	Port      string        `env:"REDIS_PORT" envDefault:"6379"`
	Password  string        `env:"REDIS_PASSWORD"`
	OptionTTL time.Duration `env:"LOCATION_OPTIONS_TTL" envDefault:"10m"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// BreakerConfig tunes one circuit breaker. Each client reads it under its own prefix.
type BreakerConfig struct {
	MaxFailures      int           `env:"BREAKER_MAX_FAILURES" envDefault:"5"`
	ResetTimeout     time.Duration `env:"BREAKER_RESET_TIMEOUT" envDefault:"30s"`
	HalfOpenRequests int           `env:"BREAKER_HALF_OPEN_REQUESTS" envDefault:"1"`
}

type KafkaConfig struct {
	Broker  string        `env:"KAFKA_BROKER"`
	Topic   string        `env:"KAFKA_EMPLOYEE_TOPIC" envDefault:"hr.employee.lifecycle.v1"`
	GroupID string        `env:"KAFKA_GROUP_ID" envDefault:"hr-notifier"`
	Workers int           `env:"KAFKA_WORKERS" envDefault:"4"`
	Breaker BreakerConfig `envPrefix:"KAFKA_"`
}

// DefaultJWTSecret is the development secret; production refuses to start with it
const DefaultJWTSecret = "change-me"

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"change-me"`
	TokenTTL       time.Duration `env:"JWT_TTL" envDefault:"12h"`
	LoginRateLimit string        `env:"LOGIN_RATE_LIMIT" envDefault:"10-M"`
}

type ExportConfig struct {
	S3Bucket  string `env:"EXPORT_S3_BUCKET"`
	S3Prefix  string `env:"EXPORT_S3_PREFIX" envDefault:"exports/"`
	AWSRegion string `env:"AWS_REGION" envDefault:"us-east-1"`
}

type NotifierConfig struct {
	WebhookURL    string        `env:"NOTIFY_WEBHOOK_URL" envDefault:"http://localhost:9000/hooks/hr"`
	MaxRetries    int           `env:"NOTIFY_MAX_RETRIES" envDefault:"8"`
	BatchSize     int           `env:"NOTIFY_BATCH_SIZE" envDefault:"100"`
	CheckInterval time.Duration `env:"NOTIFY_CHECK_INTERVAL" envDefault:"30s"`
	Timeout       time.Duration `env:"NOTIFY_WEBHOOK_TIMEOUT" envDefault:"10s"`
	Breaker       BreakerConfig `envPrefix:"NOTIFY_"`
}

type GatewayConfig struct {
	Port        string `env:"API_GATEWAY_PORT" envDefault:"8000"`
	AdminURL    string `env:"ADMIN_SERVICE_URL" envDefault:"http://localhost:8080"`
	NotifierURL string `env:"NOTIFIER_SERVICE_URL" envDefault:"http://localhost:8085"`
	RateLimit   string `env:"GATEWAY_RATE_LIMIT" envDefault:"300-M"`
}

// Config is the full configuration shared by every service binary.
type Config struct {
	Environment    string   `env:"APP_ENV" envDefault:"development"`
	Port           string   `env:"ADMIN_SERVICE_PORT" envDefault:"8080"`
	NotifierPort   string   `env:"NOTIFIER_SERVICE_PORT" envDefault:"8085"`
	TimeZone       string   `env:"APP_TIMEZONE" envDefault:"UTC"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Export   ExportConfig
	Notifier NotifierConfig
	Gateway  GatewayConfig
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location resolves the configured time zone, used for tab ranges and date filters.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads .env (when present) and parses the environment into a Config.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	} else {
		logrus.Warn("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that are only acceptable outside production
func (c *Config) Validate() error {
	if c.IsProduction() && (c.Auth.JWTSecret == "" || c.Auth.JWTSecret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value in production")
	}
	return nil
}

// ConfigureLogger applies the formatter and level used by all services.
func ConfigureLogger(cfg *Config) *logrus.Logger {
	logger := logrus.StandardLogger()
	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
