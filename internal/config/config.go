package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	QValue   QValueConfig
	Bandit   BanditConfig
	Session  SessionConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	BodyLimit          int
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	// RepliesFile optionally overrides the authored candidate replies.
	RepliesFile string
}

type DatabaseConfig struct {
	Connection string
	Debug      bool
}

// Q-value store drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverGorm   = "gorm"
	DriverRedis  = "redis"
)

// Flush modes.
const (
	FlushSync  = "sync"
	FlushAsync = "async"
)

type QValueConfig struct {
	Driver     string
	FilePath   string
	SQLitePath string
	RedisKey   string
	FlushMode  string
}

type BanditConfig struct {
	Epsilon      float64
	LearningRate float64
}

type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Load reads the configuration from the environment and an optional .env
// file. Out-of-range learning parameters or an unknown driver are errors.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BodyLimit:          getEnvAsInt("APP_BODY_LIMIT", 64*1024),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			RepliesFile:        getEnv("REPLIES_FILE", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Debug:      getEnvAsBool("DB_DEBUG", false),
		},
		QValue: QValueConfig{
			Driver:     getEnv("QVALUE_STORE_DRIVER", DriverFile),
			FilePath:   getEnv("QVALUE_FILE_PATH", "q_values.json"),
			SQLitePath: getEnv("QVALUE_SQLITE_PATH", "q_values.db"),
			RedisKey:   getEnv("QVALUE_REDIS_KEY", "mindcare:q_values"),
			FlushMode:  getEnv("QVALUE_FLUSH_MODE", FlushSync),
		},
		Bandit: BanditConfig{
			Epsilon:      getEnvAsFloat("BANDIT_EPSILON", 0.1),
			LearningRate: getEnvAsFloat("BANDIT_LEARNING_RATE", 0.1),
		},
		Session: SessionConfig{
			TTL:             getEnvAsDuration("SESSION_TTL", time.Hour),
			CleanupInterval: getEnvAsDuration("SESSION_CLEANUP_INTERVAL", 10*time.Minute),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Bandit.Epsilon < 0 || c.Bandit.Epsilon > 1 {
		return fmt.Errorf("config: BANDIT_EPSILON must be in [0,1], got %v", c.Bandit.Epsilon)
	}
	if c.Bandit.LearningRate <= 0 || c.Bandit.LearningRate > 1 {
		return fmt.Errorf("config: BANDIT_LEARNING_RATE must be in (0,1], got %v", c.Bandit.LearningRate)
	}

	switch c.QValue.Driver {
	case DriverFile, DriverSQLite, DriverRedis:
	case DriverGorm:
		if c.Database.Connection == "" {
			return fmt.Errorf("config: DB_CONNECTION_STRING is required for the %s driver", DriverGorm)
		}
	default:
		return fmt.Errorf("config: unknown QVALUE_STORE_DRIVER %q", c.QValue.Driver)
	}

	switch c.QValue.FlushMode {
	case FlushSync, FlushAsync:
	default:
		return fmt.Errorf("config: unknown QVALUE_FLUSH_MODE %q", c.QValue.FlushMode)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
