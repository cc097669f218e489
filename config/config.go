package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type CorsConfig struct {
	AllowedOrigins []string `validate:"min=1,dive,required"`
	AllowedMethods []string `validate:"min=1,dive,required"`
	AllowedHeaders []string
	ExposedHeaders []string
	MaxAge         int `validate:"gte=0"`
}

type AppConfig struct {
	ServerPort     string `validate:"required,numeric"`
	StoreDriver    string `validate:"required,oneof=postgres memory"`
	DSN            string `validate:"required_if=StoreDriver postgres"`
	LogLevel       string `validate:"required,oneof=debug info warn error"`
	RequestTimeout time.Duration
	RateLimitRPS   float64 `validate:"gte=0"`
	RateLimitBurst int     `validate:"gte=0"`
	MetricsEnabled bool
	Cors           CorsConfig
	Logger         *zap.SugaredLogger `validate:"-"`
}

// Load reads the process configuration from the environment, seeding it
// from a .env file when one exists in the working directory.
func Load() (AppConfig, error) {
	godotenv.Load()

	cfg := AppConfig{
		ServerPort:     getEnv("PORT", "8080"),
		StoreDriver:    getEnv("STORE_DRIVER", DriverPostgres),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		MetricsEnabled: true,
		Cors: CorsConfig{
			AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders: getList("CORS_ALLOWED_HEADERS", []string{"Content-Type"}),
			ExposedHeaders: getList("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"}),
		},
	}
	if cfg.StoreDriver == DriverPostgres {
		cfg.DSN = fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=%v",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), getEnv("DB_PORT", "5432"), getEnv("DB_SSLMODE", "disable"))
		if os.Getenv("DB_HOST") == "" {
			cfg.DSN = ""
		}
	}

	var err error
	if cfg.RequestTimeout, err = time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s")); err != nil {
		return AppConfig{}, fmt.Errorf("REQUEST_TIMEOUT: %w", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "0"), 64); err != nil {
		return AppConfig{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "100")); err != nil {
		return AppConfig{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	if cfg.Cors.MaxAge, err = strconv.Atoi(getEnv("CORS_MAX_AGE", "86400")); err != nil {
		return AppConfig{}, fmt.Errorf("CORS_MAX_AGE: %w", err)
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if cfg.MetricsEnabled, err = strconv.ParseBool(v); err != nil {
			return AppConfig{}, fmt.Errorf("METRICS_ENABLED: %w", err)
		}
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return AppConfig{}, err
	}
	cfg.Logger = logger
	return cfg, nil
}

// NewLogger builds the production zap logger at the given level.
func NewLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
