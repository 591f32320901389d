package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/storefront-ai/internal/pkg/retry"
	"github.com/joho/godotenv"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr     string        `env:"SERVER_ADDR,notEmpty"`
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"3m"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	CompletionCfg CompletionConfig `envPrefix:"COMPLETION_"`
	CatalogCfg    CatalogConfig    `envPrefix:"CATALOG_"`

	// Request input limits
	InputCfg InputConfig `envPrefix:"INPUT_"`

	// Telegram chat channel, only read by the telegram-bot binary
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type CompletionConfig struct {
	HTTPClientConfig
	Provider         string               `env:"PROVIDER" envDefault:"ollama"`
	Model            string               `env:"MODEL" envDefault:"tinyllama"`
	GenerateEndpoint string               `env:"GENERATE_ENDPOINT" envDefault:"/api/generate"`
	APIKey           string               `env:"API_KEY"`
	CallTimeout      time.Duration        `env:"CALL_TIMEOUT" envDefault:"2m"`
	Retry            pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type CatalogConfig struct {
	ResultLimit      int           `env:"RESULT_LIMIT" envDefault:"20"`
	CategoryCacheTTL time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`
}

type InputConfig struct {
	MaxPromptLength  int `env:"MAX_PROMPT_LENGTH" envDefault:"8000"`
	MaxMessageLength int `env:"MAX_MESSAGE_LENGTH" envDefault:"2000"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string        `env:"BOT_TOKEN"`
	UpdateTimeout      int           `env:"UPDATE_TIMEOUT" envDefault:"60"` // seconds, long polling
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Validate checks the settings the bot needs; the HTTP server never calls it
func (c TelegramConfig) Validate() error {
	var errors []string

	if c.BotToken == "" {
		errors = append(errors, "TELEGRAM_BOT_TOKEN must not be empty")
	}

	if c.UpdateTimeout < 0 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_UPDATE_TIMEOUT must not be negative, got %d", c.UpdateTimeout))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute))
	}

	if len(errors) > 0 {
		return fmt.Errorf("telegram configuration errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"2m"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"2m"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"http://localhost:11434"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	// Validate completion backend configuration
	switch cfg.CompletionCfg.Provider {
	case ProviderOllama, ProviderOpenAI:
	default:
		errors = append(errors, fmt.Sprintf("COMPLETION_PROVIDER must be %q or %q, got %q", ProviderOllama, ProviderOpenAI, cfg.CompletionCfg.Provider))
	}

	if cfg.CompletionCfg.Model == "" {
		errors = append(errors, "COMPLETION_MODEL must not be empty")
	}

	if cfg.CompletionCfg.Retry.Attempts < 1 || cfg.CompletionCfg.Retry.Attempts > 5 {
		errors = append(errors, fmt.Sprintf("COMPLETION_RETRY_ATTEMPTS must be between 1 and 5, got %d", cfg.CompletionCfg.Retry.Attempts))
	}

	if cfg.CompletionCfg.CallTimeout <= 0 {
		errors = append(errors, "COMPLETION_CALL_TIMEOUT must be positive")
	}

	// Validate catalog configuration
	if cfg.CatalogCfg.ResultLimit < 1 || cfg.CatalogCfg.ResultLimit > 100 {
		errors = append(errors, fmt.Sprintf("CATALOG_RESULT_LIMIT must be between 1 and 100, got %d", cfg.CatalogCfg.ResultLimit))
	}

	// Validate input limits
	if cfg.InputCfg.MaxPromptLength < 1 {
		errors = append(errors, fmt.Sprintf("INPUT_MAX_PROMPT_LENGTH must be positive, got %d", cfg.InputCfg.MaxPromptLength))
	}

	if cfg.InputCfg.MaxMessageLength < 1 {
		errors = append(errors, fmt.Sprintf("INPUT_MAX_MESSAGE_LENGTH must be positive, got %d", cfg.InputCfg.MaxMessageLength))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
