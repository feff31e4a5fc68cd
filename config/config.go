package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendR2       = "r2"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort        int      `yaml:"server_port"`
	LogLevel          string   `yaml:"log_level"`
	StoreBackend      string   `yaml:"store_backend"`
	StoreKeyPrefix    string   `yaml:"store_key_prefix"`
	DatabaseURL       string   `yaml:"database_url"`
	RedisURL          string   `yaml:"redis_url"`
	R2AccountID       string   `yaml:"r2_account_id"`
	R2AccessKeyID     string   `yaml:"r2_access_key_id"`
	R2SecretAccessKey string   `yaml:"r2_secret_access_key"`
	R2BucketName      string   `yaml:"r2_bucket_name"`
	JWTSecretKey      string   `yaml:"jwt_secret_key"`
	DefaultPlayerName string   `yaml:"default_player_name"`
	WinningScore      int      `yaml:"winning_score"`
	AllowedOrigins    []string `yaml:"allowed_origins"`
}

func defaults() Config {
	return Config{
		ServerPort:        8080,
		LogLevel:          "info",
		StoreBackend:      BackendMemory,
		DefaultPlayerName: "Player 1",
		WinningScore:      5,
		AllowedOrigins:    []string{"*"},
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем YAML-файл из
// CONFIG_FILE (если задан), затем переменные окружения.
func Load() (*Config, error) {
	// .env is optional, a missing file is not an error.
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s environment variable: %w", key, err)
		}
		*dst = n
		return nil
	}

	if err := setInt("SERVER_PORT", &cfg.ServerPort); err != nil {
		return err
	}
	if err := setInt("WINNING_SCORE", &cfg.WinningScore); err != nil {
		return err
	}
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("STORE_BACKEND", &cfg.StoreBackend)
	setString("STORE_KEY_PREFIX", &cfg.StoreKeyPrefix)
	setString("DATABASE_URL", &cfg.DatabaseURL)
	setString("REDIS_URL", &cfg.RedisURL)
	setString("R2_ACCOUNT_ID", &cfg.R2AccountID)
	setString("R2_ACCESS_KEY_ID", &cfg.R2AccessKeyID)
	setString("R2_SECRET_ACCESS_KEY", &cfg.R2SecretAccessKey)
	setString("R2_BUCKET_NAME", &cfg.R2BucketName)
	setString("JWT_SECRET_KEY", &cfg.JWTSecretKey)
	setString("DEFAULT_PLAYER_NAME", &cfg.DefaultPlayerName)

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}
	return nil
}

// Validate checks ranges and that the selected store backend is fully configured.
func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if c.WinningScore <= 0 {
		return fmt.Errorf("WINNING_SCORE must be positive, got %d", c.WinningScore)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL environment variable is not set")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	case BackendR2:
		if c.R2AccountID == "" || c.R2AccessKeyID == "" || c.R2SecretAccessKey == "" || c.R2BucketName == "" {
			return fmt.Errorf("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME must be set for the r2 backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
