package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSecretsDir    = "/run/secrets"
	defaultPlanCacheTTL  = 24 * time.Hour
	defaultChatRateLimit = 30
	defaultRateWindow    = time.Minute
	defaultExportExpiry  = 15 * time.Minute
	defaultCORSOrigins   = "http://localhost:5173,http://frontend:5173"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration. RedisURL wins over host/port when both are set.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	JWTSecret string

	// Planner configuration
	CatalogPath  string
	PlanCacheTTL time.Duration

	// Chat turns allowed per user per window
	ChatRateLimit  int
	ChatRateWindow time.Duration

	// Plan export. An empty bucket disables exports.
	S3Bucket     string
	AWSRegion    string
	ExportExpiry time.Duration
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether a Redis server is configured. Without one the
// plan cache and the chat rate limit are disabled.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// ExportEnabled reports whether plan exports to S3 are configured
func (c *Config) ExportEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	switch env {
	case CI, Test:
		loadEnvConfig(cfg)
	case Development:
		// a missing .env is fine, the process environment still applies
		_ = godotenv.Load()
		loadEnvConfig(cfg)
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := loadTuning(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig reads every value, secrets included, from the process environment
func loadEnvConfig(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.DBDriver = getEnv("DB_DRIVER", DriverSQLite)
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnv("DB_NAME", "nutrichat")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "nutrichat.db")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
}

// loadProdConfig reads connection details from the environment and
// credentials from Docker secrets only
func loadProdConfig(cfg *Config) error {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "require")
	cfg.SQLitePath = os.Getenv("SQLITE_PATH")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")

	var err error
	if cfg.DBUser, err = readSecret("db_user"); err != nil {
		return err
	}
	if cfg.DBPassword, err = readSecret("db_password"); err != nil {
		return err
	}
	if cfg.JWTSecret, err = readSecret("jwt_secret"); err != nil {
		return err
	}
	// redis is optional in production, so are its secrets
	cfg.RedisPassword, _ = readSecret("redis_password")
	cfg.RedisURL, _ = readSecret("redis_url")
	return nil
}

// loadTuning reads the non-secret knobs shared by every environment
func loadTuning(cfg *Config) error {
	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return err
	}
	if cfg.PlanCacheTTL, err = getDuration("PLAN_CACHE_TTL", defaultPlanCacheTTL); err != nil {
		return err
	}
	if cfg.ChatRateLimit, err = getInt("CHAT_RATE_LIMIT", defaultChatRateLimit); err != nil {
		return err
	}
	if cfg.ChatRateWindow, err = getDuration("CHAT_RATE_WINDOW", defaultRateWindow); err != nil {
		return err
	}
	if cfg.ExportExpiry, err = getDuration("EXPORT_URL_EXPIRY", defaultExportExpiry); err != nil {
		return err
	}
	cfg.CatalogPath = os.Getenv("CATALOG_PATH")
	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")
	cfg.CORSOrigins = getList("CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
	return nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) (string, error) {
	secretsDir := getEnv("SECRETS_DIR", defaultSecretsDir)
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getList splits a comma separated value, dropping empty entries
func getList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
