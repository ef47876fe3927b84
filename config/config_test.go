package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	setEnv(t, map[string]string{
		"CI":              "",
		"ENV":             "test",
		"DB_DRIVER":       "postgres",
		"DB_HOST":         "db",
		"DB_PORT":         "5433",
		"DB_USER":         "postgres",
		"DB_PASSWORD":     "postgres",
		"DB_NAME":         "nutrichat",
		"DB_SSL_MODE":     "disable",
		"JWT_SECRET":      "test-secret",
		"REDIS_URL":       "redis://localhost:6379/1",
		"PLAN_CACHE_TTL":  "2h",
		"CHAT_RATE_LIMIT": "5",
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "nutrichat", cfg.DBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, 2*time.Hour, cfg.PlanCacheTTL)
	assert.Equal(t, 5, cfg.ChatRateLimit)
	assert.Equal(t, time.Minute, cfg.ChatRateWindow)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"CI":         "",
		"ENV":        "test",
		"DB_DRIVER":  "",
		"JWT_SECRET": "secret",
	})
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "nutrichat.db", cfg.SQLitePath)
	assert.Equal(t, 24*time.Hour, cfg.PlanCacheTTL)
	assert.Equal(t, 30, cfg.ChatRateLimit)
	assert.Empty(t, cfg.S3Bucket)
	assert.Equal(t, []string{"http://localhost:5173", "http://frontend:5173"}, cfg.CORSOrigins)
}

func TestLoadConfigCORSOrigins(t *testing.T) {
	setEnv(t, map[string]string{
		"CI":                   "",
		"ENV":                  "test",
		"JWT_SECRET":           "secret",
		"CORS_ALLOWED_ORIGINS": " https://app.example.com, ,https://admin.example.com",
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	setEnv(t, map[string]string{
		"CI":             "",
		"ENV":            "test",
		"JWT_SECRET":     "secret",
		"PLAN_CACHE_TTL": "tomorrow",
	})

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "PLAN_CACHE_TTL")
}

func TestLoadProdConfigFromSecrets(t *testing.T) {
	dir := t.TempDir()
	for name, value := range map[string]string{
		"db_user":     "app\n",
		"db_password": "hunter2",
		"jwt_secret":  " prod-secret ",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o600))
	}
	setEnv(t, map[string]string{
		"CI":          "",
		"ENV":         "production",
		"SECRETS_DIR": dir,
		"DB_HOST":     "db.internal",
		"DB_NAME":     "nutrichat",
		// must be ignored in production
		"JWT_SECRET": "from-env",
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "app", cfg.DBUser)
	assert.Equal(t, "hunter2", cfg.DBPassword)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadProdConfigMissingSecret(t *testing.T) {
	setEnv(t, map[string]string{
		"CI":          "",
		"ENV":         "production",
		"SECRETS_DIR": t.TempDir(),
	})

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "db_user")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment:    Development,
			ServerPort:     "8080",
			DBDriver:       DriverSQLite,
			SQLitePath:     ":memory:",
			JWTSecret:      "secret",
			PlanCacheTTL:   time.Hour,
			ChatRateLimit:  10,
			ChatRateWindow: time.Minute,
		}
	}
	require.NoError(t, ValidateConfig(valid()))

	cfg := valid()
	cfg.Environment = Production
	assert.ErrorContains(t, ValidateConfig(cfg), "sqlite is not allowed in production")

	cfg = valid()
	cfg.DBDriver = DriverPostgres
	err := ValidateConfig(cfg)
	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "DB_HOST", vErr.Field)
	assert.ErrorContains(t, err, "DB_USER")

	cfg = valid()
	cfg.DBDriver = "mysql"
	cfg.JWTSecret = ""
	cfg.ChatRateLimit = 0
	err = ValidateConfig(cfg)
	assert.ErrorContains(t, err, "unsupported driver")
	assert.ErrorContains(t, err, "JWT_SECRET")
	assert.ErrorContains(t, err, "CHAT_RATE_LIMIT")

	cfg = valid()
	cfg.S3Bucket = "exports"
	assert.ErrorContains(t, ValidateConfig(cfg), "EXPORT_URL_EXPIRY")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("ENV", "production")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", " Prod ")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "staging")
	assert.Equal(t, Development, GetEnvironment())
}

func TestGinMode(t *testing.T) {
	assert.Equal(t, gin.ReleaseMode, Production.GinMode())
	assert.Equal(t, gin.TestMode, CI.GinMode())
	assert.Equal(t, gin.TestMode, Test.GinMode())
	assert.Equal(t, gin.DebugMode, Development.GinMode())
}
