package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration against the requirements of its
// environment. Every problem is reported, joined into one error.
func ValidateConfig(cfg *Config) error {
	var errs []error
	fail := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.ServerPort == "" {
		fail("SERVER_PORT", "is required")
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			fail("SQLITE_PATH", "is required for the sqlite driver")
		}
		if cfg.Environment == Production {
			fail("DB_DRIVER", "sqlite is not allowed in production")
		}
	case DriverPostgres:
		for _, f := range []struct{ field, value string }{
			{"DB_HOST", cfg.DBHost},
			{"DB_PORT", cfg.DBPort},
			{"DB_NAME", cfg.DBName},
			{"DB_USER", cfg.DBUser},
		} {
			if f.value == "" {
				fail(f.field, "is required for the postgres driver")
			}
		}
	default:
		fail("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		switch cfg.Environment {
		case CI:
			fail("JWT_SECRET", "environment variable is required in CI environment")
		case Production:
			fail("jwt_secret", "secret is required")
		default:
			fail("JWT_SECRET", "is required")
		}
	}

	if cfg.PlanCacheTTL <= 0 {
		fail("PLAN_CACHE_TTL", "must be positive")
	}
	if cfg.ChatRateLimit <= 0 {
		fail("CHAT_RATE_LIMIT", "must be positive")
	}
	if cfg.ChatRateWindow <= 0 {
		fail("CHAT_RATE_WINDOW", "must be positive")
	}
	if cfg.S3Bucket != "" && cfg.ExportExpiry <= 0 {
		fail("EXPORT_URL_EXPIRY", "must be positive when exports are enabled")
	}

	return errors.Join(errs...)
}
