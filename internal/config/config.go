package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ReorderMode selects how a featured-books reorder is written back.
type ReorderMode string

const (
	ReorderModeConcurrent    ReorderMode = "concurrent"    // One update per row, issued concurrently (default)
	ReorderModeTransactional ReorderMode = "transactional" // All rows rewritten in a single transaction
)

type (
	Config struct {
		HTTP
		Global
		Log
		Database
		UI
		Auth
		Featured
		Audit
		Covers
		ReadOnly
		Storefront
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Log struct {
		Level  string // trace, debug, info, warn, error
		Format string // json or console
	}
	Database struct {
		Driver   string // sqlite or postgres
		Path     string // SQLite file path
		DSN      string // Postgres connection string
		LogLevel string // silent, error, warn, info
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	Auth struct {
		SessionSecret     string
		SessionLifetime   time.Duration
		BcryptCost        int
		MinPasswordLength int
		SecureCookies     bool // Set to false for local dev without HTTPS

		// Allows "Create first admin account" from login mode once an admin exists
		OpenSignup bool

		MaxLoginAttempts int           // Max failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // Time window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // How long to lock out (default: 30m)
	}
	Featured struct {
		ReorderMode        ReorderMode
		ReorderConcurrency int
		CheckEnabled       bool
		CheckSchedule      string // Cron format: "*/30 * * * *"
	}
	Audit struct {
		Retention         time.Duration // Events older than this are pruned; 0 keeps everything
		RetentionSchedule string        // Cron format: "0 3 * * *"
	}
	Covers struct {
		Dir string
	}
	ReadOnly struct {
		Enabled bool
	}
	Storefront struct {
		DefaultLanguage string
	}
)

func NewConfig() *Config {
	// A missing .env is fine, the environment is authoritative.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	// Auth defaults
	v.SetDefault("auth_session_secret", "")       // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h")  // 24 hours
	v.SetDefault("auth_bcrypt_cost", 12)          // bcrypt cost factor
	v.SetDefault("auth_min_password_length", 8)   // Minimum password length
	v.SetDefault("auth_secure_cookies", true)     // HTTPS-only cookies
	v.SetDefault("auth_open_signup", false)       // Signup only while no admin exists
	v.SetDefault("auth_max_login_attempts", 5)    // Max failed attempts
	v.SetDefault("auth_rate_limit_window", "15m") // Window for counting attempts
	v.SetDefault("auth_lockout_duration", "30m")  // Lockout duration

	// Featured books defaults
	v.SetDefault("featured_reorder_mode", string(ReorderModeConcurrent))
	v.SetDefault("featured_reorder_concurrency", 8)
	v.SetDefault("featured_check_enabled", false)
	v.SetDefault("featured_check_schedule", "*/30 * * * *")

	// Audit retention defaults
	v.SetDefault("audit_retention", "2160h") // 90 days
	v.SetDefault("audit_retention_schedule", "0 3 * * *")

	v.SetDefault("covers_dir", "./covers")
	v.SetDefault("read_only_mode", false)
	v.SetDefault("default_language", "en")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Database: Database{
			Driver:   v.GetString("DATABASE_DRIVER"),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Auth: Auth{
			SessionSecret:     v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime:   v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:        v.GetInt("AUTH_BCRYPT_COST"),
			MinPasswordLength: v.GetInt("AUTH_MIN_PASSWORD_LENGTH"),
			SecureCookies:     v.GetBool("AUTH_SECURE_COOKIES"),
			OpenSignup:        v.GetBool("AUTH_OPEN_SIGNUP"),
			MaxLoginAttempts:  v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:   v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:   v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Featured: Featured{
			ReorderMode:        ReorderMode(v.GetString("FEATURED_REORDER_MODE")),
			ReorderConcurrency: v.GetInt("FEATURED_REORDER_CONCURRENCY"),
			CheckEnabled:       v.GetBool("FEATURED_CHECK_ENABLED"),
			CheckSchedule:      v.GetString("FEATURED_CHECK_SCHEDULE"),
		},
		Audit: Audit{
			Retention:         v.GetDuration("AUDIT_RETENTION"),
			RetentionSchedule: v.GetString("AUDIT_RETENTION_SCHEDULE"),
		},
		Covers: Covers{
			Dir: v.GetString("COVERS_DIR"),
		},
		ReadOnly: ReadOnly{
			Enabled: v.GetBool("READ_ONLY_MODE"),
		},
		Storefront: Storefront{
			DefaultLanguage: v.GetString("DEFAULT_LANGUAGE"),
		},
	}
}
