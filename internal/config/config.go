package config

import (
	"time"

	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"   // Single file database (default)
	DatabaseDriverPostgres DatabaseDriver = "postgres" // PostgreSQL via DATABASE_DSN
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Security
		Sessions
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		ReadOnly                 bool // Reject every non-GET request
	}
	Database struct {
		Driver   DatabaseDriver
		Path     string // SQLite file path
		DSN      string // PostgreSQL connection string
		LogLevel string // silent, error, warn, info
	}
	UI struct {
		TemplatesPath string // Empty means use the embedded templates
		StaticPath    string
	}
	Security struct {
		CSRFSecret    string // CSRF protection is enabled when set
		SecureCookies bool   // Set to false for local dev without HTTPS
	}
	Sessions struct {
		Enabled  bool
		Lifetime time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("read_only", false)

	v.SetDefault("database_driver", string(DatabaseDriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "./static")

	v.SetDefault("csrf_secret", "")
	v.SetDefault("secure_cookies", true) // HTTPS-only cookies

	v.SetDefault("sessions_enabled", true)
	v.SetDefault("session_lifetime", "24h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			ReadOnly:                 v.GetBool("READ_ONLY"),
		},
		Database: Database{
			Driver:   DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Security: Security{
			CSRFSecret:    v.GetString("CSRF_SECRET"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		Sessions: Sessions{
			Enabled:  v.GetBool("SESSIONS_ENABLED"),
			Lifetime: v.GetDuration("SESSION_LIFETIME"),
		},
	}
}
