// Package config provides centralized configuration management for the dashboard.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Dashboard DashboardConfig
	Chart     ChartConfig
	Rate      RateLimitConfig
	Security  SecurityConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8050)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8050"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 20s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"20s"`
}

// Data source kinds.
const (
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
)

// DataConfig selects where the two tables are loaded from.
type DataConfig struct {
	// Source is "xlsx" or "postgres" (default: xlsx)
	Source string `env:"DATA_SOURCE" default:"xlsx"`

	FlowsPath       string `env:"DATA_FLOWS_PATH" default:"Migration_In_Out.xlsx"`
	FlowsSheet      string `env:"DATA_FLOWS_SHEET"`
	IndicatorsPath  string `env:"DATA_INDICATORS_PATH" default:"Migration_Indicators.xlsx"`
	IndicatorsSheet string `env:"DATA_INDICATORS_SHEET"`

	// DatabaseURL is the PostgreSQL connection string, required for the
	// postgres source. Supports both DATABASE_URL and DB_URL.
	DatabaseURL     string `env:"DATABASE_URL" envAlt:"DB_URL"`
	FlowsTable      string `env:"DATA_FLOWS_TABLE" default:"migration_flows"`
	IndicatorsTable string `env:"DATA_INDICATORS_TABLE" default:"migration_indicators"`
	MaxConns        int    `env:"DB_MAX_CONNS" default:"4"`

	// LoadTimeout bounds the startup load of both tables (default: 60s)
	LoadTimeout time.Duration `env:"DATA_LOAD_TIMEOUT" default:"60s"`
}

// DashboardConfig holds the selection defaults and display policy.
type DashboardConfig struct {
	DefaultCountry string `env:"DASHBOARD_DEFAULT_COUNTRY" default:"Afghanistan"`
	DefaultYear    int    `env:"DASHBOARD_DEFAULT_YEAR" default:"2017"`
	YearMin        int    `env:"DASHBOARD_YEAR_MIN" default:"2008"`
	YearMax        int    `env:"DASHBOARD_YEAR_MAX" default:"2017"`

	// SessionTTL is how long an idle session keeps its selection (default: 2h)
	SessionTTL time.Duration `env:"DASHBOARD_SESSION_TTL" default:"2h"`

	// DynamicAxes computes indicator y-ranges from the data instead of
	// using the fixed ranges (default: false)
	DynamicAxes bool `env:"DASHBOARD_DYNAMIC_AXES" default:"false"`

	// PanelsFile is an optional TOML file overriding panel titles and ranges
	PanelsFile string `env:"DASHBOARD_PANELS_FILE" default:"panels.toml"`
}

// ChartConfig holds server-side chart rendering settings.
type ChartConfig struct {
	Width  int `env:"CHART_WIDTH" default:"640"`
	Height int `env:"CHART_HEIGHT" default:"420"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// SecureCookies sets the Secure flag on the session cookie (default: false)
	SecureCookies bool `env:"SECURITY_SECURE_COOKIES" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
