// Package config provides centralized configuration management for the application.
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
	Backend   BackendConfig
	Dashboard DashboardConfig
	Rate      RateLimitConfig
	Security  SecurityConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// BackendConfig holds settings for the REST backend the dashboard reads from.
type BackendConfig struct {
	// BaseURL is the default backend root; the settings page can override it
	// per browser (default: http://localhost:8000)
	BaseURL string `env:"API_BASE_URL" envAlt:"BACKEND_URL" default:"http://localhost:8000"`

	// AllowedBaseURLs lists the other backend roots a browser may switch to
	// (default: none, overrides disabled)
	AllowedBaseURLs []string `env:"API_ALLOWED_BASE_URLS"`

	// Timeout bounds a single backend request (default: 10s)
	Timeout time.Duration `env:"BACKEND_TIMEOUT" default:"10s"`

	// PageLimit is the limit sent with every collection request (default: 100)
	PageLimit int `env:"BACKEND_PAGE_LIMIT" default:"100"`

	// MaxConcurrent is the number of resources fetched in parallel per page (default: 4)
	MaxConcurrent int `env:"BACKEND_MAX_CONCURRENT" default:"4"`
}

// DashboardConfig holds presentation settings.
type DashboardConfig struct {
	// RefreshInterval is how often summary cards re-poll (default: 30s)
	RefreshInterval time.Duration `env:"DASHBOARD_REFRESH_INTERVAL" default:"30s"`

	// Title is shown in the sidebar and page titles (default: Smart City)
	Title string `env:"DASHBOARD_TITLE" default:"Smart City"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the rate limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// AllowedOrigins lists origins allowed to call the JSON API (default: none)
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
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
