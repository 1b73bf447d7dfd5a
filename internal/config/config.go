// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Remote marketplace backend. Every list/detail/action call goes here.
	BackendBaseURL string `env:"VADMIN_BACKEND_URL,required"`

	DBPath        string `env:"VADMIN_DB_PATH" envDefault:"./data/admin.db"`
	SessionSecret string `env:"VADMIN_SESSION_SECRET,required"`
	ServerHost    string `env:"VADMIN_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"VADMIN_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"VADMIN_ENV" envDefault:"development"`
	LogLevel      string `env:"VADMIN_LOG_LEVEL" envDefault:"info"`

	// Cache configuration (degraded-mode snapshots and notification polling)
	RedisURL     string `env:"VADMIN_REDIS_URL"`                        // Optional Redis URL for distributed caching
	CachePrefix  string `env:"VADMIN_CACHE_PREFIX" envDefault:"vadmin:"` // Redis key prefix
	CacheTTL     int    `env:"VADMIN_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"VADMIN_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Notification polling schedule (cron expression)
	NotifyPollSpec string `env:"VADMIN_NOTIFY_POLL" envDefault:"*/2 * * * *"`

	// Upload limits for banner/promotion creatives
	MaxUploadBytes int64 `env:"VADMIN_MAX_UPLOAD_BYTES" envDefault:"10485760"` // 10 MiB
	MaxImageWidth  int   `env:"VADMIN_MAX_IMAGE_WIDTH" envDefault:"2560"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	u, err := url.Parse(cfg.BackendBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("VADMIN_BACKEND_URL must be an absolute URL, got %q", cfg.BackendBaseURL)
	}
	cfg.BackendBaseURL = strings.TrimRight(cfg.BackendBaseURL, "/")

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("VADMIN_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("VADMIN_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	return cfg, nil
}
