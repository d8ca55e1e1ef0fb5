// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DataDir       string `env:"GALERI_DATA_DIR" envDefault:"./data"`
	SessionSecret string `env:"GALERI_SESSION_SECRET,required"`
	ServerHost    string `env:"GALERI_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"GALERI_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"GALERI_ENV" envDefault:"development"`
	LogLevel      string `env:"GALERI_LOG_LEVEL" envDefault:"info"`

	// Gate and admin credentials (argon2id encoded hashes)
	GatePasswordHash  string `env:"GALERI_GATE_PASSWORD_HASH,required"`
	AdminPasswordHash string `env:"GALERI_ADMIN_PASSWORD_HASH,required"`

	// Remote document store configuration
	RedisURL    string `env:"GALERI_REDIS_URL"`                        // Optional Redis URL for the document store
	RedisPrefix string `env:"GALERI_REDIS_PREFIX" envDefault:"galeri:"` // Redis key prefix

	// Media configuration
	MediaBaseURL string `env:"GALERI_MEDIA_BASE_URL" envDefault:"/uploads"`

	// Catalog configuration
	USDFallbackDivisor float64 `env:"GALERI_USD_FALLBACK_DIVISOR" envDefault:"30"` // TRY-to-USD divisor for records without an explicit USD price

	// GeoIP configuration
	GeoIPDBPath     string `env:"GALERI_GEOIP_DB_PATH"`      // Path to GeoLite2-Country.mmdb file
	GeoIPCityDBPath string `env:"GALERI_GEOIP_CITY_DB_PATH"` // Path to GeoLite2-City.mmdb file

	// Access log retention in days; 0 keeps entries forever
	LogRetentionDays int `env:"GALERI_LOG_RETENTION_DAYS" envDefault:"0"`

	// CORS configuration
	AllowedOrigins []string `env:"GALERI_ALLOWED_ORIGINS" envSeparator:","`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisStore returns true if the remote document store is configured.
func (c Config) UseRedisStore() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("GALERI_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("GALERI_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("GALERI_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.USDFallbackDivisor <= 0 {
		return nil, fmt.Errorf("GALERI_USD_FALLBACK_DIVISOR must be positive, got %v", cfg.USDFallbackDivisor)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
