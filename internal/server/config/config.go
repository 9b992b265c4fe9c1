// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"
)

// ConfigEnv names the environment variable consulted for the JSON config
// path when neither -c nor -config is given.
const ConfigEnv = "AYCODE_CONFIG"

// Config holds runtime settings for the AY-Code server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDriver: "pgx" (PostgreSQL) or "sqlite".
//   - DatabaseDSN: connection string for the selected driver.
//   - SecretKey: HMAC secret for signing session tokens (HS256). An empty
//     key makes the server generate a random one at startup.
//   - TokenValidityDuration: session token lifetime.
//   - RequestTimeout: upper bound for each store lookup and hashing step.
//   - BcryptCost: work factor for new password hashes.
//   - CookieSecure: sets the Secure attribute on the session cookie.
//   - AdminEmail: an already registered user promoted to admin at startup.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDriver        string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	RequestTimeout        time.Duration
	BcryptCost            int
	CookieSecure          bool
	ReadHeaderTimeout     time.Duration
	ShutdownTimeout       time.Duration
	LogLevel              string
	AdminEmail            string
}

// LoadDefaults populates Config with development defaults: a local SQLite
// file and no signing key.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:aycode.db?_pragma=busy_timeout(5000)"
	c.SecretKey = ""
	c.TokenValidityDuration = time.Hour
	c.RequestTimeout = 5 * time.Second
	c.BcryptCost = 10
	c.CookieSecure = false
	c.ReadHeaderTimeout = 5 * time.Second
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.AdminEmail = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
