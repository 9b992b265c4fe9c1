package config

import (
	"os"
	"time"
)

// ConfigEnv names the environment variable consulted for the JSON config
// path when --config is not given.
const ConfigEnv = "AYCODE_CLIENT_CONFIG"

// Config holds runtime settings for the AY-Code CLI.
//
// Fields:
//   - ServerURL: base URL of the API ("http://host:port").
//   - RequestTimeout: per-request HTTP timeout.
//   - CredentialsPath: session token file; empty means ~/.aycode/config.json.
type Config struct {
	ServerURL       string
	RequestTimeout  time.Duration
	CredentialsPath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.CredentialsPath = ""
}

// LoadConfig applies defaults and overlays the JSON file at path, or at
// $AYCODE_CLIENT_CONFIG when path is empty. Command-line flags are applied
// afterwards by the CLI.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
