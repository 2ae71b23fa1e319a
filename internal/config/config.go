// Package config resolves the gauge configuration from environment
// variables. A .env file in the working directory is honored for local
// development; in a cluster the variables are injected directly.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures everything gauge needs to reach the rear-diff API.
type Config struct {
	Host      string
	Port      string
	Prefix    string
	Timeout   time.Duration
	LogPath   string
	PollEvery time.Duration
}

const (
	// EnvHost and friends name the environment variables gauge reads.
	EnvHost    = "REAR_DIFF_HOST"
	EnvPort    = "REAR_DIFF_PORT_EXTERNAL"
	EnvPrefix  = "REAR_DIFF_PREFIX"
	EnvTimeout = "GAUGE_API_TIMEOUT"
	EnvLogFile = "GAUGE_LOG_FILE"

	defaultPrefix         = "rear-diff"
	defaultTimeoutSeconds = 30
	defaultPollInterval   = 15 * time.Second
)

// MissingVarsError reports every missing or malformed environment variable
// at once so a single startup failure names the full remediation.
type MissingVarsError struct {
	Vars []string
}

func (e *MissingVarsError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Vars, ", "))
}

// Load reads the environment and returns a validated Config. It never
// guesses: a missing host or port is an error, not localhost.
func Load() (Config, error) {
	// Best effort; injected environment always wins over the .env file.
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Host:      strings.TrimSpace(getenv(EnvHost)),
		Port:      strings.TrimSpace(getenv(EnvPort)),
		Prefix:    strings.TrimSpace(getenv(EnvPrefix)),
		Timeout:   defaultTimeoutSeconds * time.Second,
		PollEvery: defaultPollInterval,
	}

	var missing []string
	if cfg.Host == "" {
		missing = append(missing, EnvHost)
	}
	if cfg.Port == "" {
		missing = append(missing, EnvPort)
	}
	if cfg.Prefix == "" {
		cfg.Prefix = defaultPrefix
	}

	if raw := strings.TrimSpace(getenv(EnvTimeout)); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			missing = append(missing, EnvTimeout+" (must be a positive integer of seconds)")
		} else {
			cfg.Timeout = time.Duration(seconds) * time.Second
		}
	}

	cfg.LogPath = strings.TrimSpace(getenv(EnvLogFile))
	if cfg.LogPath == "" {
		cfg.LogPath = defaultLogPath()
	}

	if len(missing) > 0 {
		return Config{}, &MissingVarsError{Vars: missing}
	}
	return cfg, nil
}

// BaseURL constructs the rear-diff base URL. The trailing slash matters:
// endpoint paths are resolved relative to it.
func (c Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%s/%s/", c.Host, c.Port, strings.Trim(c.Prefix, "/"))
}

func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "gauge", "gauge.log")
}
