package common

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"
)

// Config represents the suite configuration. It is built once at process
// start and never mutated afterward.
type Config struct {
	Environment       string          `toml:"environment" validate:"required"`
	BaseURL           string          `toml:"base_url" validate:"required,url"`
	Timeout           time.Duration   `toml:"timeout" validate:"gt=0"`
	ExpectTimeout     time.Duration   `toml:"expect_timeout" validate:"gt=0"`
	NavigationTimeout time.Duration   `toml:"navigation_timeout" validate:"gt=0"`
	PollInterval      time.Duration   `toml:"poll_interval" validate:"gt=0"`
	Retries           int             `toml:"retries" validate:"gte=0"`
	Workers           int             `toml:"workers" validate:"gte=1"`
	CI                bool            `toml:"ci"`
	FailOnHealthCheck bool            `toml:"fail_on_health_check"`
	OutputDir         string          `toml:"output_dir" validate:"required"`
	Logging           LoggingConfig   `toml:"logging"`
	Artifacts         ArtifactsConfig `toml:"artifacts"`
}

// LoggingConfig controls the process-wide logger.
type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// ArtifactsConfig holds the choice settings for run artifacts. The modes are
// validated against allow-lists and recorded in the run report; actual video
// and trace capture are outside the suite's scope.
type ArtifactsConfig struct {
	ScreenshotMode string `toml:"screenshot_mode"`
	VideoMode      string `toml:"video_mode"`
	TraceMode      string `toml:"trace_mode"`
}

// LoadConfig loads configuration with priority: defaults -> config files ->
// environment variables. A .env file in the working directory is loaded
// first so that env overrides work the same locally and in CI.
func LoadConfig(paths ...string) (*Config, error) {
	// Missing .env is not an error
	_ = godotenv.Load()

	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// Values that fail to parse or fall outside an allow-list keep the previous
// value and log a warning; the process never dies on a malformed override.
func applyEnvOverrides(config *Config) {
	logger := GetLogger()

	if env := os.Getenv("SHOPCHECK_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("NODE_ENV"); env != "" {
		// Honored for parity with the JS tooling that shares CI pipelines
		config.Environment = env
	}

	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	config.Timeout = durationEnv(logger, "TIMEOUT", config.Timeout)
	config.ExpectTimeout = durationEnv(logger, "EXPECT_TIMEOUT", config.ExpectTimeout)
	config.NavigationTimeout = durationEnv(logger, "NAVIGATION_TIMEOUT", config.NavigationTimeout)
	config.PollInterval = durationEnv(logger, "POLL_INTERVAL", config.PollInterval)
	config.Retries = intEnv(logger, "RETRIES", config.Retries)
	config.Workers = intEnv(logger, "WORKERS", config.Workers)
	config.CI = boolEnv(logger, "CI", config.CI)
	config.FailOnHealthCheck = boolEnv(logger, "FAIL_ON_HEALTH_CHECK", config.FailOnHealthCheck)

	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		config.OutputDir = dir
	}

	config.Logging.Level = choiceEnv(logger, "LOG_LEVEL", config.Logging.Level, AllowedLogLevels)
	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		config.Logging.Output = strings.Split(output, ",")
	}

	config.Artifacts.ScreenshotMode = choiceEnv(logger, "SCREENSHOT_MODE", config.Artifacts.ScreenshotMode, AllowedScreenshotModes)
	config.Artifacts.VideoMode = choiceEnv(logger, "VIDEO_MODE", config.Artifacts.VideoMode, AllowedVideoModes)
	config.Artifacts.TraceMode = choiceEnv(logger, "TRACE_MODE", config.Artifacts.TraceMode, AllowedTraceModes)
}

// durationEnv reads a duration override. Bare integers are treated as
// milliseconds (the convention of browser test runners); anything else must
// parse as a Go duration string.
func durationEnv(logger arbor.ILogger, key string, current time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return current
	}
	if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	logger.Warn().Str("var", key).Str("value", raw).Msg("Invalid duration override, using default")
	return current
}

func intEnv(logger arbor.ILogger, key string, current int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return current
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		logger.Warn().Str("var", key).Str("value", raw).Msg("Invalid numeric override, using default")
		return current
	}
	return n
}

func boolEnv(logger arbor.ILogger, key string, current bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return current
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Warn().Str("var", key).Str("value", raw).Msg("Invalid boolean override, using default")
		return current
	}
	return b
}

func choiceEnv(logger arbor.ILogger, key, current string, allowed []string) string {
	raw := os.Getenv(key)
	if raw == "" {
		return current
	}
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, v := range allowed {
		if raw == v {
			return raw
		}
	}
	logger.Warn().
		Str("var", key).
		Str("value", raw).
		Str("allowed", strings.Join(allowed, ", ")).
		Msg("Value not in allow-list, using default")
	return current
}

// Validate checks the assembled configuration. Structural checks run through
// the validator; the base URL scheme policy is enforced on top: HTTPS is
// required for non-loopback hosts, as a hard failure in production and a
// warning otherwise.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL %q must use http or https scheme, got %q", c.BaseURL, u.Scheme)
	}

	if u.Scheme == "http" && !isLoopback(u.Hostname()) {
		if c.Environment == EnvProduction {
			return fmt.Errorf("base URL %q must use HTTPS in production (non-loopback host %q)", c.BaseURL, u.Hostname())
		}
		GetLogger().Warn().
			Str("base_url", c.BaseURL).
			Msg("Non-HTTPS base URL for non-loopback host")
	}

	return nil
}

// IsProduction reports whether the suite runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
