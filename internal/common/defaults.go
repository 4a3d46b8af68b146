// Package common provides shared configuration, logging and identifiers
// for the shopcheck suite.
package common

import "time"

// Environment names. Production tightens URL validation and strips internal
// detail from error output.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Allowed values for choice settings. Unknown values fall back to the
// default with a warning rather than failing the run.
var (
	AllowedLogLevels       = []string{"debug", "info", "warn", "error"}
	AllowedScreenshotModes = []string{"off", "on", "only-on-failure"}
	AllowedVideoModes      = []string{"off", "on", "retain-on-failure"}
	AllowedTraceModes      = []string{"off", "on", "on-first-retry"}
)

// Default settings for a run against the demo storefront.
const (
	DefaultBaseURL           = "https://www.saucedemo.com"
	DefaultTimeout           = 30 * time.Second
	DefaultExpectTimeout     = 10 * time.Second
	DefaultNavigationTimeout = 30 * time.Second
	DefaultPollInterval      = 250 * time.Millisecond
	DefaultRetries           = 0
	DefaultWorkers           = 4
	DefaultLogLevel          = "info"
	DefaultScreenshotMode    = "only-on-failure"
	DefaultVideoMode         = "off"
	DefaultTraceMode         = "off"
	DefaultOutputDir         = "test-results"
)

// NewDefaultConfig returns the configuration used when no file or
// environment overrides are present.
func NewDefaultConfig() *Config {
	return &Config{
		Environment:       EnvDevelopment,
		BaseURL:           DefaultBaseURL,
		Timeout:           DefaultTimeout,
		ExpectTimeout:     DefaultExpectTimeout,
		NavigationTimeout: DefaultNavigationTimeout,
		PollInterval:      DefaultPollInterval,
		Retries:           DefaultRetries,
		Workers:           DefaultWorkers,
		CI:                false,
		FailOnHealthCheck: false,
		OutputDir:         DefaultOutputDir,
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Output: []string{"stdout"},
		},
		Artifacts: ArtifactsConfig{
			ScreenshotMode: DefaultScreenshotMode,
			VideoMode:      DefaultVideoMode,
			TraceMode:      DefaultTraceMode,
		},
	}
}
