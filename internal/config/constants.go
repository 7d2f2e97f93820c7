package config

import "time"

// Application constants
const (
	// Application Info
	AppName    = "NordPulse"
	AppVersion = "1.0.0"
	AppVendor  = "NordTech"

	// EnvPrefix namespaces every environment variable (NORDPULSE_SERVER_PORT, ...)
	EnvPrefix = "NORDPULSE"

	// HomeEnvVar overrides the directory paths are resolved against
	HomeEnvVar = "NORDPULSE_HOME"

	// ConfigFileEnvVar points at an explicit YAML config file
	ConfigFileEnvVar = "NORDPULSE_CONFIG_FILE"

	// Dataset
	DefaultDatasetFile = "enriched_data.csv"
	DefaultCacheTTL    = 600 * time.Second

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRequestTimeout = 60 * time.Second

	// File Paths (relative to the home directory)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultExportsDir = "data/exports"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "console"
	DefaultLogFile   = "logs/app.log"
)
