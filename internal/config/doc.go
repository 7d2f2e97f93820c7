// Package config loads and validates NordPulse configuration.
//
// # Configuration Sources
//
// Configuration is assembled in layers, later layers overriding earlier ones:
//
//  1. Default() values
//  2. A YAML file (NORDPULSE_CONFIG_FILE, or config.yaml / configs/config.yaml)
//  3. Environment variables prefixed with NORDPULSE_
//
// # Environment Variables
//
// Nested fields are joined with underscores:
//
//	NORDPULSE_SERVER_PORT=8080
//	NORDPULSE_DATASET_PATH=/srv/data/enriched_data.csv
//	NORDPULSE_DATASET_CACHE_TTL=10m
//	NORDPULSE_DATASET_TOTAL_SYSTEM_COMPLAINTS=344
//	NORDPULSE_LOGGING_LEVEL=debug
//	NORDPULSE_SECURITY_ALLOWED_ORIGINS=http://localhost:8080,http://localhost:3000
//
// # Paths
//
// Relative directories resolve against NORDPULSE_HOME, or the executable
// directory when it is unset:
//
//	paths := cfg.ResolvedPaths()
//	exportFile := paths.GetExportPath("products.xlsx")
package config
