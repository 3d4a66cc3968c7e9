// Package config loads and validates the application configuration.
//
// Configuration is layered: compiled-in defaults, then an optional YAML
// file (config.yaml next to the binary, or the path in
// SHEETSUM_CONFIG_FILE), then SHEETSUM_-prefixed environment variables.
// Later layers win.
package config
