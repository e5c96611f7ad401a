// Package config loads, normalizes, and validates lumen configuration.
//
// Values start from Default, are overlaid by an optional TOML file, and are
// finally overridden by LUMEN_* environment variables. Load expands paths and
// runs Validate so callers always receive a usable Config.
package config
