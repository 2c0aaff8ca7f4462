// Package config loads, normalizes, and validates the discshelf TOML
// configuration file.
package config
