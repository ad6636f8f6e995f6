// Package config handles configuration management for coffle.
// It supports loading configuration from multiple sources including
// TOML files, environment variables, and command-line flags.
//
// Layers, lowest first:
//
//	embedded/defaults.toml
//	$XDG_CONFIG_HOME/coffle/config.toml
//	COFFLE_* environment variables
//	command-line flags
package config
