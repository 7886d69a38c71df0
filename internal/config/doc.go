// Package config holds the settings of every homeheat command.
//
// Values are resolved in this order, later sources winning: built-in
// defaults (NewConfig), the YAML config file (.homeheat), the environment
// (ZILLOW_WSID, optionally loaded from a .env file), and command-line flags.
package config
