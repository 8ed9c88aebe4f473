// Package config manages user-level settings stored at ~/.schemagen/config.yaml.
// Settings supply defaults for command-line flags (output directory, build
// configuration, log level) and tune diagnostics. Environment variables with
// the SCHEMAGEN_ prefix override the file; explicit flags override both.
package config
