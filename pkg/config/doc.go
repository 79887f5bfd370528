// Package config defines the configuration structures for Minos and
// provides loading, defaulting, and validation of YAML configuration
// files with optional environment variable overrides.
package config
