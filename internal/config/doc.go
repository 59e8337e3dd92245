// Package config holds all configuration for platescan: defaults,
// the flat Config struct populated from flags, environment, and an
// optional YAML file, and validation. Configuration is passed through
// the application by dependency injection, never via global state.
package config
