package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".platescan.yml"

// ErrConfigNotFound is returned when the configuration file does not
// exist. Callers decide how hard to fail based on whether the path
// was explicitly given by the user.
var ErrConfigNotFound = errors.New("configuration file not found")

// fileConfig mirrors the YAML file shape. Durations are strings
// ("15s", "1m") because yaml.v3 has no native time.Duration decoding.
type fileConfig struct {
	Port           int      `yaml:"port"`
	Models         []string `yaml:"models"`
	FetchTimeout   string   `yaml:"fetchTimeout"`
	InsightTimeout string   `yaml:"insightTimeout"`
	Concurrency    int      `yaml:"concurrency"`
	Verbose        bool     `yaml:"verbose"`
}

// LoadFile merges settings from a YAML file into the config.
// Only fields present in the file override the existing values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfigNotFound
		}
		return err
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}

	if file.Port != 0 {
		c.Port = file.Port
	}
	if len(file.Models) > 0 {
		c.Models = file.Models
	}
	if file.FetchTimeout != "" {
		d, err := time.ParseDuration(file.FetchTimeout)
		if err != nil {
			return fmt.Errorf("invalid fetchTimeout %q: %w", file.FetchTimeout, err)
		}
		c.FetchTimeout = d
	}
	if file.InsightTimeout != "" {
		d, err := time.ParseDuration(file.InsightTimeout)
		if err != nil {
			return fmt.Errorf("invalid insightTimeout %q: %w", file.InsightTimeout, err)
		}
		c.InsightTimeout = d
	}
	if file.Concurrency != 0 {
		c.Concurrency = file.Concurrency
	}
	if file.Verbose {
		c.Verbose = true
	}

	return nil
}

// FindConfigFile searches for the configuration file:
//  1. the explicit path, when given
//  2. .platescan.yml in the current directory
//  3. the XDG config directory (~/.config/platescan/.platescan.yml)
//
// Returns the path if found, or empty string if not.
func FindConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	candidate := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	return ""
}
