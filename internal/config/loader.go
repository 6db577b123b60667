package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultClaudeBinary = "claude"
	DefaultLogFileName  = "claude.log"
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Claude: ClaudeConfig{Binary: DefaultClaudeBinary},
		Log:    LogConfig{FileName: DefaultLogFileName},
	}
}

// ValidationError represents a configuration or input validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// LoadConfig reads the YAML settings file at path. An empty path returns the
// defaults; a named file that does not exist is an error. Missing fields keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are usable.
func ValidateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Claude.Binary) == "" {
		return ValidationError{Field: "claude.binary", Message: "must not be empty"}
	}
	name := cfg.Log.FileName
	if strings.TrimSpace(name) == "" {
		return ValidationError{Field: "log.file_name", Message: "must not be empty"}
	}
	if filepath.Base(name) != name {
		return ValidationError{Field: "log.file_name", Message: "must be a file name, not a path"}
	}
	return nil
}
