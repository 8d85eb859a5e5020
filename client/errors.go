package client

import (
	"errors"
	"fmt"
)

// ErrConfig matches every *ConfigError via errors.Is.
var ErrConfig = errors.New("client: invalid configuration")

// ConfigError reports a rejected configuration value. It is returned
// synchronously by New and the setters; nothing is retried.
type ConfigError struct {
	// Field is the configuration field, e.g. "persistance factor".
	Field string

	// Reason describes the violated constraint.
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("client: invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
