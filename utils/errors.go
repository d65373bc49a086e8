package utils

import (
	"errors"
	"fmt"
)

// ConfigurationError reports malformed or inconsistent input, detected once at setup
type ConfigurationError struct {
	Field  string
	Reason string
}

func NewConfigurationError(field, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (e *ConfigurationError) Error() string {
	if len(e.Field) == 0 {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Reason)
}

// IsConfigurationError is true if err or anything it wraps is a ConfigurationError
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
