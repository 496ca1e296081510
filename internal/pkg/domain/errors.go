package domain

import (
	"fmt"
)

// ConfigError reports a missing or malformed configuration key. Key is the
// full dotted path of the offending key, e.g. "publisher.email".
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration key %q %s", e.Key, e.Reason)
}

func MissingKey(key string) *ConfigError {
	return &ConfigError{Key: key, Reason: "is required but missing"}
}

func MalformedKey(key, expected string) *ConfigError {
	return &ConfigError{Key: key, Reason: "must be " + expected}
}

// IOError wraps failures to read or write files and directories
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %s", e.Op, e.Path, e.Err.Error())
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// DataError is returned when configuration or translation data is missing or
// cannot be parsed
type DataError struct {
	Source string
	Err    error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("bad data from %s: %s", e.Source, e.Err.Error())
}

func (e *DataError) Unwrap() error {
	return e.Err
}
