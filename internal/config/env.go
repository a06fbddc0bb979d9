package config

import (
	"fmt"
	"os"
	"strconv"
)

// GetEnvDefault returns the value of key, or defaultValue when it is unset or empty.
func GetEnvDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvBool parses key as a boolean. An unset key yields defaultValue; a
// value strconv.ParseBool rejects yields defaultValue and an error.
func GetEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s=%q: %w", key, value, err)
	}
	return b, nil
}
