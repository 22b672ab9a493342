package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Environment variables recognised on top of the YAML configuration.
const (
	EnvLogLevel           = "KANI_REPORT_LOG_LEVEL"
	EnvStrictDescriptions = "KANI_FAIL_ON_UNEXPECTED_DESCRIPTION"
)

// GetBoolValue retrieves a boolean value from a nested struct based on a dot-separated path.
// It returns the provided defaultValue if the specified field is not explicitly set or is nil.
func GetBoolValue(config interface{}, fieldPath string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	fields := strings.Split(fieldPath, ".")
	val := reflect.ValueOf(config)

	for _, field := range fields {
		if val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return defaultValue
			}
			val = val.Elem()
		}

		val = val.FieldByName(field)
		if !val.IsValid() {
			return defaultValue
		}
	}

	// Check if the field is a pointer to a bool and is not nil
	if val.Kind() == reflect.Ptr && !val.IsNil() {
		return val.Elem().Bool()
	} else if val.Kind() == reflect.Bool {
		return val.Bool()
	}

	return defaultValue
}

// SetThen provides a utility to select the first value if set, otherwise defaults.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(value).IsZero() {
		return defaultValue
	}
	return value
}

// ApplyEnvironment overrides configuration values with the ones set in the environment.
// It is called once at startup.
func ApplyEnvironment(cfg *Config) {
	if cfg == nil {
		return
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logger.Level = level
	}
	if strict, ok := lookupEnvBool(EnvStrictDescriptions); ok {
		cfg.Report.StrictDescriptions = strict
	}
}

// lookupEnvBool treats any set, non-falsy value as true.
func lookupEnvBool(name string) (bool, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true, true
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v, true
	}
	return true, true
}
