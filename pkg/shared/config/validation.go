package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]struct{}{
	"TRACE": {},
	"DEBUG": {},
	"INFO":  {},
	"WARN":  {},
	"ERROR": {},
}

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	if err := ValidateReportConfig(&cfg.Report); err != nil {
		return fmt.Errorf("YAML global config: report directive is invalid: %w", err)
	}
	return nil
}

// ValidateLoggerConfig checks that the log level is one hclog understands.
func ValidateLoggerConfig(loggerConfig *Logger) error {
	if loggerConfig == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	if loggerConfig.Level == "" {
		return nil
	}
	if _, ok := validLogLevels[strings.ToUpper(loggerConfig.Level)]; !ok {
		return fmt.Errorf("unsupported log level %q", loggerConfig.Level)
	}
	return nil
}

// ValidateReportConfig checks the post-processing settings.
func ValidateReportConfig(reportConfig *Report) error {
	if reportConfig == nil {
		return fmt.Errorf("report configuration is nil")
	}

	switch reportConfig.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of %q, %q or %q: got %q", ColorAuto, ColorAlways, ColorNever, reportConfig.Color)
	}

	if strings.TrimSpace(reportConfig.ReachabilityMarker) == "" && reportConfig.ReachabilityMarker != "" {
		return fmt.Errorf("reachability_marker cannot be blank")
	}
	return nil
}
