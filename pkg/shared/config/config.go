package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// DefaultConfigPath is used when no --config flag is given. A missing default file is not an error.
const DefaultConfigPath = "kani-report.yml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultReachabilityMarker tags the synthetic checks that test whether another check is reachable.
const DefaultReachabilityMarker = "[KANI_REACHABILITY_CHECK]"

type Config struct {
	Logger Logger `yaml:"logger"`
	Report Report `yaml:"report"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Report holds the knobs of the result post-processing pipeline.
type Report struct {
	Color                       string `yaml:"color"`
	ExtraPointerChecks          bool   `yaml:"extra_pointer_checks"`
	StrictDescriptions          bool   `yaml:"strict_descriptions"`
	UnwindingForcesUndetermined *bool  `yaml:"unwinding_forces_undetermined"`
	ReachabilityMarker          string `yaml:"reachability_marker"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logger: Logger{Level: "info"},
		Report: Report{
			Color:              ColorAuto,
			ReachabilityMarker: DefaultReachabilityMarker,
		},
	}
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the YAML file at configPath on top of the defaults.
// When optional is true and the file does not exist, the defaults are returned.
func LoadConfig(configPath string, optional bool) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		return cfg, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) && optional {
		return cfg, nil
	}

	if err := LoadYAML(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}
	cfg.Report.Color = SetThen(cfg.Report.Color, ColorAuto)
	cfg.Report.ReachabilityMarker = SetThen(cfg.Report.ReachabilityMarker, DefaultReachabilityMarker)

	return cfg, nil
}
