package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kani-report.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing optional file returns defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"), true)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("missing required file fails", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"), false)
		assert.Error(t, err)
	})

	t.Run("directory is rejected", func(t *testing.T) {
		_, err := LoadConfig(t.TempDir(), false)
		assert.ErrorContains(t, err, "is a directory")
	})

	t.Run("values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
logger:
  level: debug
report:
  color: never
  extra_pointer_checks: true
  unwinding_forces_undetermined: false
`)
		cfg, err := LoadConfig(path, false)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logger.Level)
		assert.Equal(t, ColorNever, cfg.Report.Color)
		assert.True(t, cfg.Report.ExtraPointerChecks)
		assert.False(t, GetBoolValue(cfg, "Report.UnwindingForcesUndetermined", true))
		assert.Equal(t, DefaultReachabilityMarker, cfg.Report.ReachabilityMarker)
	})
}

func TestGetBoolValue(t *testing.T) {
	yes := true
	cfg := &Config{Report: Report{UnwindingForcesUndetermined: &yes, StrictDescriptions: true}}

	assert.True(t, GetBoolValue(cfg, "Report.UnwindingForcesUndetermined", false))
	assert.True(t, GetBoolValue(cfg, "Report.StrictDescriptions", false))
	assert.True(t, GetBoolValue(Default(), "Report.UnwindingForcesUndetermined", true))
	assert.False(t, GetBoolValue(cfg, "Report.Missing", false))
	assert.True(t, GetBoolValue(nil, "Report.StrictDescriptions", true))
}

func TestApplyEnvironment(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		set        bool
		wantStrict bool
	}{
		{name: "unset keeps config", set: false, wantStrict: false},
		{name: "empty value enables", value: "", set: true, wantStrict: true},
		{name: "true enables", value: "true", set: true, wantStrict: true},
		{name: "zero disables", value: "0", set: true, wantStrict: false},
		{name: "arbitrary value enables", value: "yes please", set: true, wantStrict: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(EnvStrictDescriptions, tt.value)
			} else {
				t.Setenv(EnvStrictDescriptions, "")
				os.Unsetenv(EnvStrictDescriptions)
			}
			cfg := Default()
			ApplyEnvironment(cfg)
			assert.Equal(t, tt.wantStrict, cfg.Report.StrictDescriptions)
		})
	}

	t.Run("log level", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "trace")
		cfg := Default()
		ApplyEnvironment(cfg)
		assert.Equal(t, "trace", cfg.Logger.Level)
	})
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{name: "nil config", cfg: nil, wantErr: "configuration object is nil"},
		{name: "defaults are valid", cfg: Default()},
		{
			name:    "bad log level",
			cfg:     &Config{Logger: Logger{Level: "loud"}},
			wantErr: "logger directive is invalid",
		},
		{
			name:    "bad color",
			cfg:     &Config{Report: Report{Color: "sometimes"}},
			wantErr: "report directive is invalid",
		},
		{
			name:    "blank marker",
			cfg:     &Config{Report: Report{ReachabilityMarker: "   "}},
			wantErr: "reachability_marker cannot be blank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
