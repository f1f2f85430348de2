// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value ColorScheme
		want  bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"", false},
		{"solarized", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()
			valid, errs := tt.value.IsValid()
			if valid != tt.want {
				t.Fatalf("ColorScheme(%q).IsValid() = %v, want %v", tt.value, valid, tt.want)
			}
			if !valid && !errors.Is(errs[0], ErrInvalidColorScheme) {
				t.Errorf("error should wrap ErrInvalidColorScheme, got %v", errs[0])
			}
		})
	}
}

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	for _, level := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		if valid, errs := level.IsValid(); !valid {
			t.Errorf("LogLevel(%q) should be valid, got %v", level, errs)
		}
	}

	valid, errs := LogLevel("trace").IsValid()
	if valid {
		t.Fatal("LogLevel(trace) should be invalid")
	}
	var levelErr *InvalidLogLevelError
	if !errors.As(errs[0], &levelErr) || levelErr.Value != "trace" {
		t.Errorf("expected *InvalidLogLevelError for trace, got %v", errs[0])
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*Config)
		sentinel error
	}{
		{name: "blank search path", mutate: func(c *Config) { c.Cordova.SearchPaths = []string{" "} }, sentinel: ErrInvalidCordovaConfig},
		{name: "whitespace plugin", mutate: func(c *Config) { c.Cordova.Plugin = "  " }, sentinel: ErrInvalidCordovaConfig},
		{name: "zero retry attempts", mutate: func(c *Config) { c.Cordova.RetryAttempts = 0 }, sentinel: ErrInvalidCordovaConfig},
		{name: "unknown platform", mutate: func(c *Config) { c.Generation.Platforms = []string{"tizen"} }, sentinel: ErrInvalidGenerationConfig},
		{name: "negative concurrency", mutate: func(c *Config) { c.Generation.Concurrency = -2 }, sentinel: ErrInvalidGenerationConfig},
		{name: "bad color scheme", mutate: func(c *Config) { c.UI.ColorScheme = "neon" }, sentinel: ErrInvalidUIConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			valid, errs := cfg.IsValid()
			if valid {
				t.Fatal("expected config to be invalid")
			}
			if !errors.Is(errs[0], ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", errs[0])
			}
			var cfgErr *InvalidConfigError
			if !errors.As(errs[0], &cfgErr) {
				t.Fatalf("expected *InvalidConfigError, got %T", errs[0])
			}
			if !errors.Is(errors.Join(cfgErr.FieldErrors...), tt.sentinel) {
				t.Errorf("field errors %v should wrap %v", cfgErr.FieldErrors, tt.sentinel)
			}
		})
	}
}

func TestGenerationConfig_PlatformIDs(t *testing.T) {
	t.Parallel()

	ids, err := GenerationConfig{Platforms: []string{"Windows", "android", "windows"}}.PlatformIDs()
	if err != nil {
		t.Fatalf("PlatformIDs() returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != platform.WindowsID || ids[1] != platform.AndroidID {
		t.Errorf("PlatformIDs() = %v, want [windows android]", ids)
	}
}
