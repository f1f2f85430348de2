// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pwa-builder/manifoldjs-cordova/pkg/platform"
)

const (
	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark palette.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light palette.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug logs every stage and subprocess invocation.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default log level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"

	// DefaultRetryAttempts matches the cordova package default.
	DefaultRetryAttempts = 3
	// DefaultConcurrency bounds sub-platform processing.
	DefaultConcurrency = 4
)

var (
	// ErrInvalidColorScheme is the sentinel error wrapped by InvalidColorSchemeError.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is the sentinel error wrapped by InvalidLogLevelError.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidCordovaConfig is the sentinel error wrapped by InvalidCordovaConfigError.
	ErrInvalidCordovaConfig = errors.New("invalid cordova config")
	// ErrInvalidGenerationConfig is the sentinel error wrapped by InvalidGenerationConfigError.
	ErrInvalidGenerationConfig = errors.New("invalid generation config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
)

type (
	// ColorScheme selects the CLI color palette.
	ColorScheme string

	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidConfigError collects field-level validation errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// InvalidCordovaConfigError collects field-level validation errors of a CordovaConfig.
	InvalidCordovaConfigError struct {
		FieldErrors []error
	}

	// InvalidGenerationConfigError collects field-level validation errors of a GenerationConfig.
	InvalidGenerationConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError collects field-level validation errors of a UIConfig.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Cordova configures how the cordova CLI is found and driven
		Cordova CordovaConfig `json:"cordova" mapstructure:"cordova"`
		// Generation sets the defaults of the create command
		Generation GenerationConfig `json:"generation" mapstructure:"generation"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// CordovaConfig configures the cordova CLI.
	CordovaConfig struct {
		// Plugin overrides the hosted web app plugin spec. Empty means the built-in default.
		Plugin string `json:"plugin" mapstructure:"plugin"`
		// SearchPaths replaces PATH when looking up the cordova executable.
		SearchPaths []string `json:"search_paths" mapstructure:"search_paths"`
		// RetryAttempts bounds retries of transient plugin and platform installs.
		RetryAttempts int `json:"retry_attempts" mapstructure:"retry_attempts"`
	}

	// GenerationConfig sets project generation defaults.
	GenerationConfig struct {
		// Platforms lists the sub-platforms generated when none are given on the command line.
		Platforms []string `json:"platforms" mapstructure:"platforms"`
		// Crosswalk adds the Crosswalk webview plugin.
		Crosswalk bool `json:"crosswalk" mapstructure:"crosswalk"`
		// WebAppToolkit adds the Web App Toolkit plugin.
		WebAppToolkit bool `json:"web_app_toolkit" mapstructure:"web_app_toolkit"`
		// Concurrency bounds sub-platform processing; 0 means unbounded.
		Concurrency int `json:"concurrency" mapstructure:"concurrency"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose streams cordova output and lowers the log level to debug
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// LogLevel sets the minimum log level
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// IsValid returns whether the CordovaConfig has valid fields.
// The plugin spec itself is checked by the cordova package when it is resolved.
func (c CordovaConfig) IsValid() (bool, []error) {
	var errs []error
	if c.Plugin != "" && strings.TrimSpace(c.Plugin) == "" {
		errs = append(errs, fmt.Errorf("plugin %q: non-empty value must not be whitespace-only", c.Plugin))
	}
	for i, p := range c.SearchPaths {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Errorf("search_paths[%d]: must be non-empty", i))
		}
	}
	if c.RetryAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry_attempts %d: must be at least 1", c.RetryAttempts))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidCordovaConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCordovaConfigError.
func (e *InvalidCordovaConfigError) Error() string {
	return fmt.Sprintf("invalid cordova config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidCordovaConfig for errors.Is() compatibility.
func (e *InvalidCordovaConfigError) Unwrap() error { return ErrInvalidCordovaConfig }

// PlatformIDs parses the configured sub-platforms.
func (c GenerationConfig) PlatformIDs() ([]platform.ID, error) {
	return platform.ParseIDs(c.Platforms)
}

// IsValid returns whether the GenerationConfig has valid fields.
func (c GenerationConfig) IsValid() (bool, []error) {
	var errs []error
	if _, err := c.PlatformIDs(); err != nil {
		errs = append(errs, err)
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency %d: must not be negative", c.Concurrency))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidGenerationConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidGenerationConfigError.
func (e *InvalidGenerationConfigError) Error() string {
	return fmt.Sprintf("invalid generation config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidGenerationConfig for errors.Is() compatibility.
func (e *InvalidGenerationConfigError) Unwrap() error { return ErrInvalidGenerationConfig }

// IsValid returns whether the UIConfig has valid fields.
// Verbose is a bool and needs no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to the IsValid method of each section.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Cordova.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Generation.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Cordova: CordovaConfig{
			Plugin:        "", // built-in hosted web app plugin
			SearchPaths:   []string{},
			RetryAttempts: DefaultRetryAttempts,
		},
		Generation: GenerationConfig{
			Platforms:     platform.Strings(platform.All()),
			Crosswalk:     false,
			WebAppToolkit: false,
			Concurrency:   DefaultConcurrency,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
			LogLevel:    LogLevelInfo,
		},
	}
}
