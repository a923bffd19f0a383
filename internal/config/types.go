// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/vtail/pkg/tail"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug logs per-file totals, selections and index sizes.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs informational records.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidCountText is the sentinel error wrapped by InvalidCountTextError.
	ErrInvalidCountText = errors.New("invalid count")
	// ErrInvalidIndexInterval is returned for a negative IndexInterval.
	ErrInvalidIndexInterval = errors.New("invalid line index interval")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// LogLevel is the minimum level of records written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// CountText is a count argument in -n/-c syntax, kept as text so that
	// "+0" and "0" stay distinct until parsed.
	CountText string

	// InvalidCountTextError is returned when a CountText does not parse.
	InvalidCountTextError struct {
		Value CountText
		Err   error
	}

	// IndexInterval is the spacing of line index checkpoints. 0 disables the index.
	IndexInterval int64

	// InvalidIndexIntervalError is returned for a negative IndexInterval.
	InvalidIndexIntervalError struct {
		Value IndexInterval
	}

	// Config holds the application configuration.
	Config struct {
		// Lines is the default -n count.
		Lines CountText `json:"lines" mapstructure:"lines" toml:"lines"`
		// Quiet suppresses file name headers.
		Quiet bool `json:"quiet" mapstructure:"quiet" toml:"quiet"`
		// Lossy replaces invalid UTF-8 in the output with U+FFFD.
		Lossy bool `json:"lossy" mapstructure:"lossy" toml:"lossy"`
		// LineIndexInterval spaces the line index checkpoints.
		LineIndexInterval IndexInterval `json:"line_index_interval" mapstructure:"line_index_interval" toml:"line_index_interval"`
		// UI contains user interface settings.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// UIConfig contains UI-related settings.
	UIConfig struct {
		// Verbose enables debug logging and full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
		// ColorScheme sets the color scheme ("auto", "dark", "light").
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// LogLevel is the minimum log level when not verbose.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level" toml:"log_level"`
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all nested types.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

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

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error {
	return ErrInvalidLogLevel
}

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

// Error implements the error interface for InvalidCountTextError.
func (e *InvalidCountTextError) Error() string {
	return fmt.Sprintf("invalid count %q: %v", e.Value, e.Err)
}

// Unwrap returns ErrInvalidCountText and the parse error.
func (e *InvalidCountTextError) Unwrap() []error {
	return []error{ErrInvalidCountText, e.Err}
}

// String returns the string representation of the CountText.
func (c CountText) String() string { return string(c) }

// IsValid reports whether the text parses as a count.
func (c CountText) IsValid() (bool, []error) {
	if _, err := tail.Parse(string(c)); err != nil {
		return false, []error{&InvalidCountTextError{Value: c, Err: err}}
	}
	return true, nil
}

// Error implements the error interface for InvalidIndexIntervalError.
func (e *InvalidIndexIntervalError) Error() string {
	return fmt.Sprintf("invalid line index interval %d: must be >= 0", e.Value)
}

// Unwrap returns ErrInvalidIndexInterval for errors.Is() compatibility.
func (e *InvalidIndexIntervalError) Unwrap() error { return ErrInvalidIndexInterval }

// IsValid reports whether the interval is non-negative.
func (i IndexInterval) IsValid() (bool, []error) {
	if i < 0 {
		return false, []error{&InvalidIndexIntervalError{Value: i}}
	}
	return true, nil
}

// IsValid returns whether the UIConfig has valid fields.
func (u UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := u.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := u.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return "invalid UI config: " + joinErrors(e.FieldErrors)
}

// Unwrap returns ErrInvalidUIConfig followed by the field errors.
func (e *InvalidUIConfigError) Unwrap() []error {
	return append([]error{ErrInvalidUIConfig}, e.FieldErrors...)
}

// IsValid returns whether the Config has valid fields.
// It delegates to Lines.IsValid(), LineIndexInterval.IsValid() and UI.IsValid().
// Quiet and Lossy are plain bools and need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Lines.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.LineIndexInterval.IsValid(); !valid {
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
	return "invalid config: " + joinErrors(e.FieldErrors)
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so errors.Is
// matches any nested sentinel.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

func joinErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Lines:             "10",
		Quiet:             false,
		Lossy:             false,
		LineIndexInterval: IndexInterval(tail.DefaultIndexInterval),
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
			LogLevel:    LogLevelWarn,
		},
	}
}
