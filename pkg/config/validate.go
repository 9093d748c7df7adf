package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/robfig/cron/v3"

	"finsem-hq/bizgate/pkg/bizmeta/rules"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "gate.mode").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// HasField reports whether field has at least one error.
func (e ValidationError) HasField(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateGate(&cfg.Gate)...)
	errs = append(errs, validateInputs(&cfg.Inputs)...)
	errs = append(errs, validateEngine(&cfg.Engine)...)
	errs = append(errs, validateOutput(&cfg.Output)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateGate(cfg *GateConfig) []FieldError {
	var errs []FieldError

	if _, err := rules.ParseMode(cfg.Mode); err != nil {
		errs = append(errs, FieldError{
			Field:   "gate.mode",
			Message: fmt.Sprintf("must be one of: import, publish (got %q)", cfg.Mode),
		})
	}

	if cfg.MaxRefDepth < 1 {
		errs = append(errs, FieldError{
			Field:   "gate.max_ref_depth",
			Message: fmt.Sprintf("must be at least 1 (got %d)", cfg.MaxRefDepth),
		})
	}

	if _, err := rules.ParseSeverities(cfg.Severity); err != nil {
		errs = append(errs, FieldError{
			Field:   "gate.severity",
			Message: err.Error(),
		})
	}

	return errs
}

func validateInputs(cfg *InputsConfig) []FieldError {
	var errs []FieldError

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("inputs.extensions[%d]", i),
				Message: fmt.Sprintf("must start with a dot (got %q)", ext),
			})
		}
	}

	if cfg.Tenant != "" && cfg.DSN == "" {
		errs = append(errs, FieldError{
			Field:   "inputs.tenant",
			Message: "requires inputs.dsn",
		})
	}

	return errs
}

func validateEngine(cfg *EngineConfig) []FieldError {
	var errs []FieldError

	if cfg.Workers < 0 {
		errs = append(errs, FieldError{
			Field:   "engine.workers",
			Message: fmt.Sprintf("must be non-negative (got %d)", cfg.Workers),
		})
	}

	return errs
}

func validateOutput(cfg *OutputConfig) []FieldError {
	var errs []FieldError

	switch cfg.Format {
	case "text", "json", "csv":
	default:
		errs = append(errs, FieldError{
			Field:   "output.format",
			Message: fmt.Sprintf("must be one of: text, json, csv (got %q)", cfg.Format),
		})
	}

	switch cfg.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, FieldError{
			Field:   "output.color",
			Message: fmt.Sprintf("must be one of: auto, always, never (got %q)", cfg.Color),
		})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be one of: json, text, console (got %q)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.ListenAddress != "" {
		if _, _, err := net.SplitHostPort(cfg.Metrics.ListenAddress); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: fmt.Sprintf("must be host:port (got %q)", cfg.Metrics.ListenAddress),
			})
		}
	}

	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: fmt.Sprintf("must start with / (got %q)", cfg.Metrics.Path),
		})
	}

	return errs
}

func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: fmt.Sprintf("must be non-negative (got %s)", cfg.Debounce),
		})
	}

	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "watch.schedule",
				Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err),
			})
		}
	}

	return errs
}
