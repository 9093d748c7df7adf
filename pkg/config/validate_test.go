package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(NewDefault()); err != nil {
		t.Fatalf("defaults should validate, got %v", err)
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad mode", func(c *Config) { c.Gate.Mode = "review" }, "gate.mode"},
		{"zero depth", func(c *Config) { c.Gate.MaxRefDepth = 0 }, "gate.max_ref_depth"},
		{"unknown rule", func(c *Config) { c.Gate.Severity = map[string]string{"NO_SUCH_RULE": "warn"} }, "gate.severity"},
		{"bad level", func(c *Config) { c.Gate.Severity = map[string]string{"CODE_FORMAT": "fatal"} }, "gate.severity"},
		{"extension without dot", func(c *Config) { c.Inputs.Extensions = []string{"csv"} }, "inputs.extensions[0]"},
		{"tenant without dsn", func(c *Config) { c.Inputs.Tenant = "t1" }, "inputs.tenant"},
		{"negative workers", func(c *Config) { c.Engine.Workers = -1 }, "engine.workers"},
		{"bad format", func(c *Config) { c.Output.Format = "html" }, "output.format"},
		{"bad color", func(c *Config) { c.Output.Color = "sometimes" }, "output.color"},
		{"bad log level", func(c *Config) { c.Telemetry.Logging.Level = "trace" }, "telemetry.logging.level"},
		{"bad log format", func(c *Config) { c.Telemetry.Logging.Format = "xml" }, "telemetry.logging.format"},
		{"bad listen address", func(c *Config) { c.Telemetry.Metrics.ListenAddress = "9090" }, "telemetry.metrics.listen_address"},
		{"bad metrics path", func(c *Config) { c.Telemetry.Metrics.Path = "metrics" }, "telemetry.metrics.path"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
		{"bad schedule", func(c *Config) { c.Watch.Schedule = "every day" }, "watch.schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)

			err := Validate(cfg)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !verr.HasField(tt.field) {
				t.Errorf("expected error on %s, got %v", tt.field, verr.Errors)
			}
		})
	}
}

func TestValidate_Accepts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"upper-case mode", func(c *Config) { c.Gate.Mode = "PUBLISH" }},
		{"lower-case rule id", func(c *Config) { c.Gate.Severity = map[string]string{"unit_not_allowed": "Warn"} }},
		{"tenant with dsn", func(c *Config) { c.Inputs.DSN = "sqlite://x.db"; c.Inputs.Tenant = "t1" }},
		{"descriptor schedule", func(c *Config) { c.Watch.Schedule = "@hourly" }},
		{"listen address", func(c *Config) { c.Telemetry.Metrics.ListenAddress = ":9090" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			if err := Validate(cfg); err != nil {
				t.Errorf("expected valid config, got %v", err)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "gate.mode", Message: "bad"}}}
	if got := single.Error(); got != "configuration validation failed: gate.mode: bad" {
		t.Errorf("unexpected message %q", got)
	}

	multi := ValidationError{Errors: []FieldError{
		{Field: "gate.mode", Message: "bad"},
		{Field: "output.format", Message: "worse"},
	}}
	got := multi.Error()
	if !strings.Contains(got, "with 2 errors") || !strings.Contains(got, "  - output.format: worse") {
		t.Errorf("unexpected message %q", got)
	}
}
