package config

import (
	"time"

	"finsem-hq/bizgate/pkg/bizmeta/rules"
)

// Config is the root configuration structure for bizgate.
// It is loaded from YAML and can be overridden by environment variables.
type Config struct {
	// Gate selects the rule set and how violations weigh on the result.
	Gate GateConfig `yaml:"gate"`

	// Inputs lists the dictionary snapshots to validate.
	Inputs InputsConfig `yaml:"inputs"`

	// Engine tunes rule evaluation.
	Engine EngineConfig `yaml:"engine"`

	// Output controls report rendering.
	Output OutputConfig `yaml:"output"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Watch configures the long-running watch command.
	Watch WatchConfig `yaml:"watch"`
}

// GateConfig contains the gate selection and severity overrides.
type GateConfig struct {
	// Mode is the gate to run.
	// Options: "import", "publish"
	// Default: "import"
	Mode string `yaml:"mode"`

	// MaxRefDepth bounds typeref chains.
	// Default: 5
	MaxRefDepth int `yaml:"max_ref_depth"`

	// FailOnWarn fails the run when only warnings were reported.
	// Default: false
	FailOnWarn bool `yaml:"fail_on_warn"`

	// Severity maps rule IDs to "error", "warn" or "off".
	// Rules not listed report as errors.
	Severity map[string]string `yaml:"severity"`
}

// InputsConfig lists the sources of a run.
type InputsConfig struct {
	// Paths are files or directories. Directories are scanned recursively.
	Paths []string `yaml:"paths"`

	// Extensions filters directory scans.
	// Default: [".csv", ".md", ".markdown"]
	Extensions []string `yaml:"extensions"`

	// DSN optionally reads a biz_metadata table
	// (postgres://, sqlite://, sqlite3://).
	DSN string `yaml:"dsn"`

	// Tenant restricts the DSN query to one tenant. Empty reads all tenants.
	Tenant string `yaml:"tenant"`
}

// EngineConfig tunes the rule engine.
type EngineConfig struct {
	// Workers is the number of records evaluated in parallel.
	// Zero means GOMAXPROCS.
	// Default: 0
	Workers int `yaml:"workers"`
}

// OutputConfig controls how reports are rendered.
type OutputConfig struct {
	// Format is the stdout report format.
	// Options: "text", "json", "csv"
	// Default: "text"
	Format string `yaml:"format"`

	// Path additionally writes the JSON report to a file.
	// Default: "" (disabled)
	Path string `yaml:"path"`

	// Color controls ANSI colors in the text format.
	// Options: "auto", "always", "never"
	// Default: "auto"
	Color string `yaml:"color"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether gate metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "bizgate"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "gate"
	Subsystem string `yaml:"subsystem"`

	// Textfile writes metrics in the Prometheus text format after each run,
	// for node_exporter's textfile collector.
	// Default: "" (disabled)
	Textfile string `yaml:"textfile"`

	// ListenAddress serves /metrics while watching.
	// Default: "" (disabled)
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`
}

// WatchConfig configures re-validation triggers.
type WatchConfig struct {
	// Debounce coalesces bursts of file events into a single run.
	// Default: 500ms
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is an optional cron expression for periodic runs.
	// Default: "" (disabled)
	Schedule string `yaml:"schedule"`
}

// RulesConfig converts the gate and engine sections to an engine
// configuration. The Config is expected to have passed Validate.
func (c *Config) RulesConfig() (rules.Config, error) {
	mode, err := rules.ParseMode(c.Gate.Mode)
	if err != nil {
		return rules.Config{}, err
	}
	sev, err := rules.ParseSeverities(c.Gate.Severity)
	if err != nil {
		return rules.Config{}, err
	}
	return rules.Config{
		Mode:        mode,
		MaxRefDepth: c.Gate.MaxRefDepth,
		Workers:     c.Engine.Workers,
		Severities:  sev,
	}, nil
}
