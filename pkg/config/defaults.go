package config

import "time"

// Default values for configuration fields.
const (
	// Gate defaults
	DefaultGateMode    = "import"
	DefaultMaxRefDepth = 5

	// Output defaults
	DefaultOutputFormat = "text"
	DefaultOutputColor  = "auto"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// Metrics defaults
	DefaultMetricsNamespace = "bizgate"
	DefaultMetricsSubsystem = "gate"
	DefaultMetricsPath      = "/metrics"

	// Watch defaults
	DefaultWatchDebounce = 500 * time.Millisecond

	// DefaultConfigPath is read when present and no path is given.
	DefaultConfigPath = "bizgate.yaml"
)

// DefaultExtensions is the directory scan filter.
var DefaultExtensions = []string{".csv", ".md", ".markdown"}

// ApplyDefaults fills zero-valued fields of cfg with their defaults.
// Values already set are left untouched.
func ApplyDefaults(cfg *Config) {
	applyGateDefaults(&cfg.Gate)
	applyInputsDefaults(&cfg.Inputs)
	applyOutputDefaults(&cfg.Output)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyWatchDefaults(&cfg.Watch)
}

// NewDefault returns a configuration with every default applied.
func NewDefault() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func applyGateDefaults(cfg *GateConfig) {
	if cfg.Mode == "" {
		cfg.Mode = DefaultGateMode
	}
	if cfg.MaxRefDepth == 0 {
		cfg.MaxRefDepth = DefaultMaxRefDepth
	}
}

func applyInputsDefaults(cfg *InputsConfig) {
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), DefaultExtensions...)
	}
}

func applyOutputDefaults(cfg *OutputConfig) {
	if cfg.Format == "" {
		cfg.Format = DefaultOutputFormat
	}
	if cfg.Color == "" {
		cfg.Color = DefaultOutputColor
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

func applyWatchDefaults(cfg *WatchConfig) {
	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultWatchDebounce
	}
}
