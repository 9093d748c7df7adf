package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BIZGATE_"

// severityEnvPrefix introduces per-rule overrides such as
// BIZGATE_GATE_SEVERITY_UNIT_NOT_ALLOWED=warn.
const severityEnvPrefix = EnvPrefix + "GATE_SEVERITY_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data, path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention BIZGATE_SECTION_FIELD (e.g., BIZGATE_GATE_MODE).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data, path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load resolves the configuration for a command invocation. An empty path
// reads DefaultConfigPath if it exists and falls back to defaults otherwise;
// an explicit path must exist. Environment overrides are always applied.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadConfigWithEnvOverrides(path)
	}

	cfg, err := LoadConfigWithEnvOverrides(DefaultConfigPath)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg = NewDefault()
	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Values that fail to parse are ignored.
func applyEnvOverrides(cfg *Config) {
	// Gate overrides
	if val := os.Getenv("BIZGATE_GATE_MODE"); val != "" {
		cfg.Gate.Mode = val
	}
	if val := os.Getenv("BIZGATE_GATE_MAX_REF_DEPTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Gate.MaxRefDepth = i
		}
	}
	if val := os.Getenv("BIZGATE_GATE_FAIL_ON_WARN"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Gate.FailOnWarn = b
		}
	}
	applySeverityEnvOverrides(cfg)

	// Inputs overrides
	if val := os.Getenv("BIZGATE_INPUTS_PATHS"); val != "" {
		cfg.Inputs.Paths = splitList(val)
	}
	if val := os.Getenv("BIZGATE_INPUTS_EXTENSIONS"); val != "" {
		cfg.Inputs.Extensions = splitList(val)
	}
	if val := os.Getenv("BIZGATE_INPUTS_DSN"); val != "" {
		cfg.Inputs.DSN = val
	}
	if val := os.Getenv("BIZGATE_INPUTS_TENANT"); val != "" {
		cfg.Inputs.Tenant = val
	}

	// Engine overrides
	if val := os.Getenv("BIZGATE_ENGINE_WORKERS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Engine.Workers = i
		}
	}

	// Output overrides
	if val := os.Getenv("BIZGATE_OUTPUT_FORMAT"); val != "" {
		cfg.Output.Format = val
	}
	if val := os.Getenv("BIZGATE_OUTPUT_PATH"); val != "" {
		cfg.Output.Path = val
	}
	if val := os.Getenv("BIZGATE_OUTPUT_COLOR"); val != "" {
		cfg.Output.Color = val
	}

	// Telemetry overrides
	if val := os.Getenv("BIZGATE_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("BIZGATE_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("BIZGATE_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("BIZGATE_TELEMETRY_METRICS_TEXTFILE"); val != "" {
		cfg.Telemetry.Metrics.Textfile = val
	}
	if val := os.Getenv("BIZGATE_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}

	// Watch overrides
	if val := os.Getenv("BIZGATE_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}
	if val := os.Getenv("BIZGATE_WATCH_SCHEDULE"); val != "" {
		cfg.Watch.Schedule = val
	}
}

// applySeverityEnvOverrides merges BIZGATE_GATE_SEVERITY_<RULE_ID> variables
// into the severity map.
func applySeverityEnvOverrides(cfg *Config) {
	for _, kv := range os.Environ() {
		name, val, ok := strings.Cut(kv, "=")
		if !ok || val == "" || !strings.HasPrefix(name, severityEnvPrefix) {
			continue
		}
		id := strings.TrimPrefix(name, severityEnvPrefix)
		if id == "" {
			continue
		}
		if cfg.Gate.Severity == nil {
			cfg.Gate.Severity = make(map[string]string)
		}
		cfg.Gate.Severity[id] = val
	}
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
