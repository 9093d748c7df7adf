// Package config provides configuration management for bizgate.
//
// Configuration is read from a YAML file, completed with defaults,
// overridden from the environment and validated, in that order:
//
//  1. Values from the YAML file (bizgate.yaml when no path is given; the
//     file is optional in that case)
//  2. Default values (defined in defaults.go) for fields left empty
//  3. Environment variable overrides
//  4. Validation (all field errors are collected into a ValidationError)
//
// Command-line flags are applied by the CLI on top of the result.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention BIZGATE_SECTION_FIELD:
//
//   - BIZGATE_GATE_MODE overrides gate.mode
//   - BIZGATE_INPUTS_PATHS overrides inputs.paths (comma separated)
//   - BIZGATE_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Per-rule severities use BIZGATE_GATE_SEVERITY_<RULE_ID>, for example
// BIZGATE_GATE_SEVERITY_UNIT_NOT_ALLOWED=warn.
//
// # Example
//
//	gate:
//	  mode: publish
//	  max_ref_depth: 5
//	  severity:
//	    COMPLETENESS_OBJECT_CHILDREN_MISSING: warn
//	inputs:
//	  paths: ["dict/"]
//	output:
//	  format: json
//	  path: reports/latest.json
//	telemetry:
//	  metrics:
//	    enabled: true
//	    textfile: /var/lib/node_exporter/bizgate.prom
//	watch:
//	  debounce: 1s
//	  schedule: "0 */6 * * *"
//
// # Singleton Pattern
//
// Initialize and GetConfig give process-wide access; tests should pass
// explicit Config values instead.
package config
