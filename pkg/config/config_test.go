package config

import (
	"testing"

	"finsem-hq/bizgate/pkg/bizmeta/errors"
	"finsem-hq/bizgate/pkg/bizmeta/rules"
)

func TestRulesConfig(t *testing.T) {
	cfg := NewDefault()
	cfg.Gate.Mode = "Publish"
	cfg.Gate.MaxRefDepth = 4
	cfg.Gate.Severity = map[string]string{"unit_not_allowed": "warn"}
	cfg.Engine.Workers = 3

	rc, err := cfg.RulesConfig()
	if err != nil {
		t.Fatalf("RulesConfig: %v", err)
	}
	if rc.Mode != rules.ModePublish {
		t.Errorf("expected publish, got %q", rc.Mode)
	}
	if rc.MaxRefDepth != 4 || rc.Workers != 3 {
		t.Errorf("unexpected engine settings %+v", rc)
	}
	if rc.Severities[errors.RuleUnitNotAllowed] != rules.LevelWarn {
		t.Errorf("expected UNIT_NOT_ALLOWED=warn, got %v", rc.Severities)
	}

	if _, err := rules.NewEngine(rc); err != nil {
		t.Errorf("engine rejected config: %v", err)
	}
}

func TestRulesConfig_InvalidMode(t *testing.T) {
	cfg := NewDefault()
	cfg.Gate.Mode = "nope"
	if _, err := cfg.RulesConfig(); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}
