package config

import (
	"sync"
	"testing"
)

func resetGlobal() {
	globalConfig = nil
	initOnce = *new(sync.Once)
}

func TestInitialize(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	path := writeConfig(t, "gate:\n  mode: publish\n")
	if err := Initialize(path); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config after initialization")
	}
	if cfg.Gate.Mode != "publish" {
		t.Errorf("expected mode %q, got %q", "publish", cfg.Gate.Mode)
	}
}

func TestInitialize_MultipleCallsIgnored(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	first := writeConfig(t, "gate:\n  mode: publish\n")
	second := writeConfig(t, "gate:\n  mode: import\n")

	if err := Initialize(first); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}
	if err := Initialize(second); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	if got := GetConfig().Gate.Mode; got != "publish" {
		t.Errorf("expected first config to win, got mode %q", got)
	}
}

func TestReloadConfig(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	path := writeConfig(t, "gate:\n  mode: import\n")
	if err := Initialize(path); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	bad := writeConfig(t, "gate:\n  mode: review\n")
	if err := ReloadConfig(bad); err == nil {
		t.Fatal("expected reload of invalid config to fail")
	}
	if got := GetConfig().Gate.Mode; got != "import" {
		t.Errorf("failed reload replaced config: mode %q", got)
	}

	good := writeConfig(t, "gate:\n  mode: publish\n")
	if err := ReloadConfig(good); err != nil {
		t.Fatalf("ReloadConfig: %v", err)
	}
	if got := GetConfig().Gate.Mode; got != "publish" {
		t.Errorf("expected reloaded mode %q, got %q", "publish", got)
	}
}

func TestMustGetConfig_Panics(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	defer func() {
		if recover() == nil {
			t.Error("expected panic when config is not initialized")
		}
	}()
	MustGetConfig()
}

func TestSetConfig(t *testing.T) {
	resetGlobal()
	t.Cleanup(resetGlobal)

	cfg := NewDefault()
	SetConfig(cfg)
	if GetConfig() != cfg {
		t.Error("SetConfig did not replace the global config")
	}
}
