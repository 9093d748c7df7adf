package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"finsem-hq/bizgate/pkg/cli"
	"finsem-hq/bizgate/pkg/config"
)

func identityResolve(c *config.Config) (*config.Config, error) {
	cp := *c
	return &cp, config.Validate(&cp)
}

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("read %s: %v", src, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", dst, err)
	}
}

// waitForReport polls path until it holds a report with the given verdict.
func waitForReport(t *testing.T, path string, passed bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(path)
		if err == nil {
			var r struct {
				Passed bool `json:"passed"`
			}
			if json.Unmarshal(data, &r) == nil && r.Passed == passed {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("report %s never reached passed=%v", path, passed)
}

func TestRunWatch_RerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "company.csv")
	copyFile(t, "testdata/clean/company.csv", input)

	cfg := testConfig(dir)
	cfg.Output.Path = filepath.Join(dir, "out", "report.json")
	cfg.Watch.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, cfg, "", identityResolve, testLogger(t, nil))
	}()

	waitForReport(t, cfg.Output.Path, true)

	copyFile(t, "testdata/failing/company.csv", input)
	waitForReport(t, cfg.Output.Path, false)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runWatch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch() did not return after cancel")
	}
}

func TestRunWatch_NoInputs(t *testing.T) {
	err := runWatch(context.Background(), testConfig(), "", identityResolve, testLogger(t, nil))
	if err == nil {
		t.Fatal("runWatch() without inputs should return error")
	}
	if got := cli.ExitCode(err); got != cli.ExitCodeRuntime {
		t.Errorf("ExitCode() = %d, want %d", got, cli.ExitCodeRuntime)
	}
}

func TestRunWatch_SetupErrorsLeaveNothingRunning(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{"bad schedule", func(cfg *config.Config) { cfg.Watch.Schedule = "every tuesday" }},
		{"missing path", func(cfg *config.Config) {
			cfg.Inputs.Paths = append(cfg.Inputs.Paths, filepath.Join(t.TempDir(), "gone"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t.TempDir())
			tt.mutate(cfg)

			before := runtime.NumGoroutine()
			done := make(chan error, 1)
			go func() {
				done <- runWatch(context.Background(), cfg, "", identityResolve, testLogger(t, nil))
			}()

			select {
			case err := <-done:
				if err == nil {
					t.Fatal("runWatch() error = nil, want setup error")
				}
			case <-time.After(5 * time.Second):
				t.Fatal("runWatch() kept running after a setup error")
			}

			deadline := time.Now().Add(2 * time.Second)
			for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
				time.Sleep(10 * time.Millisecond)
			}
			if n := runtime.NumGoroutine(); n > before {
				t.Errorf("goroutines = %d after runWatch returned, want at most %d", n, before)
			}
		})
	}
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bizgate.yaml")
	if err := os.WriteFile(path, []byte("gate:\n  mode: publish\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { config.SetConfig(nil) })

	var current atomic.Pointer[config.Config]
	current.Store(testConfig("testdata/clean"))
	log := testLogger(t, nil)

	reload(path, identityResolve, &current, log)
	if got := current.Load().Gate.Mode; got != "publish" {
		t.Fatalf("mode after reload = %q, want publish", got)
	}

	if err := os.WriteFile(path, []byte("gate:\n  mode: release\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	reload(path, identityResolve, &current, log)
	if got := current.Load().Gate.Mode; got != "publish" {
		t.Errorf("invalid file replaced the configuration: mode = %q", got)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	reload(path, identityResolve, &current, log)
	if got := current.Load().Gate.Mode; got != "publish" {
		t.Errorf("removed file replaced the configuration: mode = %q", got)
	}
}

func TestContains(t *testing.T) {
	changed := []string{"dict/a.csv", "bizgate.yaml"}
	if !contains(changed, "./bizgate.yaml") {
		t.Error("contains() should match cleaned paths")
	}
	if contains(changed, "other.yaml") {
		t.Error("contains() matched an absent path")
	}
}
