package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func startWatcher(t *testing.T, cfg *FileWatcherConfig) (*FileWatcher, <-chan []string) {
	t.Helper()

	fw, err := NewFileWatcher(cfg, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}
	t.Cleanup(func() { _ = fw.Stop() })

	changes := make(chan []string, 10)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() {
		_ = fw.Watch(ctx, func(changed []string) { changes <- changed })
	}()

	// Wait for watcher to start
	time.Sleep(100 * time.Millisecond)
	return fw, changes
}

func waitChange(t *testing.T, changes <-chan []string) []string {
	t.Helper()
	select {
	case c := <-changes:
		return c
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
		return nil
	}
}

func expectNoChange(t *testing.T, changes <-chan []string, wait time.Duration) {
	t.Helper()
	select {
	case c := <-changes:
		t.Errorf("unexpected change %v", c)
	case <-time.After(wait):
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewFileWatcher_Defaults(t *testing.T) {
	fw, err := NewFileWatcher(nil, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}
	defer func() { _ = fw.Stop() }()

	if fw.config.DebounceInterval != 500*time.Millisecond {
		t.Errorf("DebounceInterval = %v, want 500ms", fw.config.DebounceInterval)
	}
	if len(fw.config.Extensions) != 3 {
		t.Errorf("Extensions = %v", fw.config.Extensions)
	}
}

func TestFileWatcher_Directory(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "company.csv")
	writeFile(t, csv, "tenant_id,code\n")

	_, changes := startWatcher(t, &FileWatcherConfig{
		Paths:            []string{dir},
		DebounceInterval: 50 * time.Millisecond,
		Extensions:       []string{".csv", ".md"},
		SkipHidden:       true,
	})

	writeFile(t, csv, "tenant_id,code\nt1,company\n")

	changed := waitChange(t, changes)
	if len(changed) != 1 || changed[0] != filepath.Clean(csv) {
		t.Errorf("changed = %v, want [%s]", changed, csv)
	}
}

func TestFileWatcher_Debouncing(t *testing.T) {
	dir := t.TempDir()

	_, changes := startWatcher(t, &FileWatcherConfig{
		Paths:            []string{dir},
		DebounceInterval: 150 * time.Millisecond,
		Extensions:       []string{".csv"},
	})

	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	for i := 0; i < 5; i++ {
		writeFile(t, a, strings.Repeat("x", i))
		writeFile(t, b, strings.Repeat("y", i))
		time.Sleep(10 * time.Millisecond)
	}

	changed := waitChange(t, changes)
	if len(changed) != 2 || changed[0] != a || changed[1] != b {
		t.Errorf("changed = %v, want [%s %s]", changed, a, b)
	}
	expectNoChange(t, changes, 300*time.Millisecond)
}

func TestFileWatcher_FiltersExtensionsAndHidden(t *testing.T) {
	dir := t.TempDir()

	_, changes := startWatcher(t, &FileWatcherConfig{
		Paths:            []string{dir},
		DebounceInterval: 50 * time.Millisecond,
		Extensions:       []string{".csv"},
		SkipHidden:       true,
	})

	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, ".draft.csv"), "ignored")
	expectNoChange(t, changes, 300*time.Millisecond)
}

func TestFileWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()

	_, changes := startWatcher(t, &FileWatcherConfig{
		Paths:            []string{dir},
		DebounceInterval: 50 * time.Millisecond,
		Extensions:       []string{".md"},
	})

	sub := filepath.Join(dir, "person")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	// Give the watcher a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)

	md := filepath.Join(sub, "person.md")
	writeFile(t, md, "| code | object_type |\n")

	changed := waitChange(t, changes)
	if len(changed) != 1 || changed[0] != md {
		t.Errorf("changed = %v, want [%s]", changed, md)
	}
}

func TestFileWatcher_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "bizgate.yaml")
	writeFile(t, cfgFile, "gate:\n  mode: import\n")

	_, changes := startWatcher(t, &FileWatcherConfig{
		Files:            []string{cfgFile},
		DebounceInterval: 50 * time.Millisecond,
		Extensions:       []string{".csv"},
	})

	writeFile(t, filepath.Join(dir, "other.yaml"), "ignored")
	writeFile(t, cfgFile, "gate:\n  mode: publish\n")

	changed := waitChange(t, changes)
	if len(changed) != 1 || changed[0] != cfgFile {
		t.Errorf("changed = %v, want [%s]", changed, cfgFile)
	}
}

func TestFileWatcher_MissingPath(t *testing.T) {
	fw, err := NewFileWatcher(&FileWatcherConfig{Paths: []string{filepath.Join(t.TempDir(), "nope")}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = fw.Stop() }()

	if err := fw.Watch(context.Background(), func([]string) {}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Watch() error = %v, want ErrNotExist", err)
	}
}

func TestFileWatcher_DoubleStart(t *testing.T) {
	fw, _ := startWatcher(t, &FileWatcherConfig{Paths: []string{t.TempDir()}})

	if err := fw.Watch(context.Background(), func([]string) {}); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Watch() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestFileWatcher_Stop(t *testing.T) {
	fw, err := NewFileWatcher(&FileWatcherConfig{Paths: []string{t.TempDir()}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- fw.Watch(context.Background(), func([]string) {}) }()
	time.Sleep(50 * time.Millisecond)

	if err := fw.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after Stop")
	}

	if err := fw.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestFileWatcher_ShouldProcessEvent(t *testing.T) {
	fw := &FileWatcher{
		config: &FileWatcherConfig{Extensions: []string{".CSV", ".md"}, SkipHidden: true},
		files:  map[string]bool{"conf/bizgate.yaml": true},
	}

	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"dict/a.csv", fsnotify.Write, true},
		{"dict/A.CSV", fsnotify.Create, true},
		{"dict/a.md", fsnotify.Remove, true},
		{"dict/a.csv", fsnotify.Chmod, false},
		{"dict/a.txt", fsnotify.Write, false},
		{"dict/.a.csv", fsnotify.Write, false},
		{"conf/bizgate.yaml", fsnotify.Write, true},
	}

	for _, tt := range tests {
		got := fw.shouldProcessEvent(fsnotify.Event{Name: tt.name, Op: tt.op})
		if got != tt.want {
			t.Errorf("shouldProcessEvent(%s %s) = %v, want %v", tt.op, tt.name, got, tt.want)
		}
	}
}
