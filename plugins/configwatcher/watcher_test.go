package configwatcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte(`timezone = "UTC"`), 0644); err != nil {
		t.Fatalf("Failed to create config.toml: %v", err)
	}

	var calls atomic.Int32
	w := New(Config{
		Files:         []string{cfgPath},
		DebounceDelay: 20 * time.Millisecond,
	}, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Shutdown(context.Background())

	if err := os.WriteFile(cfgPath, []byte(`timezone = "Europe/Berlin"`), 0644); err != nil {
		t.Fatalf("Failed to rewrite config.toml: %v", err)
	}

	if !waitFor(t, 2*time.Second, func() bool { return w.Reloads() >= 1 }) {
		t.Fatalf("Reloads() = %d after write, want >= 1", w.Reloads())
	}
	if calls.Load() < 1 {
		t.Errorf("reload called %d times, want >= 1", calls.Load())
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("a = 1"), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w := New(Config{
		Files:         []string{cfgPath},
		DebounceDelay: 200 * time.Millisecond,
	}, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Shutdown(context.Background())

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(cfgPath, []byte("a = 2"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if !waitFor(t, 2*time.Second, func() bool { return calls.Load() >= 1 }) {
		t.Fatal("reload was not called")
	}
	time.Sleep(300 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("reload called %d times, want 1", got)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("a = 1"), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w := New(Config{
		Files:         []string{cfgPath},
		DebounceDelay: 10 * time.Millisecond,
	}, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Shutdown(context.Background())

	if err := os.WriteFile(filepath.Join(dir, "progress_state.json"), []byte(`{"lastPercent":3}`), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("reload called %d times for an unwatched file", got)
	}
}

func TestWatcher_FailedReloadNotCounted(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(cfgPath, []byte("A=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w := New(Config{
		Files:         []string{"", cfgPath},
		DebounceDelay: 10 * time.Millisecond,
	}, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("bad timezone")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Shutdown(context.Background())

	if err := os.WriteFile(cfgPath, []byte("A=2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return calls.Load() >= 1 }) {
		t.Fatal("reload was not called")
	}
	if w.Reloads() != 0 {
		t.Errorf("Reloads() = %d, want 0 after failed reload", w.Reloads())
	}
}

func TestWatcher_NoFiles(t *testing.T) {
	w := New(Config{Files: []string{""}}, func(context.Context) error { return nil })
	if err := w.Start(context.Background()); !errors.Is(err, ErrNoFiles) {
		t.Errorf("Start() error = %v, want ErrNoFiles", err)
	}
}

func TestWatcher_SkipsMissingDirectories(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("a = 1"), 0644); err != nil {
		t.Fatal(err)
	}

	w := New(Config{
		Files:         []string{filepath.Join(dir, "missing", "config.toml"), cfgPath},
		DebounceDelay: 10 * time.Millisecond,
	}, func(context.Context) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Shutdown(context.Background())

	if err := os.WriteFile(cfgPath, []byte("a = 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return w.Reloads() >= 1 }) {
		t.Fatal("reload was not called for the watchable file")
	}
}
