package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_ActivityLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "activity.log")

	l, closer, err := NewLogger("info", path)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	l.Info().Str("action", "posted").Msg("run")
	l.Debug().Msg("filtered")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read activity log: %v", err)
	}
	got := string(b)
	if !strings.Contains(got, `"action":"posted"`) {
		t.Errorf("activity log = %q, want action field", got)
	}
	if strings.Contains(got, "filtered") {
		t.Errorf("activity log = %q, debug line should be filtered at info", got)
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	if _, _, err := NewLogger("shouting", ""); err == nil {
		t.Error("NewLogger() expected error for unknown level")
	}
}
