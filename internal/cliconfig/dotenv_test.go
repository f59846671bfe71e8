package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnvFile_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "BANANASCALE_TEST_FROM_FILE=file\nBANANASCALE_TEST_PRESET=file\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("BANANASCALE_TEST_PRESET", "process")
	t.Setenv("BANANASCALE_TEST_FROM_FILE", "")
	os.Unsetenv("BANANASCALE_TEST_FROM_FILE")

	ef := NewEnvFile(path)
	loaded, err := ef.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded {
		t.Error("Load() loaded = false, want true")
	}
	if got := os.Getenv("BANANASCALE_TEST_FROM_FILE"); got != "file" {
		t.Errorf("FROM_FILE = %q, want file", got)
	}
	if got := os.Getenv("BANANASCALE_TEST_PRESET"); got != "process" {
		t.Errorf("PRESET = %q, want existing environment to win", got)
	}

	// Edits to keys the file owns are picked up on the next load.
	content = "BANANASCALE_TEST_FROM_FILE=edited\nBANANASCALE_TEST_PRESET=edited\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("rewrite env file: %v", err)
	}
	if _, err := ef.Load(); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if got := os.Getenv("BANANASCALE_TEST_FROM_FILE"); got != "edited" {
		t.Errorf("FROM_FILE = %q, want edited", got)
	}
	if got := os.Getenv("BANANASCALE_TEST_PRESET"); got != "process" {
		t.Errorf("PRESET = %q, want process after reload", got)
	}
}

func TestEnvFile_Missing(t *testing.T) {
	loaded, err := NewEnvFile(filepath.Join(t.TempDir(), "absent.env")).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded {
		t.Error("Load() loaded = true for a missing file")
	}
}
