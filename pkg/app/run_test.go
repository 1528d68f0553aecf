package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lverne/lapwise/internal/config"
)

func TestResolveConfigPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfgDir := filepath.Join(dir, "lapwise")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	want := filepath.Join(cfgDir, "lapwise.yaml")
	if err := os.WriteFile(want, []byte("version: \"1\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ResolveConfigPath()
	if err != nil {
		t.Fatalf("ResolveConfigPath: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestResolveConfigPath_NotFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if _, err := ResolveConfigPath(); err == nil {
		t.Error("expected error when no config exists")
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"text", "json"} {
		logger, err := NewLogger(config.LogConfig{Level: "debug", Format: format})
		if err != nil || logger == nil {
			t.Errorf("NewLogger(%s): %v", format, err)
		}
	}

	if _, err := NewLogger(config.LogConfig{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
