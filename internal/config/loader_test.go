package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lapwise.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
version: "1"
provider:
  api_key: sk-test
  model: gpt-4o
moderation:
  api_key: sk-test
catalog:
  path: /var/lib/lapwise/catalog.db
  seed: true
sessions:
  max_sessions: 100
  max_idle: 1h
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Version != "1" {
		t.Errorf("Version = %q", cfg.Version)
	}
	if cfg.Provider.Model != "gpt-4o" {
		t.Errorf("Provider.Model = %q", cfg.Provider.Model)
	}
	if cfg.Catalog.Path != "/var/lib/lapwise/catalog.db" || !cfg.Catalog.Seed {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.Sessions.MaxSessions != 100 || cfg.Sessions.MaxIdle != "1h" {
		t.Errorf("Sessions = %+v", cfg.Sessions)
	}

	// Defaults filled in for untouched sections.
	if cfg.Server.Bind != "127.0.0.1:8080" {
		t.Errorf("Server.Bind default = %q", cfg.Server.Bind)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log defaults = %+v", cfg.Log)
	}
	if cfg.Moderation.Model != "omni-moderation-latest" {
		t.Errorf("Moderation.Model default = %q", cfg.Moderation.Model)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("LAPWISE_TEST_KEY", "sk-from-env")

	path := writeConfig(t, `
version: "1"
provider:
  api_key: ${LAPWISE_TEST_KEY}
  model: ${LAPWISE_TEST_MODEL:-gpt-4o-mini}
moderation:
  api_key: ${LAPWISE_TEST_KEY}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.APIKey != "sk-from-env" {
		t.Errorf("APIKey = %q, want value from env", cfg.Provider.APIKey)
	}
	if cfg.Provider.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want fallback default", cfg.Provider.Model)
	}
}

func TestLoad_UnresolvedVariable(t *testing.T) {
	path := writeConfig(t, `
version: "1"
provider:
  api_key: ${LAPWISE_DEFINITELY_UNSET_VAR}
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unresolved variable")
	}
	if !strings.Contains(err.Error(), "LAPWISE_DEFINITELY_UNSET_VAR") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "version: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
