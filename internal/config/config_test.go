package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFile drops content into a temp file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `
enabled: true
listen: "127.0.0.1:9814"
options:
  IPv4: "10.1.1.1"
  PROTOCOL: https
  TCPPORT: "443"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Enabled {
		t.Error("Enabled = false, want true")
	}
	if cfg.Listen != "127.0.0.1:9814" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.CommandSocket != DefaultCommandSocket {
		t.Errorf("CommandSocket = %q, want default %q", cfg.CommandSocket, DefaultCommandSocket)
	}
	if got := cfg.Options["IPv4"]; got != "10.1.1.1" {
		t.Errorf("Options[IPv4] = %q", got)
	}
	if got := cfg.Options["TCPPORT"]; got != "443" {
		t.Errorf("Options[TCPPORT] = %q", got)
	}
}

func TestLoad_DefaultsWhenFieldsAbsent(t *testing.T) {
	path := writeFile(t, "config.yaml", "options: {}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Enabled {
		t.Error("Enabled should default to true")
	}
	if cfg.Options == nil {
		t.Error("Options should never be nil")
	}
}

func TestLoad_ExplicitDisable(t *testing.T) {
	path := writeFile(t, "config.yaml", "enabled: false\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Enabled {
		t.Error("Enabled = true, want false")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load should fail on a missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "options: [not a mapping\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load should fail on malformed yaml")
	}
}
