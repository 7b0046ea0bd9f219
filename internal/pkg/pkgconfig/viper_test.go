package pkgconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestViperConfigValues(t *testing.T) {
	path := writeConfigFile(t, "int: 42\nbool: true\nstring: hi\nduration: 3s\nlog:\n  type: json\n")

	cfg, err := NewViper(path, nil)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}()

	if got := cfg.GetInt("int"); got != 42 {
		t.Fatalf("GetInt: expected 42, got %d", got)
	}
	if got := cfg.GetBool("bool"); got != true {
		t.Fatalf("GetBool: expected true, got %v", got)
	}
	if got := cfg.GetString("string"); got != "hi" {
		t.Fatalf("GetString: expected hi, got %q", got)
	}
	if got := cfg.GetDuration("duration"); got != 3*time.Second {
		t.Fatalf("GetDuration: expected 3s, got %v", got)
	}
	if got := cfg.GetString("log.type"); got != "json" {
		t.Fatalf("GetString nested: expected json, got %q", got)
	}
}

func TestViperEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "log:\n  type: json\n  level: debug\n")
	t.Setenv("LOG_TYPE", "formatted")

	cfg, err := NewViper(path, nil)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetString("log.type"); got != "formatted" {
		t.Fatalf("expected env override, got %q", got)
	}
	if got := cfg.GetString("log.level"); got != "debug" {
		t.Fatalf("expected file value, got %q", got)
	}
}

func TestViperMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	t.Setenv("LOG_LEVEL", "critical")

	cfg, err := NewViper(path, map[string]any{
		"log.type":  "formatted",
		"log.level": "normal",
	})
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetString("log.type"); got != "formatted" {
		t.Fatalf("expected default, got %q", got)
	}
	if got := cfg.GetString("log.level"); got != "critical" {
		t.Fatalf("expected env over default, got %q", got)
	}
}

func TestViperInvalidFile(t *testing.T) {
	path := writeConfigFile(t, "log: [unclosed\n")

	if _, err := NewViper(path, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
