package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(DefaultPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.API.Endpoint != "https://language.googleapis.com" {
		t.Errorf("endpoint: got %q", cfg.API.Endpoint)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("timeout: got %v", cfg.API.Timeout)
	}
	if cfg.Output.Dir != "./data" {
		t.Errorf("output dir: got %q", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging: got %+v", cfg.Logging)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gnlp.yaml")
	body := `
api:
  endpoint: http://localhost:9876
  key: test-key
output:
  dir: /tmp/out
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.API.Endpoint != "http://localhost:9876" {
		t.Errorf("endpoint: got %q", cfg.API.Endpoint)
	}
	if cfg.API.Key != "test-key" {
		t.Errorf("key: got %q", cfg.API.Key)
	}
	if cfg.Output.Dir != "/tmp/out" {
		t.Errorf("output dir: got %q", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging: got %+v", cfg.Logging)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gnlp.yaml")
	if err := os.WriteFile(path, []byte("api: [not: a, mapping"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gnlp.yaml")
	if err := os.WriteFile(path, []byte("api:\n  key: from-file\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("GNLP_API_KEY", "from-env")
	t.Setenv("GNLP_API_TIMEOUT", "5s")
	t.Setenv("GNLP_OUTPUT_DIR", "/env/dir")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.API.Key != "from-env" {
		t.Errorf("key: got %q, want from-env", cfg.API.Key)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("timeout: got %v, want 5s", cfg.API.Timeout)
	}
	if cfg.Output.Dir != "/env/dir" {
		t.Errorf("output dir: got %q", cfg.Output.Dir)
	}
}

func TestEnvIgnoresBadTimeout(t *testing.T) {
	t.Setenv("GNLP_API_TIMEOUT", "soon")

	cfg, err := Load(DefaultPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("timeout: got %v, want default 30s", cfg.API.Timeout)
	}
}
