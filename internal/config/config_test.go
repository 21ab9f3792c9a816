package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Lint.Linter != "pylint" {
		t.Errorf("default linter = %q", cfg.Lint.Linter)
	}
	if cfg.Daemon.RescanInterval != 30*time.Second {
		t.Errorf("default rescan interval = %v", cfg.Daemon.RescanInterval)
	}
	if cfg.Daemon.NATSSubject != "pybuilder.events" {
		t.Errorf("default NATS subject = %q", cfg.Daemon.NATSSubject)
	}
}

func TestLoad_ReadsYAML(t *testing.T) {
	root := t.TempDir()
	content := `
environment:
  virtualenv: .venv
env:
  PYLINTRC: /etc/pylintrc
daemon:
  rescan_interval: 5s
`
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Environment.Virtualenv != ".venv" {
		t.Errorf("virtualenv = %q", cfg.Environment.Virtualenv)
	}
	if cfg.Daemon.RescanInterval != 5*time.Second {
		t.Errorf("rescan interval = %v", cfg.Daemon.RescanInterval)
	}
	if got := cfg.Getenv("PYLINTRC"); got != "/etc/pylintrc" {
		t.Errorf("Getenv(PYLINTRC) = %q", got)
	}
}

func TestGetenv_ConfigWinsOverProcess(t *testing.T) {
	t.Setenv("PYBUILDER_TEST_VAR", "process")

	cfg := &Config{Env: map[string]string{"PYBUILDER_TEST_VAR": "config"}}
	if got := cfg.Getenv("PYBUILDER_TEST_VAR"); got != "config" {
		t.Errorf("Getenv = %q, want config", got)
	}

	empty := &Config{}
	if got := empty.Getenv("PYBUILDER_TEST_VAR"); got != "process" {
		t.Errorf("Getenv = %q, want process", got)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("PYBUILDER_DOTENV_VAR=fromdotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("PYBUILDER_DOTENV_VAR") })

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.Getenv("PYBUILDER_DOTENV_VAR"); got != "fromdotenv" {
		t.Errorf("Getenv = %q, want fromdotenv", got)
	}
}
