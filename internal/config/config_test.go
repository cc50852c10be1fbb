package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cityfeed/internal/config"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file to be reported as absent")
	}
	if cfg.Feed.PageSize != 32000 {
		t.Fatalf("expected default page size, got %d", cfg.Feed.PageSize)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected console log format, got %q", cfg.Logging.Format)
	}
	if !filepath.IsAbs(cfg.Paths.DatabasePath) {
		t.Fatalf("expected expanded database path, got %q", cfg.Paths.DatabasePath)
	}
}

func TestLoadAppliesFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		`database_path = "` + filepath.Join(dir, "violations.db") + `"`,
		"[feed]",
		`resource_id = "abc-123"`,
		"page_size = 500",
		"[merge]",
		"lock_wait_seconds = 3",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s to be used, got %s exists=%v", path, resolved, exists)
	}
	if cfg.Feed.ResourceID != "abc-123" {
		t.Fatalf("unexpected resource id %q", cfg.Feed.ResourceID)
	}
	if cfg.Feed.PageSize != 500 {
		t.Fatalf("unexpected page size %d", cfg.Feed.PageSize)
	}
	if cfg.Merge.LockWaitSeconds != 3 {
		t.Fatalf("unexpected lock wait %d", cfg.Merge.LockWaitSeconds)
	}
	if cfg.LockPath() != filepath.Join(dir, "violations.db")+".lock" {
		t.Fatalf("unexpected lock path %q", cfg.LockPath())
	}
}

func TestValidateRejectsBadEndpoint(t *testing.T) {
	cfg := config.Default()
	cfg.Feed.Endpoint = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for malformed endpoint")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[feed]") {
		t.Fatal("sample config missing feed section")
	}
}
