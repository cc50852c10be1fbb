package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cityfeed/internal/feed"
	"cityfeed/internal/testsupport"
	"cityfeed/internal/violation"
)

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\ndatabase_path = %q\n\n[merge]\nlock_wait_seconds = 1\n",
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Paths.DatabasePath,
	)
	path := filepath.Join(filepath.Dir(cfg.Paths.DatabasePath), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestCLIInitCreatesDatabase(t *testing.T) {
	configPath := writeTestConfig(t)

	out, _, err := runCLI(t, configPath, "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Initialized schema") {
		t.Fatalf("unexpected init output: %q", out)
	}
}

func TestCLIUpdateMergesSnapshot(t *testing.T) {
	configPath := writeTestConfig(t)

	dir := t.TempDir()
	snapshot := filepath.Join(dir, "snapshot.csv")
	records := []violation.RawRecord{
		testsupport.RawRecord("1"),
		testsupport.RawRecord("2"),
	}
	if err := feed.WriteSnapshot(snapshot, records); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	out, _, err := runCLI(t, configPath, "update", "--file", snapshot)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.Contains(out, "Loaded 2 records") {
		t.Fatalf("unexpected update output: %q", out)
	}
	if !strings.Contains(out, "Inserted") {
		t.Fatalf("missing merge summary: %q", out)
	}

	out, _, err = runCLI(t, configPath, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "Violations: 2") {
		t.Fatalf("unexpected stats output: %q", out)
	}

	out, _, err = runCLI(t, configPath, "codes")
	if err != nil {
		t.Fatalf("codes: %v", err)
	}
	if !strings.Contains(out, "C-1") || !strings.Contains(out, "C-2") {
		t.Fatalf("codes output missing registered codes: %q", out)
	}
}

func TestCLIConfigInit(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.toml")

	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout.String(), "Wrote sample configuration") {
		t.Fatalf("unexpected config init output: %q", stdout.String())
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	cmd = newRootCommand()
	stdout.Reset()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when config already exists")
	}
}
