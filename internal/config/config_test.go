package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFileResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexfeat.toml")
	raw := `
[gazetteer]
dir = "lists"
disable_names = true

[output]
dir = "out"
shared_csv = true

[batch]
workers = 2
retain_pages = true

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resolved != path {
		t.Fatalf("expected resolved path %s, got %s", path, resolved)
	}
	if cfg.Output.Dir != filepath.Join(dir, "out") || cfg.Gazetteer.Dir != filepath.Join(dir, "lists") {
		t.Fatalf("expected paths relative to config file, got %q and %q", cfg.Output.Dir, cfg.Gazetteer.Dir)
	}
	if !cfg.Gazetteer.DisableNames || !cfg.Output.SharedCSV || !cfg.Output.PerVolume || !cfg.Batch.RetainPages {
		t.Fatalf("unexpected flags %+v", cfg)
	}
	if cfg.Batch.Workers != 2 || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected batch/logging %+v %+v", cfg.Batch, cfg.Logging)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexfeat.toml")
	if err := os.WriteFile(path, []byte("[batch]\nworkers = 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LEXFEAT_WORKERS", "7")
	t.Setenv("LEXFEAT_OVERWRITE", "true")

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Batch.Workers != 7 || !cfg.Output.Overwrite {
		t.Fatalf("expected env overrides, got workers=%d overwrite=%v", cfg.Batch.Workers, cfg.Output.Overwrite)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[logging]\nlevel = \"loud\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Fatalf("expected logging level error, got %v", err)
	}

	noOutput := filepath.Join(dir, "none.toml")
	if err := os.WriteFile(noOutput, []byte("[output]\nper_volume = false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := Load(noOutput); err == nil {
		t.Fatal("expected error when every output is disabled")
	}
}

func TestWriteSampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected refusal to replace existing config")
	}
	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if !cfg.Output.PerVolume || cfg.Batch.Workers < 1 || cfg.Gazetteer.Dir == "" {
		t.Fatalf("unexpected sample defaults %+v", cfg)
	}
}
