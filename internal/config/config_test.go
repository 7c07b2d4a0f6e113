package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("got %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadMergesOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "snapshot_path: custom.bdg\nauto_compact_ratio: 0.5\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SnapshotPath != "custom.bdg" {
		t.Errorf("SnapshotPath = %q, want custom.bdg", cfg.SnapshotPath)
	}
	if cfg.AutoCompactRatio != 0.5 {
		t.Errorf("AutoCompactRatio = %v, want 0.5", cfg.AutoCompactRatio)
	}
	if cfg.AlphabetStrict != Default().AlphabetStrict {
		t.Errorf("AlphabetStrict should keep its default when unset in the file")
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}
