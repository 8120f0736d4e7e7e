package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

func newWorkspace(t *testing.T, config string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "adventures.yaml"), []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return root
}

func TestFindRoot(t *testing.T) {
	root := newWorkspace(t, "adventures: {}\n")
	nested := filepath.Join(root, "guide", "01-ReAct")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	f := NewFinder()

	got, err := f.FindRoot(root)
	if err != nil || got != root {
		t.Errorf("FindRoot(root) = %q, %v", got, err)
	}

	got, err = f.FindRoot(nested)
	if err != nil || got != root {
		t.Errorf("FindRoot(nested) = %q, %v", got, err)
	}

	// A file path resolves against its directory.
	file := filepath.Join(nested, "README.md")
	if err := os.WriteFile(file, []byte("# x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err = f.FindRoot(file)
	if err != nil || got != root {
		t.Errorf("FindRoot(file) = %q, %v", got, err)
	}
}

func TestFindRootErrors(t *testing.T) {
	f := NewFinder()

	if _, err := f.FindRoot(t.TempDir()); !domain.IsKind(err, domain.KindNotFound) {
		t.Errorf("bare dir: %v", err)
	}
	if _, err := f.FindRoot(""); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Errorf("empty start: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	root := newWorkspace(t, `adventures:
  masking:
    enabled: false
  defaults:
    profile: remote
    city: Paris
  paths:
    guide_dir: docs
`)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Masking.Enabled {
		t.Error("masking should be disabled")
	}
	if cfg.Defaults.Profile != "remote" || cfg.Defaults.City != "Paris" {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	// Unset fields keep their defaults.
	if cfg.Defaults.Model != "llama3.2" {
		t.Errorf("model = %q", cfg.Defaults.Model)
	}
	if cfg.Paths.GuideDir != "docs" || cfg.Paths.AgentsDir != "agents" {
		t.Errorf("paths = %+v", cfg.Paths)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(t.TempDir()); !domain.IsKind(err, domain.KindNotFound) {
		t.Errorf("missing: %v", err)
	}

	root := newWorkspace(t, "adventures: [\n")
	if _, err := LoadConfig(root); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Errorf("broken: %v", err)
	}
}
