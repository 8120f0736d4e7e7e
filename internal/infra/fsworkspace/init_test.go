package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

func TestInitScaffoldsWorkspace(t *testing.T) {
	root := t.TempDir()

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: root}, false); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, rel := range []string{
		"adventures.yaml",
		"guide/README.md",
		"agents/weather-reporter.yaml",
		"agents/weather-chat.yaml",
		"agents/weather-planner.yaml",
		"profiles/local.yaml",
		".gitignore",
	} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	for _, rel := range []string{"reports", ".adventures/logs"} {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil || !info.IsDir() {
			t.Errorf("missing dir %s: %v", rel, err)
		}
	}
}

func TestInitWritesAllLevelPages(t *testing.T) {
	root := t.TempDir()
	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: root}, false); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, lvl := range domain.Levels() {
		p := filepath.Join(root, "guide", lvl.Dir, "README.md")
		b, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("level %d page: %v", lvl.Number, err)
			continue
		}
		page := string(b)
		if !strings.HasPrefix(page, "# "+lvl.Label()+"\n") {
			t.Errorf("level %d page does not start with its title", lvl.Number)
		}
		if !strings.Contains(page, "[Back to the guide](../README.md)") {
			t.Errorf("level %d page missing back link", lvl.Number)
		}
		if lvl.HasExample != strings.Contains(page, "## Example") {
			t.Errorf("level %d example section mismatch", lvl.Number)
		}
	}
}

func TestInitPreservesExistingFilesWithoutForce(t *testing.T) {
	root := t.TempDir()
	init := NewInitializer()

	if err := init.Init(domain.WorkspaceSpec{Root: root}, false); err != nil {
		t.Fatalf("Init: %v", err)
	}

	custom := filepath.Join(root, "profiles", "local.yaml")
	if err := os.WriteFile(custom, []byte("vars:\n  city: Oslo\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := init.Init(domain.WorkspaceSpec{Root: root}, false); err != nil {
		t.Fatalf("re-Init: %v", err)
	}
	b, _ := os.ReadFile(custom)
	if !strings.Contains(string(b), "Oslo") {
		t.Error("existing file overwritten without force")
	}

	if err := init.Init(domain.WorkspaceSpec{Root: root}, true); err != nil {
		t.Fatalf("forced Init: %v", err)
	}
	b, _ = os.ReadFile(custom)
	if strings.Contains(string(b), "Oslo") {
		t.Error("force did not restore the template")
	}
}

func TestEnsureGitignore(t *testing.T) {
	root := t.TempDir()

	if err := ensureGitignore(root); err != nil {
		t.Fatalf("ensureGitignore: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{"reports/", ".adventures/", "profiles/secrets.local.yaml"} {
		if !strings.Contains(string(b), want) {
			t.Errorf("missing entry %q", want)
		}
	}

	// Existing content is kept and only missing entries are appended.
	existing := "node_modules/\nreports/\n"
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(existing), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ensureGitignore(root); err != nil {
		t.Fatalf("ensureGitignore: %v", err)
	}
	b, _ = os.ReadFile(filepath.Join(root, ".gitignore"))
	out := string(b)
	if !strings.Contains(out, "node_modules/") {
		t.Error("existing entry lost")
	}
	if strings.Count(out, "reports/\n") != 1 {
		t.Errorf("duplicated entry:\n%s", out)
	}
	if !strings.Contains(out, ".adventures/") {
		t.Error("missing entry not appended")
	}
}
