// Package fsworkspace scaffolds a workspace on the local filesystem.
package fsworkspace

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

//go:embed templates
var templatesFS embed.FS

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	dirs := []string{
		filepath.Join(root, "guide"),
		filepath.Join(root, "agents"),
		filepath.Join(root, "profiles"),
		filepath.Join(root, "reports"),
		filepath.Join(root, ".adventures", "logs"),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	if err := ensureGitignore(root); err != nil {
		return err
	}

	if err := writeTemplates(root, force); err != nil {
		return err
	}

	return writeLevelPages(root, force)
}

func writeTemplates(root string, force bool) error {
	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/")
		dst := filepath.Join(root, rel)

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}

		mode := fs.FileMode(0o644)
		if strings.Contains(strings.ToLower(rel), "secrets") {
			mode = 0o600
		}

		return os.WriteFile(dst, b, mode)
	})
}

// writeLevelPages scaffolds one README per taxonomy level so a fresh
// workspace lints clean and the TUI has something to show.
func writeLevelPages(root string, force bool) error {
	for _, lvl := range domain.Levels() {
		dir := filepath.Join(root, "guide", lvl.Dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		dst := filepath.Join(dir, "README.md")
		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				continue
			}
		}

		if err := os.WriteFile(dst, []byte(renderLevelPage(lvl)), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func renderLevelPage(lvl domain.Level) string {
	var b strings.Builder

	b.WriteString("# " + lvl.Label() + "\n\n")
	b.WriteString(lvl.Summary + "\n\n")

	writeSection(&b, "Characteristics", lvl.Characteristics)
	writeSection(&b, "Use Cases", lvl.UseCases)
	writeSection(&b, "Limitations", lvl.Limitations)

	if lvl.HasExample {
		b.WriteString("## Example\n\n")
		b.WriteString("This level ships a runnable example: `adventures agents list` and\n")
		b.WriteString("`adventures run` take it from there.\n\n")
	}

	b.WriteString("[Back to the guide](../README.md)\n")
	return b.String()
}

func writeSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("## " + title + "\n\n")
	for _, it := range items {
		b.WriteString("- " + it + "\n")
	}
	b.WriteString("\n")
}

func ensureGitignore(root string) error {
	const header = "# Agent Adventures"
	entries := []string{
		"reports/",
		".adventures/",
		"profiles/secrets.local.yaml",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
