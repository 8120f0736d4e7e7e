package mdguide

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

const samplePage = `# Level 1: ReAct

Reason-and-act loops.

## Getting Started

See the [guide index](../README.md) and [setup](#getting-started).
Also try [the docs](https://example.com/docs).

![diagram](img/loop.png)
`

func writeGuide(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func TestParse(t *testing.T) {
	doc := Parse([]byte(samplePage))

	if doc.Title != "Level 1: ReAct" {
		t.Errorf("Title = %q", doc.Title)
	}
	if !doc.StartsWithTitle() {
		t.Error("H1-first document not detected")
	}
	if len(doc.Headings) != 2 || doc.Headings[1].Text != "Getting Started" {
		t.Errorf("headings = %+v", doc.Headings)
	}

	if len(doc.Links) != 4 {
		t.Fatalf("links = %+v", doc.Links)
	}
	kinds := map[string]domain.LinkKind{}
	for _, l := range doc.Links {
		kinds[l.Target] = l.Kind
	}
	if kinds["../README.md"] != domain.LinkRelative {
		t.Errorf("relative link kind = %q", kinds["../README.md"])
	}
	if kinds["#getting-started"] != domain.LinkAnchor {
		t.Errorf("anchor link kind = %q", kinds["#getting-started"])
	}
	if kinds["https://example.com/docs"] != domain.LinkExternal {
		t.Errorf("external link kind = %q", kinds["https://example.com/docs"])
	}
	if kinds["img/loop.png"] != domain.LinkRelative {
		t.Errorf("image link kind = %q", kinds["img/loop.png"])
	}
}

func TestLoadDocument(t *testing.T) {
	root := writeGuide(t, map[string]string{"01-ReAct/README.md": samplePage})
	loader := NewLoader(root)

	doc, err := loader.LoadDocument("01-ReAct/README.md")
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if doc.Path != "01-ReAct/README.md" {
		t.Errorf("Path = %q", doc.Path)
	}
	if doc.Title != "Level 1: ReAct" {
		t.Errorf("Title = %q", doc.Title)
	}

	if _, err := loader.LoadDocument("missing.md"); !domain.IsKind(err, domain.KindNotFound) {
		t.Errorf("missing doc: %v", err)
	}
}

func TestListDocuments(t *testing.T) {
	root := writeGuide(t, map[string]string{
		"README.md":           "# Guide\n",
		"01-ReAct/README.md":  samplePage,
		"01-ReAct/notes.txt":  "not markdown",
		".cache/stale.md":     "# hidden\n",
		"00-LLM-Enhanced/README.md": "# Level 0\n",
	})

	refs, err := NewLoader(root).ListDocuments("")
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}

	var paths []string
	for _, r := range refs {
		paths = append(paths, r.Path)
	}
	want := []string{"00-LLM-Enhanced/README.md", "01-ReAct/README.md", "README.md"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}
