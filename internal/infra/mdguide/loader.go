// Package mdguide loads guide Markdown documents from the filesystem.
package mdguide

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

// The parser configuration never changes and the goldmark Parser is safe
// to share; actual parsing creates per-call state via Parse(reader).
var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func parser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return parserInstance
}

type Loader struct {
	guideRoot string
}

// NewLoader creates a loader rooted at the workspace guide directory.
func NewLoader(guideRoot string) *Loader {
	return &Loader{guideRoot: filepath.Clean(guideRoot)}
}

var _ ports.GuideLoader = (*Loader)(nil)

// LoadDocument parses one Markdown file. path is relative to the guide root
// (slash-separated) or absolute.
func (l *Loader) LoadDocument(path string) (domain.Document, error) {
	abs := path
	rel := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(l.guideRoot, filepath.FromSlash(path))
	} else if r, err := filepath.Rel(l.guideRoot, abs); err == nil {
		rel = filepath.ToSlash(r)
	}

	src, err := os.ReadFile(abs)
	if err != nil {
		return domain.Document{}, &domain.OpError{
			Op:   "mdguide.load",
			Kind: domain.KindNotFound,
			Path: abs,
			Err:  err,
		}
	}

	doc := Parse(src)
	doc.Path = filepath.ToSlash(rel)
	return doc, nil
}

// ListDocuments walks the guide root and returns every Markdown file,
// sorted by relative path.
func (l *Loader) ListDocuments(guideRoot string) ([]domain.DocumentRef, error) {
	root := guideRoot
	if strings.TrimSpace(root) == "" {
		root = l.guideRoot
	}

	var refs []domain.DocumentRef
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Dot-dirs are workspace internals, not guide content.
			if strings.HasPrefix(d.Name(), ".") && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		refs = append(refs, domain.DocumentRef{
			Path:    filepath.ToSlash(rel),
			AbsPath: p,
		})
		return nil
	})
	if err != nil {
		return nil, &domain.OpError{
			Op:   "mdguide.list",
			Kind: domain.KindNotFound,
			Path: root,
			Err:  err,
		}
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Path < refs[j].Path })
	return refs, nil
}

// Parse extracts the heading and link structure from Markdown source.
func Parse(src []byte) domain.Document {
	reader := text.NewReader(src)
	root := parser().Parser().Parse(reader)

	doc := domain.Document{Size: len(src)}

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			h := domain.Heading{
				Level: node.Level,
				Text:  nodeText(node, src),
			}
			doc.Headings = append(doc.Headings, h)
			if doc.Title == "" && h.Level == 1 {
				doc.Title = h.Text
			}

		case *ast.Link:
			target := string(node.Destination)
			doc.Links = append(doc.Links, domain.Link{
				Target: target,
				Kind:   domain.ClassifyLink(target),
				Text:   nodeText(node, src),
			})

		case *ast.Image:
			target := string(node.Destination)
			doc.Links = append(doc.Links, domain.Link{
				Target: target,
				Kind:   domain.ClassifyLink(target),
			})
		}

		return ast.WalkContinue, nil
	})

	return doc
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Value(src))
			continue
		}
		b.WriteString(nodeText(c, src))
	}
	return strings.TrimSpace(b.String())
}
