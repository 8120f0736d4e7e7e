package usecase

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

// externalProbeLimit bounds concurrent external link probes.
const externalProbeLimit = 8

type LintGuide struct {
	guide  ports.GuideLoader
	prober ports.LinkProber
}

type LintOption func(*LintGuide)

// WithLinkProber enables external link checking.
func WithLinkProber(p ports.LinkProber) LintOption {
	return func(uc *LintGuide) {
		uc.prober = p
	}
}

func NewLintGuide(gl ports.GuideLoader, opts ...LintOption) *LintGuide {
	uc := &LintGuide{guide: gl}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute lints every document under guideRoot. Checks: each document
// starts with an H1, relative links resolve to existing files, anchors
// match a heading in the target document, every level directory carries a
// README, and the root index links every level. External links are only
// probed when a prober is configured.
func (uc *LintGuide) Execute(ctx context.Context, guideRoot string) (domain.LintReport, error) {
	refs, err := uc.guide.ListDocuments(guideRoot)
	if err != nil {
		return domain.LintReport{}, err
	}

	docs := make(map[string]domain.Document, len(refs))
	order := make([]string, 0, len(refs))
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return domain.LintReport{}, err
		}
		doc, err := uc.guide.LoadDocument(ref.AbsPath)
		if err != nil {
			return domain.LintReport{}, err
		}
		doc.Path = ref.Path
		docs[ref.Path] = doc
		order = append(order, ref.Path)
	}

	report := domain.LintReport{Documents: len(docs)}

	for _, p := range order {
		doc := docs[p]
		report.Findings = append(report.Findings, lintTitle(doc)...)
		report.Findings = append(report.Findings, uc.lintRelativeLinks(guideRoot, doc, docs)...)
	}

	report.Findings = append(report.Findings, lintLevelReadmes(docs)...)
	report.Findings = append(report.Findings, lintRootIndex(docs)...)

	if uc.prober != nil {
		findings, err := uc.probeExternalLinks(ctx, order, docs)
		if err != nil {
			return domain.LintReport{}, err
		}
		report.Findings = append(report.Findings, findings...)
	}

	return report, nil
}

func lintTitle(doc domain.Document) []domain.Finding {
	if doc.StartsWithTitle() {
		return nil
	}
	msg := "first heading must be a top-level title (#)"
	if len(doc.Headings) == 0 {
		msg = "document has no headings"
	}
	return []domain.Finding{{
		Severity: domain.SeverityError,
		Path:     doc.Path,
		Check:    "doc-title",
		Message:  msg,
	}}
}

func (uc *LintGuide) lintRelativeLinks(guideRoot string, doc domain.Document, docs map[string]domain.Document) []domain.Finding {
	var findings []domain.Finding

	for _, link := range doc.Links {
		switch link.Kind {
		case domain.LinkAnchor:
			if f := checkAnchor(doc, doc, link.Target); f != nil {
				findings = append(findings, *f)
			}
		case domain.LinkRelative:
			findings = append(findings, checkRelative(guideRoot, doc, docs, link)...)
		}
	}

	return findings
}

// checkRelative resolves a relative link target against the document's
// directory. Markdown targets must be listed guide documents; directory
// targets must carry a README; anything else just has to exist on disk.
func checkRelative(guideRoot string, doc domain.Document, docs map[string]domain.Document, link domain.Link) []domain.Finding {
	target, anchor := splitAnchor(link.Target)
	if target == "" {
		// Pure in-page anchor already handled as LinkAnchor.
		return nil
	}

	resolved := path.Clean(path.Join(path.Dir(doc.Path), target))
	if strings.HasPrefix(resolved, "..") {
		return []domain.Finding{{
			Severity: domain.SeverityError,
			Path:     doc.Path,
			Check:    "link-relative",
			Message:  fmt.Sprintf("link %q escapes the guide root", link.Target),
		}}
	}

	if strings.HasSuffix(resolved, ".md") {
		targetDoc, ok := docs[resolved]
		if !ok {
			return []domain.Finding{{
				Severity: domain.SeverityError,
				Path:     doc.Path,
				Check:    "link-relative",
				Message:  fmt.Sprintf("link %q points to a missing document", link.Target),
			}}
		}
		if anchor != "" {
			if f := checkAnchor(doc, targetDoc, "#"+anchor); f != nil {
				return []domain.Finding{*f}
			}
		}
		return nil
	}

	abs := filepath.Join(guideRoot, filepath.FromSlash(resolved))
	info, err := os.Stat(abs)
	if err != nil {
		return []domain.Finding{{
			Severity: domain.SeverityError,
			Path:     doc.Path,
			Check:    "link-relative",
			Message:  fmt.Sprintf("link %q points to a missing file", link.Target),
		}}
	}
	if info.IsDir() {
		if _, ok := docs[path.Join(resolved, "README.md")]; !ok {
			return []domain.Finding{{
				Severity: domain.SeverityError,
				Path:     doc.Path,
				Check:    "link-relative",
				Message:  fmt.Sprintf("directory link %q has no README.md", link.Target),
			}}
		}
	}
	return nil
}

// checkAnchor verifies that target has a heading matching the anchor,
// using GitHub-style heading slugs.
func checkAnchor(doc, target domain.Document, raw string) *domain.Finding {
	anchor := strings.TrimPrefix(raw, "#")
	if anchor == "" {
		return nil
	}
	for _, h := range target.Headings {
		if headingSlug(h.Text) == anchor {
			return nil
		}
	}
	return &domain.Finding{
		Severity: domain.SeverityWarning,
		Path:     doc.Path,
		Check:    "link-anchor",
		Message:  fmt.Sprintf("anchor %q does not match a heading in %s", raw, target.Path),
	}
}

func lintLevelReadmes(docs map[string]domain.Document) []domain.Finding {
	var findings []domain.Finding
	for _, level := range domain.Levels() {
		readme := path.Join(level.Dir, "README.md")
		if _, ok := docs[readme]; !ok {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityError,
				Check:    "level-readme",
				Message:  fmt.Sprintf("%s is missing %s", level.Label(), readme),
			})
		}
	}
	return findings
}

// lintRootIndex checks that the guide index links every level directory.
func lintRootIndex(docs map[string]domain.Document) []domain.Finding {
	index, ok := docs["README.md"]
	if !ok {
		return []domain.Finding{{
			Severity: domain.SeverityError,
			Check:    "guide-index",
			Message:  "guide has no README.md index",
		}}
	}

	linked := make(map[string]bool)
	for _, link := range index.Links {
		if link.Kind != domain.LinkRelative {
			continue
		}
		target, _ := splitAnchor(link.Target)
		target = strings.TrimSuffix(path.Clean(target), "/README.md")
		linked[strings.TrimSuffix(target, "/")] = true
	}

	var findings []domain.Finding
	for _, level := range domain.Levels() {
		if !linked[level.Dir] {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityWarning,
				Path:     index.Path,
				Check:    "guide-index",
				Message:  fmt.Sprintf("index does not link %s (%s)", level.Label(), level.Dir),
			})
		}
	}
	return findings
}

// probeExternalLinks checks each distinct external URL once, with bounded
// concurrency. Unreachable URLs and 4xx/5xx statuses are warnings; the
// guide must stay usable offline.
func (uc *LintGuide) probeExternalLinks(ctx context.Context, order []string, docs map[string]domain.Document) ([]domain.Finding, error) {
	type site struct {
		url  string
		path string
	}

	seen := make(map[string]bool)
	var sites []site
	for _, p := range order {
		for _, link := range docs[p].Links {
			if link.Kind != domain.LinkExternal || strings.HasPrefix(link.Target, "mailto:") {
				continue
			}
			if seen[link.Target] {
				continue
			}
			seen[link.Target] = true
			sites = append(sites, site{url: link.Target, path: p})
		}
	}

	var mu sync.Mutex
	var findings []domain.Finding

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(externalProbeLimit)
	for _, s := range sites {
		g.Go(func() error {
			status, err := uc.prober.Probe(ctx, s.url)
			var msg string
			switch {
			case err != nil:
				msg = fmt.Sprintf("external link %q unreachable: %v", s.url, err)
			case status >= 400:
				msg = fmt.Sprintf("external link %q returned %d", s.url, status)
			default:
				return nil
			}
			mu.Lock()
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityWarning,
				Path:     s.path,
				Check:    "link-external",
				Message:  msg,
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Path != findings[j].Path {
			return findings[i].Path < findings[j].Path
		}
		return findings[i].Message < findings[j].Message
	})
	return findings, nil
}

func splitAnchor(target string) (file, anchor string) {
	if i := strings.Index(target, "#"); i >= 0 {
		return target[:i], target[i+1:]
	}
	return target, ""
}

// headingSlug approximates GitHub's anchor slugs: lowercase, spaces to
// hyphens, underscores kept, other punctuation dropped.
func headingSlug(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteByte('-')
		}
	}
	return b.String()
}
