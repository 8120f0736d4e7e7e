package domain

import "strings"

// LinkKind classifies a Markdown link destination.
type LinkKind string

const (
	LinkRelative LinkKind = "relative"
	LinkExternal LinkKind = "external"
	LinkAnchor   LinkKind = "anchor"
)

// Link is a single link found in a guide document.
type Link struct {
	// Target is the raw destination as written in the source.
	Target string
	Kind   LinkKind
	// Text is the rendered link text (may be empty for image links).
	Text string
}

// Heading is a single heading found in a guide document.
type Heading struct {
	Level int
	Text  string
}

// Document is one Markdown file of the guide.
type Document struct {
	// Path is relative to the workspace guide root, slash-separated.
	Path string

	// Title is the text of the first top-level heading, if any.
	Title string

	Headings []Heading
	Links    []Link

	Size int
}

// StartsWithTitle reports whether the document's first heading is an H1.
func (d Document) StartsWithTitle() bool {
	if len(d.Headings) == 0 {
		return false
	}
	return d.Headings[0].Level == 1
}

// DocumentRef is a lightweight reference to a guide document on disk.
type DocumentRef struct {
	// Path is relative to the guide root, slash-separated.
	Path string
	// AbsPath is the absolute filesystem path.
	AbsPath string
}

// ClassifyLink derives the LinkKind for a raw Markdown destination.
func ClassifyLink(target string) LinkKind {
	t := strings.TrimSpace(target)
	switch {
	case strings.HasPrefix(t, "#"):
		return LinkAnchor
	case strings.HasPrefix(t, "http://"), strings.HasPrefix(t, "https://"), strings.HasPrefix(t, "mailto:"):
		return LinkExternal
	default:
		return LinkRelative
	}
}

// Severity grades a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single lint result for the guide.
type Finding struct {
	Severity Severity
	// Path of the document the finding belongs to (relative to guide root),
	// or "" for workspace-level findings.
	Path    string
	Check   string
	Message string
}

// LintReport aggregates lint findings for one pass over the guide.
type LintReport struct {
	Documents int
	Findings  []Finding
}

// Errors counts error-severity findings.
func (r LintReport) Errors() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Warnings counts warning-severity findings.
func (r LintReport) Warnings() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}
