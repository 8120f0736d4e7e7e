package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderLintReport(report domain.LintReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Documents: %d   Errors: %d   Warnings: %d\n\n",
		report.Documents, report.Errors(), report.Warnings())

	if len(report.Findings) == 0 {
		b.WriteString("Guide is clean.\n")
		return b.String()
	}

	for _, f := range report.Findings {
		mark := "✗"
		if f.Severity == domain.SeverityWarning {
			mark = "!"
		}
		path := f.Path
		if path == "" {
			path = "(guide)"
		}
		fmt.Fprintf(&b, "%s %s — %s\n", mark, path, clampString(f.Message, 100))
	}

	return b.String()
}
