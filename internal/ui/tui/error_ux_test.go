package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

func TestUserMessageKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "agent not found",
			err:  &domain.OpError{Op: "yamlagent.load", Kind: domain.KindNotFound, Err: domain.ErrNotFound},
			want: "Agent not found",
		},
		{
			name: "profile not found",
			err:  &domain.OpError{Op: "yamlprofile.load", Kind: domain.KindNotFound, Err: domain.ErrNotFound},
			want: "Profile not found",
		},
		{
			name: "workspace not found",
			err:  &domain.OpError{Op: "workspacefinder.findroot", Kind: domain.KindNotFound, Err: domain.ErrNotFound},
			want: "Workspace not found",
		},
		{
			name: "ollama down",
			err:  &domain.OpError{Op: "ollama.generate", Kind: domain.KindUnavailable, Err: domain.ErrUnavailable},
			want: "Ollama is not reachable (is `ollama serve` running?)",
		},
		{
			name: "missing var",
			err:  &domain.OpError{Op: "vars.resolve", Kind: domain.KindMissingVar, Err: errors.New("missing variable \"city\"")},
			want: "Missing variable city",
		},
		{
			name: "nil",
			err:  nil,
			want: "",
		},
	}

	for _, c := range cases {
		if got := userMessage(c.err); got != c.want {
			t.Errorf("%s: userMessage = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestUserMessageInvalidYAMLWithLine(t *testing.T) {
	err := &domain.OpError{
		Op:   "yamlagent.load",
		Kind: domain.KindInvalidConfig,
		Path: "/ws/agents/broken.yaml",
		Err:  errors.New("yaml: line 7: did not find expected key"),
	}
	got := userMessage(err)
	if got != "Invalid YAML at broken.yaml line 7" {
		t.Errorf("userMessage = %q", got)
	}
}

func TestClampString(t *testing.T) {
	if got := clampString("hello", 10); got != "hello" {
		t.Errorf("short string clamped: %q", got)
	}
	if got := clampString("hello world", 5); got != "hello…" {
		t.Errorf("clamped = %q", got)
	}
	if got := clampString("hello", 0); got != "" {
		t.Errorf("zero max = %q", got)
	}
}

func TestRenderLintReport(t *testing.T) {
	report := domain.LintReport{
		Documents: 4,
		Findings: []domain.Finding{
			{Severity: domain.SeverityError, Path: "README.md", Check: "link-relative", Message: "broken"},
			{Severity: domain.SeverityWarning, Check: "guide-index", Message: "gap"},
		},
	}
	out := renderLintReport(report)
	for _, want := range []string{
		"Documents: 4",
		"Errors: 1",
		"Warnings: 1",
		"✗ README.md — broken",
		"! (guide) — gap",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	clean := renderLintReport(domain.LintReport{Documents: 2})
	if !strings.Contains(clean, "Guide is clean.") {
		t.Errorf("clean output = %q", clean)
	}
}
