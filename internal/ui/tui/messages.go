package tui

import "github.com/erinmikailstaples/Agent-Adventures/internal/domain"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type levelPageMsg struct {
	level    domain.Level
	rendered string
	err      error
}

type lintDoneMsg struct {
	report domain.LintReport
	err    error
}
