package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/mdguide"
	"github.com/erinmikailstaples/Agent-Adventures/internal/infra/workspacefinder"
	"github.com/erinmikailstaples/Agent-Adventures/internal/usecase"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root}, true)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

// cmdRenderLevelPage reads a level's README and renders it for the
// terminal. The raw source is shown when rendering fails; a missing page
// is an error the level screen explains.
func cmdRenderLevelPage(root string, level domain.Level, width int) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return levelPageMsg{level: level, err: err}
		}

		path := filepath.Join(root, cfg.Paths.GuideDir, level.Dir, "README.md")
		raw, err := os.ReadFile(path)
		if err != nil {
			return levelPageMsg{level: level, err: err}
		}

		if width <= 0 {
			width = 80
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return levelPageMsg{level: level, rendered: string(raw)}
		}
		rendered, err := renderer.Render(string(raw))
		if err != nil {
			return levelPageMsg{level: level, rendered: string(raw)}
		}
		return levelPageMsg{level: level, rendered: rendered}
	}
}

func listenLint(ch <-chan lintDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return lintDoneMsg{err: errors.New("lint channel closed")}
		}
		return msg
	}
}

// startLintAsync runs the guide linter off the update loop and delivers
// the report as a message.
func startLintAsync(workspaceRoot string, log *slog.Logger) (chan lintDoneMsg, tea.Cmd) {
	ch := make(chan lintDoneMsg, 1)

	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("lint.start", "workspace", workspaceRoot)

		cfg, err := workspacefinder.LoadConfig(workspaceRoot)
		if err != nil {
			log.Error("lint.load_config.failed", "err", err)
			ch <- lintDoneMsg{err: err}
			return
		}

		guideRoot := filepath.Join(workspaceRoot, cfg.Paths.GuideDir)
		uc := usecase.NewLintGuide(mdguide.NewLoader(guideRoot))

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		report, execErr := uc.Execute(ctx, guideRoot)
		if execErr != nil {
			log.Error("lint.failed", "err", execErr)
		} else {
			log.Info("lint.ok",
				"documents", report.Documents,
				"errors", report.Errors(),
				"warnings", report.Warnings(),
			)
		}

		ch <- lintDoneMsg{report: report, err: execErr}
	}()

	return ch, listenLint(ch)
}
