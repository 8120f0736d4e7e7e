package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
)

type screen int

const (
	screenHome screen = iota
	screenLevel
	screenLint
)

type menuItem struct {
	title string
	desc  string

	level  *domain.Level
	action string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type model struct {
	theme Theme
	deps  Deps

	scr  screen
	menu list.Model
	page viewport.Model

	activeLevel domain.Level

	lintRunning bool
	lintReport  domain.LintReport
	lintErr     error
	lintCh      chan lintDoneMsg

	toast string

	workspaceFound bool
	workspaceRoot  string

	width  int
	height int
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	items := make([]list.Item, 0, len(domain.Levels())+3)
	for _, level := range domain.Levels() {
		l := level
		desc := l.Summary
		if l.HasExample {
			desc = "▸ runnable example — " + desc
		}
		items = append(items, menuItem{title: l.Label(), desc: desc, level: &l})
	}
	items = append(items,
		menuItem{title: "Lint guide", desc: "Check documents for broken links and structure problems", action: "lint"},
		menuItem{title: "Init workspace", desc: "Create guide, agents and profiles in the current directory", action: "init"},
		menuItem{title: "Quit", desc: "Exit Agent Adventures", action: "quit"},
	)

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Agent Adventures"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	m := model{
		theme: t,
		deps:  deps,
		scr:   screenHome,
		menu:  l,
		page:  viewport.New(0, 0),
	}

	wd, err := os.Getwd()
	if err == nil && deps.WorkspaceLocator != nil {
		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr == nil {
			m.workspaceFound = true
			m.workspaceRoot = root
		}
	}

	return m
}

func (m model) Init() tea.Cmd { return cmdRefreshWorkspace(m.deps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-10)
		m.page.Width = msg.Width - 8
		m.page.Height = msg.Height - 10
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.scr == screenHome {
				return m, tea.Quit
			}
			m.scr = screenHome
			m.toast = ""
			return m, nil

		case "enter":
			if m.scr == screenHome {
				return m.openSelected()
			}

		case "esc", "b":
			if m.scr != screenHome {
				m.scr = screenHome
				m.toast = ""
				return m, nil
			}

		case "r":
			if m.scr == screenLint && !m.lintRunning {
				return m.startLint()
			}
		}

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.workspaceFound = true
		m.workspaceRoot = msg.root
		m.toast = "Workspace initialized"
		return m, nil

	case levelPageMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			m.scr = screenHome
			return m, nil
		}
		m.activeLevel = msg.level
		m.page.SetContent(msg.rendered)
		m.page.GotoTop()
		m.scr = screenLevel
		return m, nil

	case lintDoneMsg:
		m.lintRunning = false
		m.lintCh = nil
		m.lintErr = msg.err
		m.lintReport = msg.report
		return m, nil
	}

	switch m.scr {
	case screenHome:
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	case screenLevel:
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) openSelected() (tea.Model, tea.Cmd) {
	it, ok := m.menu.SelectedItem().(menuItem)
	if !ok {
		return m, nil
	}

	switch {
	case it.action == "quit":
		return m, tea.Quit

	case it.action == "init":
		wd, err := os.Getwd()
		if err != nil {
			m.toast = "Unexpected error (see logs)"
			return m, nil
		}
		return m, cmdInitWorkspaceHere(m.deps, wd)

	case it.action == "lint":
		return m.startLint()

	case it.level != nil:
		if !m.workspaceFound {
			m.toast = "No workspace found. Run Init workspace first."
			return m, nil
		}
		return m, cmdRenderLevelPage(m.workspaceRoot, *it.level, m.width-8)
	}
	return m, nil
}

func (m model) startLint() (tea.Model, tea.Cmd) {
	if !m.workspaceFound {
		m.toast = "No workspace found. Run Init workspace first."
		return m, nil
	}
	ch, cmd := startLintAsync(m.workspaceRoot, m.deps.Logger)
	m.lintCh = ch
	m.lintRunning = true
	m.lintErr = nil
	m.scr = screenLint
	return m, cmd
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("Agent Adventures") + "\n" +
		m.theme.Subtitle.Render("A field guide to AI agent levels, from fixed automation to self-learning") + "\n"

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		workspaceBanner = m.theme.Card.Render(
			"⚠ No workspace found.\n\nSelect Init workspace to create one here.",
		)
	}

	var toast string
	if m.toast != "" {
		toast = "\n" + m.theme.Subtitle.Render(m.toast)
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • q quit")
		return wrap.Render(header + "\n" + workspaceBanner + toast + "\n\n" + m.theme.Card.Render(m.menu.View()) + "\n" + help)

	case screenLevel:
		help := m.theme.Help.Render("↑/↓ scroll • esc/b back • q home")
		card := m.theme.Card.Render(
			m.theme.Title.Render(m.activeLevel.Label()) + "\n\n" + m.page.View(),
		)
		return wrap.Render(header + "\n" + card + "\n" + help)

	case screenLint:
		var body string
		switch {
		case m.lintRunning:
			body = "Linting guide documents…"
		case m.lintErr != nil:
			body = userMessage(m.lintErr)
		default:
			body = renderLintReport(m.lintReport)
		}
		help := m.theme.Help.Render("r re-run • esc/b back • q home")
		card := m.theme.Card.Render(
			m.theme.Title.Render("Guide lint") + "\n\n" + body,
		)
		return wrap.Render(header + "\n" + card + "\n" + help)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
