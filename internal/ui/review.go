package ui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/anchorpatch/internal/patch"
	"github.com/five82/anchorpatch/internal/prefs"
)

// Decision is the outcome of the review screen.
type Decision int

const (
	DecisionPending Decision = iota
	DecisionApply
	DecisionDiscard
)

func (d Decision) String() string {
	switch d {
	case DecisionApply:
		return "apply"
	case DecisionDiscard:
		return "discard"
	default:
		return "pending"
	}
}

// ReviewOptions configures the review screen.
type ReviewOptions struct {
	Path   string
	Diff   string
	Report patch.Report
	// Prefs supplies the initial theme; theme changes are saved to PrefsPath.
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the Bubble Tea model of the review screen.
type Model struct {
	opts     ReviewOptions
	theme    Theme
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	decision Decision
}

// NewReview creates the review model.
func NewReview(opts ReviewOptions) Model {
	return Model{
		opts:  opts,
		theme: GetTheme(opts.Prefs.Theme),
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
}

// Decision returns what the user chose.
func (m Model) Decision() Decision {
	return m.decision
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Apply):
			m.decision = DecisionApply
			return m, tea.Quit
		case key.Matches(msg, m.keys.Discard):
			m.decision = DecisionDiscard
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		case key.Matches(msg, m.keys.CycleTheme):
			m.theme = GetTheme(NextTheme(m.theme.Name))
			m.opts.Prefs.Theme = m.theme.Name
			m.refreshContent()
			return m, m.savePrefs()
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading diff..."
	}
	styles := m.theme.Styles()
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Header.Width(m.width).Render(m.headerText()),
		styles.Viewport.Render(m.viewport.View()),
		styles.Footer.Width(m.width).Render(m.help.View(m.keys)),
	)
}

func (m Model) headerText() string {
	r := m.opts.Report
	return fmt.Sprintf("%s  %d/%d rules fired  %d → %d lines  %d%%",
		filepath.Base(m.opts.Path), r.Fired(), len(r.Outcomes), r.LinesIn, r.LinesOut,
		int(m.viewport.ScrollPercent()*100))
}

// resize fits the viewport between the header, the border and the help footer.
func (m *Model) resize() {
	footer := lipgloss.Height(m.help.View(m.keys))
	w := max(m.width-2, 1)
	h := max(m.height-footer-3, 1)
	if !m.ready {
		m.viewport = viewport.New(w, h)
		m.ready = true
		m.refreshContent()
		return
	}
	m.viewport.Width = w
	m.viewport.Height = h
}

func (m *Model) refreshContent() {
	styles := m.theme.Styles()
	content := ColorizeDiff(m.opts.Diff, styles)
	if content == "" {
		content = styles.MutedText.Render("No changes.")
	}
	m.viewport.SetContent(content)
}

func (m Model) savePrefs() tea.Cmd {
	if m.opts.PrefsPath == "" {
		return nil
	}
	path, p := m.opts.PrefsPath, m.opts.Prefs
	return func() tea.Msg {
		_ = prefs.Save(path, p)
		return nil
	}
}

// RunReview shows the diff full screen and blocks until the user applies or
// discards it. A cancelled context counts as discard.
func RunReview(ctx context.Context, opts ReviewOptions, progOpts ...tea.ProgramOption) (Decision, error) {
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, progOpts...)
	final, err := tea.NewProgram(NewReview(opts), progOpts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return DecisionDiscard, nil
		}
		return DecisionDiscard, fmt.Errorf("review: %w", err)
	}
	m, ok := final.(Model)
	if !ok || m.Decision() == DecisionPending {
		return DecisionDiscard, nil
	}
	return m.Decision(), nil
}
