package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/ttt/internal/app"
	"github.com/verte-zerg/ttt/internal/stats"
)

const (
	tickInterval   = 100 * time.Millisecond
	typingLines    = 3
	plotHeight     = 8
	defaultWidth   = 80
	contentPercent = 0.70
)

type tickMsg time.Time

// Model implements the Bubble Tea typing UI over an app.App.
type Model struct {
	app   *app.App
	theme Theme
	bar   progress.Model
	help  help.Model

	width  int
	height int
}

// NewModel constructs a typing TUI model.
func NewModel(a *app.App, theme Theme) *Model {
	return &Model{
		app:   a,
		theme: theme,
		bar: progress.New(
			progress.WithSolidFill(theme.accent),
			progress.WithoutPercentage(),
		),
		help: newHelp(theme),
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.app.Tick()
		return m, tick()
	case tea.KeyMsg:
		for _, k := range keysFromMsg(msg) {
			m.app.HandleKey(k)
			if m.app.ShouldQuit() {
				return m, tea.Quit
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) contentWidth() int {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	return max(int(float64(width)*contentPercent), 1)
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.app.State() {
	case app.StateHome:
		body = m.renderHome()
	case app.StateRunning:
		body = m.renderRunning()
	case app.StateComplete:
		body = m.renderComplete()
	}
	content := lipgloss.NewStyle().Width(m.contentWidth()).Render(body)
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	view := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return view + "\n" + footerLine
}

func (m *Model) renderTyping() string {
	runes := buildStyledRunes(m.theme, m.app.Characters())
	return window(runes, m.contentWidth(), typingLines)
}

func (m *Model) renderHome() string {
	lines := []string{m.renderOptions(), "", m.renderTyping()}
	if err := m.app.Err(); err != nil {
		lines = append(lines, "", m.theme.Error.Render(fmt.Sprintf("error: %v", err)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderOptions() string {
	bar := m.app.Options()
	name := bar.Mode
	var modeLabel string
	switch {
	case bar.ModeEditing:
		modeLabel = m.theme.Editing.Render("‹ " + name + " ›")
	case bar.ModeFocused:
		modeLabel = m.theme.Selected.Render(name)
	default:
		modeLabel = m.theme.Accent.Render(name)
	}
	parts := []string{modeLabel}
	for _, item := range bar.Items {
		var label string
		switch {
		case item.Editing:
			label = m.theme.Editing.Render("‹ " + item.Label + " ›")
		case item.Focused:
			label = m.theme.Selected.Render(item.Label)
		case item.Active:
			label = m.theme.Accent.Render(item.Label)
		default:
			label = m.theme.Option.Render(item.Label)
		}
		parts = append(parts, label)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + m.theme.Muted.Render("  │  ") + strings.Join(parts[1:], "  ")
}

func (m *Model) renderRunning() string {
	live := m.app.Stats()
	header := m.theme.Accent.Render(m.app.Progress())
	if live.WPM > 0 {
		header += m.theme.Muted.Render(fmt.Sprintf("  %.0f wpm", live.WPM))
	}
	lines := []string{header, "", m.renderTyping()}
	if done := m.app.Completion(); done >= 0 {
		m.bar.Width = m.contentWidth()
		lines = append(lines, "", m.bar.ViewAs(min(done, 1)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderComplete() string {
	result, ok := m.app.Result()
	if !ok {
		return ""
	}
	title := m.theme.Accent.Render(result.Mode)
	if result.Detail != "" {
		title += m.theme.Muted.Render(" " + result.Detail)
	}
	if result.Text != "" {
		title += m.theme.Muted.Render(" · " + result.Text)
	}
	lines := []string{title, "", m.renderCards(result)}
	chart := stats.Chart(result.Series, stats.ChartOptions{
		Width:  stats.PlotWidthFor(m.contentWidth()),
		Height: plotHeight,
		Color:  os.Getenv("NO_COLOR") == "",
	})
	if len(chart) > 0 {
		lines = append(lines, "", strings.Join(chart, "\n"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderCards(result stats.Result) string {
	c := result.Counts
	cards := []string{
		m.metricCard("WPM", fmt.Sprintf("%.1f", result.Stats.WPM)),
		m.metricCard("Raw", fmt.Sprintf("%.1f", result.Stats.RawWPM)),
		m.metricCard("Accuracy", fmt.Sprintf("%.1f%%", result.Stats.Accuracy)),
		m.metricCard("Time", fmt.Sprintf("%.1fs", result.Stats.Duration.Seconds())),
		m.metricCard("Chars", fmt.Sprintf("%d/%d/%d/%d", c.Correct, c.Incorrect, c.Extra, c.Skipped)),
	}
	if m.contentWidth() < 60 {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", m.theme.CardTitle.Render(label), m.theme.CardValue.Render(value))
	return m.theme.Card.Render(content)
}
