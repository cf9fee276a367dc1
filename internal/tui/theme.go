package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/ttt/internal/config"
)

// Default palette.
const (
	colorText    = "#F0F0F0"
	colorError   = "#FF4D4F"
	colorPending = "#8C8C8C"
	colorAccent  = "#C89A3A"
	colorMuted   = "#6E6E6E"
	colorBorder  = "#4A4A4A"
	colorSkipped = "#A05A5A"
	colorExtra   = "#B8323A"
)

// Theme holds every style the interface renders with.
type Theme struct {
	Correct     lipgloss.Style
	Incorrect   lipgloss.Style
	Pending     lipgloss.Style
	CurrentWord lipgloss.Style
	Skipped     lipgloss.Style
	Extra       lipgloss.Style
	Cursor      lipgloss.Style
	Selected    lipgloss.Style
	Editing     lipgloss.Style
	Option      lipgloss.Style
	Accent      lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Card        lipgloss.Style
	CardTitle   lipgloss.Style
	CardValue   lipgloss.Style

	accent string
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return NewTheme(config.ThemeConfig{})
}

// NewTheme builds a theme, replacing default colours with any set in cfg.
// Values are anything lipgloss.Color accepts: hex strings or ANSI numbers.
func NewTheme(cfg config.ThemeConfig) Theme {
	pick := func(v *string, fallback string) lipgloss.Color {
		if v == nil || *v == "" {
			return lipgloss.Color(fallback)
		}
		return lipgloss.Color(*v)
	}
	accent := pick(cfg.Accent, colorAccent)
	muted := pick(cfg.Muted, colorMuted)
	pending := pick(cfg.Pending, colorPending)
	incorrect := pick(cfg.Incorrect, colorError)

	return Theme{
		Correct:     lipgloss.NewStyle().Foreground(pick(cfg.Correct, colorText)),
		Incorrect:   lipgloss.NewStyle().Foreground(incorrect),
		Pending:     lipgloss.NewStyle().Foreground(pending),
		CurrentWord: lipgloss.NewStyle().Foreground(accent),
		Skipped:     lipgloss.NewStyle().Foreground(pick(cfg.Skipped, colorSkipped)).Strikethrough(true),
		Extra:       lipgloss.NewStyle().Foreground(pick(cfg.Extra, colorExtra)),
		Cursor:      lipgloss.NewStyle().Foreground(pick(cfg.Cursor, colorText)).Underline(true),
		Selected:    lipgloss.NewStyle().Foreground(pick(cfg.Selected, colorText)).Bold(true).Underline(true),
		Editing:     lipgloss.NewStyle().Foreground(pick(cfg.Editing, colorAccent)).Bold(true),
		Option:      lipgloss.NewStyle().Foreground(pending),
		Accent:      lipgloss.NewStyle().Foreground(accent),
		Muted:       lipgloss.NewStyle().Foreground(muted),
		Error:       lipgloss.NewStyle().Foreground(incorrect),
		Card: lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)),
		CardTitle: lipgloss.NewStyle().Foreground(pending),
		CardValue: lipgloss.NewStyle().Foreground(pick(cfg.Correct, colorText)).Bold(true),
		accent:    string(accent),
	}
}
