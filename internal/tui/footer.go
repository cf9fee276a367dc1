package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/ttt/internal/mode"
)

func newHelp(theme Theme) help.Model {
	h := help.New()
	h.ShortSeparator = "  ·  "
	h.Styles.ShortKey = theme.Accent
	h.Styles.ShortDesc = theme.Muted
	h.Styles.ShortSeparator = theme.Muted
	h.Styles.Ellipsis = theme.Muted
	return h
}

func bindings(hints []mode.Hint) []key.Binding {
	out := make([]key.Binding, 0, len(hints))
	for _, h := range hints {
		out = append(out, key.NewBinding(key.WithKeys(h.Key), key.WithHelp(h.Key, h.Desc)))
	}
	return out
}

func (m *Model) renderFooter() string {
	m.help.Width = m.width
	return m.help.ShortHelpView(bindings(m.app.Hints()))
}
