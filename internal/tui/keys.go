package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/ttt/internal/model"
)

// keysFromMsg translates a terminal key event into logical keys. Pasted
// text arrives as one message and yields one key per rune.
func keysFromMsg(msg tea.KeyMsg) []model.Key {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []model.Key{{Type: model.KeyQuit}}
	case tea.KeyCtrlH, tea.KeyCtrlW:
		return []model.Key{{Type: model.KeyClearWord}}
	case tea.KeyBackspace:
		if msg.Alt {
			return []model.Key{{Type: model.KeyClearWord}}
		}
		return []model.Key{{Type: model.KeyBackspace}}
	case tea.KeySpace:
		return []model.Key{model.RuneKey(' ')}
	case tea.KeyEnter:
		return []model.Key{{Type: model.KeyEnter}}
	case tea.KeyEsc:
		return []model.Key{{Type: model.KeyEsc}}
	case tea.KeyTab:
		return []model.Key{{Type: model.KeyTab}}
	case tea.KeyLeft:
		return []model.Key{{Type: model.KeyLeft}}
	case tea.KeyRight:
		return []model.Key{{Type: model.KeyRight}}
	case tea.KeyUp:
		return []model.Key{{Type: model.KeyUp}}
	case tea.KeyDown:
		return []model.Key{{Type: model.KeyDown}}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		keys := make([]model.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, model.RuneKey(r))
		}
		return keys
	default:
		return nil
	}
}
