package model

// KeyType identifies a logical key, independent of the terminal encoding.
type KeyType int

// Logical keys delivered by the input source.
const (
	KeyNone KeyType = iota
	KeyRune
	KeySpace
	KeyBackspace
	KeyClearWord
	KeyEnter
	KeyEsc
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyQuit
)

// Key is a single input event.
type Key struct {
	Type KeyType
	Rune rune
}

// RuneKey builds a printable key. A space rune maps to KeySpace.
func RuneKey(r rune) Key {
	if r == ' ' {
		return Key{Type: KeySpace, Rune: ' '}
	}
	return Key{Type: KeyRune, Rune: r}
}

// Keys builds one key per rune of s, handy for replaying typed text.
func Keys(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, RuneKey(r))
	}
	return keys
}

// Printable reports whether the key produces a character.
func (k Key) Printable() bool {
	return k.Type == KeyRune || k.Type == KeySpace
}
