// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/ttt/internal/transcript"
)

type runeKind int

const (
	kindPending runeKind = iota
	kindCurrent
	kindCorrect
	kindIncorrect
	kindExtra
	kindSkipped
	kindCursor
)

type styledRune struct {
	s       string
	kind    runeKind
	width   int
	isSpace bool
}

func (t Theme) style(kind runeKind) lipgloss.Style {
	switch kind {
	case kindCurrent:
		return t.CurrentWord
	case kindCorrect:
		return t.Correct
	case kindIncorrect:
		return t.Incorrect
	case kindExtra:
		return t.Extra
	case kindSkipped:
		return t.Skipped
	case kindCursor:
		return t.Cursor
	default:
		return t.Pending
	}
}

func kindOf(j transcript.Judgment) runeKind {
	switch j {
	case transcript.Correct:
		return kindCorrect
	case transcript.Incorrect:
		return kindIncorrect
	case transcript.Extra:
		return kindExtra
	case transcript.Skipped:
		return kindSkipped
	case transcript.Cursor:
		return kindCursor
	default:
		return kindPending
	}
}

// buildStyledRunes styles the flattened transcript. Pending characters of
// the word under the cursor are highlighted.
func buildStyledRunes(theme Theme, chars []transcript.Char) []styledRune {
	out := make([]styledRune, 0, len(chars))
	inCurrent := false
	for _, c := range chars {
		kind := kindOf(c.Judgment)
		switch {
		case kind == kindCursor:
			inCurrent = c.Rune != ' '
		case c.Rune == ' ':
			inCurrent = false
		case inCurrent && kind == kindPending:
			kind = kindCurrent
		}
		out = append(out, styledRune{
			s:       theme.style(kind).Render(string(c.Rune)),
			kind:    kind,
			width:   runewidth.RuneWidth(c.Rune),
			isSpace: c.Rune == ' ',
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapLines breaks runes into lines at the last space that fits in width,
// or mid-word when a word is wider than a line. Spaces stay at the end of
// the line they close so separator styling remains visible.
func wrapLines(runes []styledRune, width int) [][]styledRune {
	if width <= 0 {
		return [][]styledRune{runes}
	}
	var lines [][]styledRune
	line := make([]styledRune, 0, width)
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				lines = append(lines, line[:lastSpaceIdx+1])
				line = append(make([]styledRune, 0, width), line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				lines = append(lines, line)
				line = make([]styledRune, 0, width)
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	return append(lines, line)
}

func wrapStyledRunes(runes []styledRune, width int) string {
	return window(runes, width, 0)
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}

// cursorLine returns the index of the line holding the cursor, or the last
// line when there is none.
func cursorLine(lines [][]styledRune) int {
	for i, line := range lines {
		for _, item := range line {
			if item.kind == kindCursor {
				return i
			}
		}
	}
	return max(len(lines)-1, 0)
}

// window renders at most n lines starting one line above the cursor so
// long buffers scroll instead of overflowing the screen.
func window(runes []styledRune, width, n int) string {
	lines := wrapLines(runes, width)
	if n > 0 && len(lines) > n {
		start := max(cursorLine(lines)-1, 0)
		start = min(start, len(lines)-n)
		lines = lines[start : start+n]
	}
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = renderStyledRunes(line)
	}
	return strings.Join(rendered, "\n")
}
