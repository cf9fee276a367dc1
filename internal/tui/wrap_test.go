package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/ttt/internal/transcript"
)

func chars(s string, judgments ...transcript.Judgment) []transcript.Char {
	out := make([]transcript.Char, 0, len(judgments))
	for i, r := range []rune(s) {
		j := transcript.Pending
		if i < len(judgments) {
			j = judgments[i]
		}
		out = append(out, transcript.Char{Rune: r, Judgment: j})
	}
	return out
}

func kinds(runes []styledRune) []runeKind {
	out := make([]runeKind, len(runes))
	for i, r := range runes {
		out[i] = r.kind
	}
	return out
}

// plain builds unstyled runes so rendered lines can be compared as text.
func plain(n int) []styledRune {
	runes := buildStyledRunes(Theme{}, chars(strings.Repeat("ab ", n)))
	return runes[:len(runes)-1]
}

func TestBuildStyledRunesCursor(t *testing.T) {
	runes := buildStyledRunes(DefaultTheme(), chars("ab", transcript.Correct, transcript.Cursor))
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].kind != kindCorrect || runes[1].kind != kindCursor {
		t.Fatalf("unexpected kinds %v", kinds(runes))
	}
	if runes[1].s != DefaultTheme().Cursor.Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	runes := buildStyledRunes(DefaultTheme(), chars("one two", transcript.Correct, transcript.Cursor))
	want := []runeKind{kindCorrect, kindCursor, kindCurrent, kindPending, kindPending, kindPending, kindPending}
	got := kinds(runes)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rune %d: expected kind %d, got %d (%v)", i, want[i], got[i], got)
		}
	}
}

func TestBuildStyledRunesCursorOnSeparator(t *testing.T) {
	in := chars("ab cd", transcript.Correct, transcript.Correct, transcript.Cursor)
	got := kinds(buildStyledRunes(DefaultTheme(), in))
	if got[2] != kindCursor || got[3] != kindPending {
		t.Fatalf("next word must not be highlighted before the space is typed: %v", got)
	}
}

func TestBuildStyledRunesJudgments(t *testing.T) {
	in := chars("axz b ", transcript.Correct, transcript.Incorrect, transcript.Extra, transcript.Skipped, transcript.Skipped, transcript.Cursor)
	want := []runeKind{kindCorrect, kindIncorrect, kindExtra, kindSkipped, kindSkipped, kindCursor}
	got := kinds(buildStyledRunes(DefaultTheme(), in))
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rune %d: expected kind %d, got %d", i, want[i], got[i])
		}
	}
}

func TestWrapBreaksAtSpaces(t *testing.T) {
	lines := wrapLines(plain(4), 6)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := renderStyledRunes(lines[0]); got != "ab ab " {
		t.Fatalf("unexpected first line %q", got)
	}
	if got := renderStyledRunes(lines[1]); got != "ab ab" {
		t.Fatalf("unexpected second line %q", got)
	}
}

func TestWrapSplitsLongWords(t *testing.T) {
	runes := buildStyledRunes(Theme{}, chars("abcdefgh"))
	out := wrapStyledRunes(runes, 3)
	if out != "abc\ndef\ngh" {
		t.Fatalf("unexpected wrap %q", out)
	}
}

func TestWrapWideRunes(t *testing.T) {
	runes := buildStyledRunes(DefaultTheme(), chars("日本 語"))
	lines := wrapLines(runes, 4)
	if len(lines) != 2 {
		t.Fatalf("expected wide runes to wrap into 2 lines, got %d", len(lines))
	}
	if lineWidthOf(lines[0]) != 4 {
		t.Fatalf("unexpected first line width %d", lineWidthOf(lines[0]))
	}
}

func TestWindowFollowsCursor(t *testing.T) {
	judgments := make([]transcript.Judgment, 0, 30)
	for i := 0; i < 27; i++ {
		judgments = append(judgments, transcript.Correct)
	}
	judgments = append(judgments, transcript.Cursor)
	runes := buildStyledRunes(Theme{}, chars(strings.Repeat("ab ", 20), judgments...))

	lines := wrapLines(runes, 6)
	if cursorLine(lines) != 4 {
		t.Fatalf("expected cursor on line 4, got %d", cursorLine(lines))
	}
	out := window(runes, 6, 3)
	if n := strings.Count(out, "\n") + 1; n != 3 {
		t.Fatalf("expected 3 visible lines, got %d", n)
	}
	if out != strings.Repeat("ab ab \n", 2)+"ab ab " {
		t.Fatalf("unexpected window %q", out)
	}
}

func TestWindowWithoutCursorShowsTail(t *testing.T) {
	lines := wrapLines(plain(12), 6)
	if cursorLine(lines) != len(lines)-1 {
		t.Fatalf("expected last line without cursor")
	}
	if out := window(plain(2), 6, 3); out != "ab ab" {
		t.Fatalf("short content must be untouched, got %q", out)
	}
}
