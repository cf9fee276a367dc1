package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/ttt/internal/model"
)

func typeString(t *Transcript, s string) {
	for _, r := range s {
		t.Type(r)
	}
}

func judgments(chars []Char) []Judgment {
	out := make([]Judgment, len(chars))
	for i, c := range chars {
		out[i] = c.Judgment
	}
	return out
}

func TestInitializeAllPending(t *testing.T) {
	tr := New([]string{"ab", "c"})
	chars := tr.Characters()
	require.Len(t, chars, 4)
	assert.Equal(t, []Judgment{Cursor, Pending, Pending, Pending}, judgments(chars))
	assert.Equal(t, "ab c", runesOf(chars))
	assert.Equal(t, 0, tr.CursorWordIndex())
	assert.Equal(t, 0, tr.CursorCharIndex())
	assert.False(t, tr.IsComplete(0))
}

func runesOf(chars []Char) string {
	rs := make([]rune, len(chars))
	for i, c := range chars {
		rs[i] = c.Rune
	}
	return string(rs)
}

func TestTypeWithMistake(t *testing.T) {
	tr := New([]string{"the", "cat"})
	typeString(tr, "the cet")

	chars := tr.Characters()
	assert.Equal(t, []Judgment{
		Correct, Correct, Correct, Correct,
		Correct, Incorrect, Correct,
	}, judgments(chars))
	assert.True(t, tr.IsComplete(0))
	assert.Equal(t, model.Counts{Correct: 5, Incorrect: 1}, tr.Counts())
}

func TestTypeRejectedAfterComplete(t *testing.T) {
	tr := New([]string{"ab"})
	typeString(tr, "ab")
	require.True(t, tr.IsComplete(0))

	assert.False(t, tr.Type('c'))
	assert.False(t, tr.Backspace())
	assert.False(t, tr.ClearWord())
	assert.Equal(t, model.Counts{Correct: 2}, tr.Counts())
}

func TestExtraCharacters(t *testing.T) {
	tr := New([]string{"the", "cat"})
	typeString(tr, "thee")

	chars := tr.Characters()
	assert.Equal(t, "thee", runesOf(chars[:4]))
	assert.Equal(t, Extra, chars[3].Judgment)
	assert.Equal(t, Cursor, chars[4].Judgment, "cursor sits on the separator")
	assert.Equal(t, 1, tr.Counts().Extra)

	require.True(t, tr.Space())
	assert.Equal(t, 1, tr.CursorWordIndex())
	assert.Equal(t, Correct, tr.Characters()[4].Judgment)
}

func TestSpaceWithNothingTyped(t *testing.T) {
	tr := New([]string{"the", "cat"})
	assert.False(t, tr.Space())
	assert.Equal(t, 0, tr.CursorWordIndex())
	assert.Equal(t, model.Counts{}, tr.Counts())
}

func TestSpaceSkipsRemainder(t *testing.T) {
	tr := New([]string{"hello", "go"})
	typeString(tr, "he ")

	chars := tr.Characters()
	assert.Equal(t, []Judgment{
		Correct, Correct, Skipped, Skipped, Skipped, Skipped,
		Cursor, Pending,
	}, judgments(chars))
	assert.Equal(t, model.Counts{Correct: 2, Skipped: 3}, tr.Counts())
}

func TestBackspaceWithinWord(t *testing.T) {
	tr := New([]string{"the"})
	typeString(tr, "tx")
	require.True(t, tr.Backspace())

	chars := tr.Characters()
	assert.Equal(t, []Judgment{Correct, Cursor, Pending}, judgments(chars))
	assert.Equal(t, 1, tr.CursorCharIndex())
}

func TestBackspaceRemovesExtra(t *testing.T) {
	tr := New([]string{"ab", "c"})
	typeString(tr, "abxy")
	require.True(t, tr.Backspace())

	assert.Equal(t, 1, tr.Counts().Extra)
	assert.Equal(t, 3, tr.CursorCharIndex())
}

func TestBackspaceAtStartWithoutRevisit(t *testing.T) {
	tr := New([]string{"ab", "cd"})
	typeString(tr, "ax ")
	assert.False(t, tr.Backspace())
	assert.Equal(t, 1, tr.CursorWordIndex())
}

func TestBackspaceRevisitsErrorfulWord(t *testing.T) {
	tr := New([]string{"ab", "cd"}, WithRevisit(true))
	typeString(tr, "ax ")
	require.True(t, tr.Backspace())
	assert.Equal(t, 0, tr.CursorWordIndex())
	assert.Equal(t, 2, tr.CursorCharIndex())

	require.True(t, tr.Backspace())
	typeString(tr, "b ")
	assert.Equal(t, model.Counts{Correct: 2}, tr.Counts())
	assert.Equal(t, 1, tr.CursorWordIndex())
}

func TestBackspaceDoesNotRevisitCorrectWord(t *testing.T) {
	tr := New([]string{"ab", "cd"}, WithRevisit(true))
	typeString(tr, "ab ")
	assert.False(t, tr.Backspace())
	assert.Equal(t, 1, tr.CursorWordIndex())
}

func TestBackspaceDoesNotRevisitSkippedWord(t *testing.T) {
	tr := New([]string{"abc", "cd"}, WithRevisit(true))
	typeString(tr, "x ")
	assert.False(t, tr.Backspace())
	assert.Equal(t, model.Counts{Incorrect: 1, Skipped: 2}, tr.Counts())
}

func TestClearWord(t *testing.T) {
	tr := New([]string{"hello", "go"})
	typeString(tr, "hexlooo")
	require.True(t, tr.ClearWord())

	assert.Equal(t, model.Counts{}, tr.Counts())
	assert.Equal(t, 0, tr.CursorCharIndex())
	assert.Equal(t, Cursor, tr.Characters()[0].Judgment)
}

func TestSkipCurrentWord(t *testing.T) {
	tr := New([]string{"ab", "cd"})
	require.True(t, tr.SkipCurrentWord())
	chars := tr.Characters()
	assert.Equal(t, []Judgment{Skipped, Skipped, Skipped, Cursor, Pending}, judgments(chars))

	require.True(t, tr.SkipCurrentWord())
	assert.True(t, tr.IsComplete(0))
	assert.False(t, tr.SkipCurrentWord())
}

func TestIsCompleteBound(t *testing.T) {
	tr := New([]string{"a", "b", "c"})
	typeString(tr, "a ")
	assert.False(t, tr.IsComplete(2))
	typeString(tr, "b")
	assert.True(t, tr.IsComplete(2))
	assert.False(t, tr.IsComplete(0))
}

func TestExtend(t *testing.T) {
	tr := New([]string{"a"})
	tr.Extend([]string{"b", "", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, tr.Words())
	assert.Equal(t, 3, tr.Len())
}

func TestCharactersInvariants(t *testing.T) {
	tr := New([]string{"quick", "brown", "fox", "jumps"}, WithRevisit(true))
	inputs := []string{"qu", "ick", " brw", " ", "fo", "xx", " j"}
	for _, in := range inputs {
		typeString(tr, in)

		chars := tr.Characters()
		cursor := -1
		for i, c := range chars {
			if c.Judgment == Cursor {
				require.Equal(t, -1, cursor, "single cursor")
				cursor = i
			}
		}
		require.GreaterOrEqual(t, cursor, 0)
		for _, c := range chars[:cursor] {
			assert.NotEqual(t, Pending, c.Judgment)
		}
		for _, c := range chars[cursor+1:] {
			assert.Equal(t, Pending, c.Judgment)
		}
	}
}

func TestInitializeResets(t *testing.T) {
	tr := New([]string{"ab"})
	typeString(tr, "ax")
	first := tr.Characters()

	tr.Initialize([]string{"ab"})
	typeString(tr, "ax")
	assert.Equal(t, first, tr.Characters())
}

func TestJudgmentString(t *testing.T) {
	assert.Equal(t, "skipped", Skipped.String())
	assert.Equal(t, "unknown", Judgment(42).String())
}
