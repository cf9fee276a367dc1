// Package transcript tracks the expected words and the judgment of every typed character.
package transcript

import "github.com/verte-zerg/ttt/internal/model"

// Judgment classifies one character position.
type Judgment uint8

// Character judgments.
const (
	Pending Judgment = iota
	Correct
	Incorrect
	Extra
	Skipped
	Cursor
)

var judgmentNames = [...]string{"pending", "correct", "incorrect", "extra", "skipped", "cursor"}

// String implements fmt.Stringer.
func (j Judgment) String() string {
	if int(j) < len(judgmentNames) {
		return judgmentNames[j]
	}
	return "unknown"
}

// Char is a character of the flattened transcript with its judgment.
type Char struct {
	Rune     rune
	Judgment Judgment
}

type word struct {
	target  []rune
	marks   []Judgment
	extra   []rune
	skipped bool
}

func newWord(s string) word {
	target := []rune(s)
	return word{
		target: target,
		marks:  make([]Judgment, len(target)),
	}
}

func (w *word) hasErrors() bool {
	if len(w.extra) > 0 {
		return true
	}
	for _, m := range w.marks {
		if m == Incorrect {
			return true
		}
	}
	return false
}

// Transcript owns the target words, their judgments and the cursor.
type Transcript struct {
	words   []word
	wordIdx int
	charIdx int
	revisit bool
}

// Option configures a Transcript.
type Option func(*Transcript)

// WithRevisit allows backspacing from the start of a word into the previous
// one when that word was committed with errors.
func WithRevisit(allow bool) Option {
	return func(t *Transcript) {
		t.revisit = allow
	}
}

// New builds a transcript over words.
func New(words []string, opts ...Option) *Transcript {
	t := &Transcript{}
	for _, opt := range opts {
		opt(t)
	}
	t.Initialize(words)
	return t
}

// Initialize replaces the target words, resets every judgment to Pending and
// moves the cursor to the first character.
func (t *Transcript) Initialize(words []string) {
	t.words = make([]word, 0, len(words))
	t.Extend(words)
	t.wordIdx = 0
	t.charIdx = 0
}

// Extend appends target words after the existing ones.
func (t *Transcript) Extend(words []string) {
	for _, w := range words {
		if w == "" {
			continue
		}
		t.words = append(t.words, newWord(w))
	}
}

// Len returns the number of target words.
func (t *Transcript) Len() int {
	return len(t.words)
}

// Words returns the target words.
func (t *Transcript) Words() []string {
	out := make([]string, len(t.words))
	for i := range t.words {
		out[i] = string(t.words[i].target)
	}
	return out
}

// CursorWordIndex returns the index of the word being typed. It equals the
// number of words already committed or skipped.
func (t *Transcript) CursorWordIndex() int {
	return t.wordIdx
}

// CursorCharIndex returns the cursor position inside the current word,
// extra characters included.
func (t *Transcript) CursorCharIndex() int {
	return t.charIdx
}

// IsComplete reports whether the cursor has reached the end of the word at
// position bound-1. A bound <= 0 or beyond the word count means all words.
func (t *Transcript) IsComplete(bound int) bool {
	if len(t.words) == 0 {
		return false
	}
	if bound <= 0 || bound > len(t.words) {
		bound = len(t.words)
	}
	last := bound - 1
	if t.wordIdx > last {
		return true
	}
	return t.wordIdx == last && t.charIdx >= len(t.words[last].target)
}

func (t *Transcript) frozen() bool {
	return len(t.words) == 0 || t.wordIdx >= len(t.words) || t.IsComplete(0)
}

// Type records one character. A space is handled by Space. It returns false
// when the input was ignored.
func (t *Transcript) Type(r rune) bool {
	if r == ' ' {
		return t.Space()
	}
	if t.frozen() {
		return false
	}
	w := &t.words[t.wordIdx]
	if t.charIdx < len(w.target) {
		if w.target[t.charIdx] == r {
			w.marks[t.charIdx] = Correct
		} else {
			w.marks[t.charIdx] = Incorrect
		}
	} else {
		w.extra = append(w.extra, r)
	}
	t.charIdx++
	return true
}

// Space commits the current word. Pressing it before the end of the word
// skips the remainder; pressing it with nothing typed does nothing.
func (t *Transcript) Space() bool {
	if t.frozen() || t.charIdx == 0 {
		return false
	}
	if t.charIdx < len(t.words[t.wordIdx].target) {
		return t.SkipCurrentWord()
	}
	t.advance()
	return true
}

// SkipCurrentWord marks the untyped remainder of the current word Skipped and
// moves to the next word.
func (t *Transcript) SkipCurrentWord() bool {
	if t.frozen() {
		return false
	}
	w := &t.words[t.wordIdx]
	if t.charIdx < len(w.target) {
		for i := t.charIdx; i < len(w.target); i++ {
			w.marks[i] = Skipped
		}
		w.skipped = true
	}
	t.advance()
	return true
}

func (t *Transcript) advance() {
	t.wordIdx++
	t.charIdx = 0
}

// Backspace undoes the last character of the current word. At the start of a
// word it may re-enter the previous word, see WithRevisit.
func (t *Transcript) Backspace() bool {
	if t.frozen() {
		return false
	}
	if t.charIdx == 0 {
		return t.revisitPrevious()
	}
	w := &t.words[t.wordIdx]
	t.charIdx--
	if t.charIdx >= len(w.target) {
		w.extra = w.extra[:len(w.extra)-1]
	} else {
		w.marks[t.charIdx] = Pending
	}
	return true
}

// ClearWord resets everything typed in the current word. On an empty word it
// behaves like Backspace.
func (t *Transcript) ClearWord() bool {
	if t.frozen() {
		return false
	}
	if t.charIdx == 0 {
		return t.revisitPrevious()
	}
	w := &t.words[t.wordIdx]
	for i := range w.marks {
		w.marks[i] = Pending
	}
	w.extra = nil
	t.charIdx = 0
	return true
}

// Skipped and correct words are never re-entered.
func (t *Transcript) revisitPrevious() bool {
	if !t.revisit || t.wordIdx == 0 {
		return false
	}
	prev := &t.words[t.wordIdx-1]
	if prev.skipped || !prev.hasErrors() {
		return false
	}
	t.wordIdx--
	t.charIdx = len(prev.target) + len(prev.extra)
	return true
}

// Characters returns the flattened transcript. Words are separated by a
// space character; the cursor position is reported as Cursor.
func (t *Transcript) Characters() []Char {
	out := make([]Char, 0, t.estimateLen())
	last := len(t.words) - 1
	complete := t.IsComplete(0)
	for wi := range t.words {
		w := &t.words[wi]
		current := wi == t.wordIdx && !complete
		for i, r := range w.target {
			j := w.marks[i]
			if current && i == t.charIdx {
				j = Cursor
			}
			out = append(out, Char{Rune: r, Judgment: j})
		}
		for _, r := range w.extra {
			out = append(out, Char{Rune: r, Judgment: Extra})
		}
		if wi == last {
			continue
		}
		sep := Pending
		switch {
		case current && t.charIdx >= len(w.target)+len(w.extra):
			sep = Cursor
		case wi < t.wordIdx && w.skipped:
			sep = Skipped
		case wi < t.wordIdx:
			sep = Correct
		}
		out = append(out, Char{Rune: ' ', Judgment: sep})
	}
	return out
}

func (t *Transcript) estimateLen() int {
	n := 0
	for i := range t.words {
		n += len(t.words[i].target) + len(t.words[i].extra) + 1
	}
	return n
}

// Counts tallies the judged characters of all words.
func (t *Transcript) Counts() model.Counts {
	var c model.Counts
	for i := range t.words {
		w := &t.words[i]
		for _, m := range w.marks {
			switch m {
			case Correct:
				c.Correct++
			case Incorrect:
				c.Incorrect++
			case Skipped:
				c.Skipped++
			}
		}
		c.Extra += len(w.extra)
	}
	return c
}
