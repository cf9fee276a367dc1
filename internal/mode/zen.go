package mode

import (
	"fmt"
	"unicode"

	"github.com/verte-zerg/ttt/internal/model"
	"github.com/verte-zerg/ttt/internal/stats"
	"github.com/verte-zerg/ttt/internal/transcript"
)

// Zen is free typing with no target text. Enter ends the run.
type Zen struct {
	base
	settings model.Settings
	typed    []rune
	log      stats.Log
	sw       stopwatch
}

// NewZen returns a zen mode.
func NewZen(settings model.Settings, opts ...Option) *Zen {
	o := newOptions(opts)
	settings = settings.Normalize()
	settings.Mode = model.ModeZen
	return &Zen{
		settings: settings,
		sw:       stopwatch{now: o.now},
	}
}

// Name implements Renderer.
func (z *Zen) Name() string { return model.ModeZen }

// NeedsCorpus implements Handler.
func (z *Zen) NeedsCorpus() bool { return false }

// Initialize ignores the corpus.
func (z *Zen) Initialize([]string) error {
	return z.Reset()
}

// Reset implements Handler.
func (z *Zen) Reset() error {
	z.typed = z.typed[:0]
	z.log.Reset()
	z.sw.reset()
	return nil
}

// Started implements Handler.
func (z *Zen) Started() bool { return z.sw.started() }

// HandleInput implements Handler.
func (z *Zen) HandleInput(key model.Key) Action {
	if z.sw.stopped() {
		return ActionComplete
	}
	switch key.Type {
	case model.KeyEnter:
		if z.sw.started() && len(z.typed) > 0 {
			z.finish()
			return ActionComplete
		}
	case model.KeyRune, model.KeySpace:
		z.sw.begin()
		z.typed = append(z.typed, key.Rune)
		if key.Type == model.KeySpace {
			z.log.Sample(z, z.words(), z.sw.elapsed())
		}
	case model.KeyBackspace:
		if len(z.typed) > 0 {
			z.typed = z.typed[:len(z.typed)-1]
		}
	case model.KeyClearWord:
		z.clearWord()
	}
	return ActionNone
}

// clearWord drops trailing spaces and then the last word.
func (z *Zen) clearWord() {
	i := len(z.typed)
	for i > 0 && z.typed[i-1] == ' ' {
		i--
	}
	for i > 0 && z.typed[i-1] != ' ' {
		i--
	}
	z.typed = z.typed[:i]
}

// Tick implements Handler.
func (z *Zen) Tick() Action {
	if z.sw.started() && !z.sw.stopped() {
		z.log.Tick(z, z.words(), z.sw.elapsed(), sampleInterval)
	}
	return ActionNone
}

// IsComplete implements Handler.
func (z *Zen) IsComplete() bool { return z.sw.stopped() }

// OnComplete implements Handler.
func (z *Zen) OnComplete() { z.finish() }

func (z *Zen) finish() {
	if !z.sw.started() || z.sw.stopped() {
		return
	}
	z.sw.stop(z.sw.now())
	z.log.Sample(z, z.words(), z.sw.elapsed())
}

// Counts treats every non-space rune as correct.
func (z *Zen) Counts() model.Counts {
	var c model.Counts
	for _, r := range z.typed {
		if !unicode.IsSpace(r) {
			c.Correct++
		}
	}
	return c
}

func (z *Zen) words() int {
	n := 0
	inWord := false
	for _, r := range z.typed {
		if r == ' ' {
			inWord = false
			continue
		}
		if !inWord {
			n++
			inWord = true
		}
	}
	return n
}

// Options implements Renderer. Zen has no options.
func (z *Zen) Options(int) []OptionItem { return nil }

// SelectOption implements Renderer.
func (z *Zen) SelectOption(int) {}

// AdjustOption implements Renderer.
func (z *Zen) AdjustOption(int, Direction) {}

// IsOptionEditing implements Renderer.
func (z *Zen) IsOptionEditing() bool { return false }

// OptionCount implements Renderer.
func (z *Zen) OptionCount() int { return 0 }

// Progress implements Renderer.
func (z *Zen) Progress() string {
	if !z.sw.started() {
		return ""
	}
	return fmt.Sprintf("%d words", z.words())
}

// Completion is always unbounded.
func (z *Zen) Completion() float64 { return -1 }

// Characters returns the typed runes followed by the cursor.
func (z *Zen) Characters() []transcript.Char {
	chars := make([]transcript.Char, 0, len(z.typed)+1)
	for _, r := range z.typed {
		chars = append(chars, transcript.Char{Rune: r, Judgment: transcript.Correct})
	}
	if !z.sw.stopped() {
		chars = append(chars, transcript.Char{Rune: ' ', Judgment: transcript.Cursor})
	}
	return chars
}

// Stats implements Renderer.
func (z *Zen) Stats() stats.GameStats {
	return stats.Compute(z.Counts(), z.sw.elapsed())
}

// WPMSeries implements Renderer.
func (z *Zen) WPMSeries() []stats.Point { return z.log.Series() }

// FooterHints adds the finish key.
func (z *Zen) FooterHints() []Hint {
	return []Hint{{Key: "enter", Desc: "finish", Scope: ScopeRunning}}
}

// Settings implements Renderer.
func (z *Zen) Settings() model.Settings { return z.settings }
