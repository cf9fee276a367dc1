package mode

import (
	"fmt"

	"github.com/verte-zerg/ttt/internal/generator"
	"github.com/verte-zerg/ttt/internal/model"
	"github.com/verte-zerg/ttt/internal/stats"
	"github.com/verte-zerg/ttt/internal/transcript"
)

// Word count presets.
var wordsPresets = []int{25, 50, 75, 100}

// Words is a fixed-length test: type a set number of words as fast as possible.
type Words struct {
	base
	settings model.Settings
	count    presetSetting
	gen      *generator.Generator
	corpus   []string
	tr       *transcript.Transcript
	log      stats.Log
	sw       stopwatch
	lastWord int
}

// NewWords returns a words mode for settings.Count words.
func NewWords(settings model.Settings, opts ...Option) *Words {
	o := newOptions(opts)
	settings = settings.Normalize()
	settings.Mode = model.ModeWords
	return &Words{
		settings: settings,
		count:    newPresetSetting(wordsPresets, settings.Count, ""),
		gen:      o.gen,
		sw:       stopwatch{now: o.now},
	}
}

// Name implements Renderer.
func (w *Words) Name() string { return model.ModeWords }

// Initialize implements Handler.
func (w *Words) Initialize(corpus []string) error {
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}
	w.corpus = corpus
	return w.Reset()
}

// Reset draws a new set of words and clears the run.
func (w *Words) Reset() error {
	w.sw.reset()
	w.log.Reset()
	w.lastWord = 0
	if len(w.corpus) == 0 {
		w.tr = nil
		return nil
	}
	words := w.gen.Generate(w.corpus, w.count.value)
	w.tr = transcript.New(words, transcript.WithRevisit(true))
	return nil
}

// Started implements Handler.
func (w *Words) Started() bool { return w.sw.started() }

// HandleInput implements Handler.
func (w *Words) HandleInput(key model.Key) Action {
	if w.tr == nil || !isEditKey(key) {
		return ActionNone
	}
	if w.IsComplete() {
		return ActionComplete
	}
	if key.Printable() {
		w.sw.begin()
	}
	if !w.sw.started() || !applyKey(w.tr, key) {
		return ActionNone
	}
	word := w.tr.CursorWordIndex()
	if word > w.lastWord {
		w.log.Sample(w.tr, word, w.sw.elapsed())
	}
	w.lastWord = word
	if w.IsComplete() {
		return ActionComplete
	}
	return ActionNone
}

// Tick implements Handler.
func (w *Words) Tick() Action {
	if !w.sw.started() || w.sw.stopped() {
		return ActionNone
	}
	w.log.Tick(w.tr, w.tr.CursorWordIndex(), w.sw.elapsed(), sampleInterval)
	return ActionNone
}

// IsComplete reports whether the last word has been typed to its length.
func (w *Words) IsComplete() bool {
	if w.sw.stopped() {
		return true
	}
	if w.tr == nil || !w.tr.IsComplete(w.count.value) {
		return false
	}
	w.finish()
	return true
}

// OnComplete implements Handler.
func (w *Words) OnComplete() {
	w.finish()
}

func (w *Words) finish() {
	if !w.sw.started() || w.sw.stopped() {
		return
	}
	w.sw.stop(w.sw.now())
	w.log.Sample(w.tr, w.tr.CursorWordIndex(), w.sw.elapsed())
}

// Options implements Renderer.
func (w *Words) Options(focused int) []OptionItem { return w.count.items(focused) }

// SelectOption implements Renderer.
func (w *Words) SelectOption(index int) {
	w.count.pick(index)
	w.applyCount()
}

// AdjustOption implements Renderer.
func (w *Words) AdjustOption(index int, dir Direction) {
	w.count.adjust(index, dir)
	w.applyCount()
}

func (w *Words) applyCount() {
	if w.settings.Count == w.count.value {
		return
	}
	w.settings.Count = w.count.value
	if !w.sw.started() {
		_ = w.Reset()
	}
}

// IsOptionEditing implements Renderer.
func (w *Words) IsOptionEditing() bool { return w.count.editing }

// OptionCount implements Renderer.
func (w *Words) OptionCount() int { return w.count.count() }

// Progress shows typed words against the target count.
func (w *Words) Progress() string {
	if !w.sw.started() {
		return ""
	}
	return fmt.Sprintf("%d/%d", w.typedWords(), w.count.value)
}

func (w *Words) typedWords() int {
	if w.tr == nil {
		return 0
	}
	if w.IsComplete() {
		return w.count.value
	}
	return min(w.tr.CursorWordIndex(), w.count.value)
}

// Completion implements Renderer.
func (w *Words) Completion() float64 {
	return float64(w.typedWords()) / float64(w.count.value)
}

// Characters implements Renderer.
func (w *Words) Characters() []transcript.Char {
	if w.tr == nil {
		return nil
	}
	return w.tr.Characters()
}

// Counts returns the judged characters typed so far.
func (w *Words) Counts() model.Counts {
	if w.tr == nil {
		return model.Counts{}
	}
	return w.tr.Counts()
}

// Stats implements Renderer.
func (w *Words) Stats() stats.GameStats {
	return stats.Compute(w.Counts(), w.sw.elapsed())
}

// WPMSeries implements Renderer.
func (w *Words) WPMSeries() []stats.Point { return w.log.Series() }

// Settings implements Renderer.
func (w *Words) Settings() model.Settings { return w.settings }
