package mode

import (
	"fmt"
	"math"
	"time"

	"github.com/verte-zerg/ttt/internal/generator"
	"github.com/verte-zerg/ttt/internal/model"
	"github.com/verte-zerg/ttt/internal/stats"
	"github.com/verte-zerg/ttt/internal/transcript"
)

// Clock presets in seconds.
var clockPresets = []int{15, 30, 60, 120}

const (
	clockInitialWords    = 100
	clockExtendBy        = 50
	clockExtendThreshold = 20
	sampleInterval       = time.Second
)

// Clock is a timed test: type as much as possible before the time runs out.
type Clock struct {
	base
	settings model.Settings
	duration presetSetting
	gen      *generator.Generator
	deck     *generator.Deck
	tr       *transcript.Transcript
	log      stats.Log
	sw       stopwatch
	lastWord int
}

// NewClock returns a clock mode for settings.Duration seconds.
func NewClock(settings model.Settings, opts ...Option) *Clock {
	o := newOptions(opts)
	settings = settings.Normalize()
	settings.Mode = model.ModeClock
	return &Clock{
		settings: settings,
		duration: newPresetSetting(clockPresets, settings.Duration, "s"),
		gen:      o.gen,
		sw:       stopwatch{now: o.now},
	}
}

// Name implements Renderer.
func (c *Clock) Name() string { return model.ModeClock }

// Initialize implements Handler.
func (c *Clock) Initialize(corpus []string) error {
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}
	c.deck = c.gen.Deck(corpus)
	return c.Reset()
}

// Reset draws a new word buffer and clears the run.
func (c *Clock) Reset() error {
	c.sw.reset()
	c.log.Reset()
	c.lastWord = 0
	if c.deck == nil {
		c.tr = nil
		return nil
	}
	c.tr = transcript.New(c.deck.Next(clockInitialWords))
	return nil
}

func (c *Clock) limit() time.Duration {
	return time.Duration(c.duration.value) * time.Second
}

// Started implements Handler.
func (c *Clock) Started() bool { return c.sw.started() }

// HandleInput implements Handler.
func (c *Clock) HandleInput(key model.Key) Action {
	if c.tr == nil || !isEditKey(key) {
		return ActionNone
	}
	if c.IsComplete() {
		return ActionComplete
	}
	if key.Printable() {
		c.sw.begin()
	}
	if !c.sw.started() || !applyKey(c.tr, key) {
		return ActionNone
	}
	word := c.tr.CursorWordIndex()
	if word > c.lastWord {
		c.log.Sample(c.tr, word, c.elapsed())
	}
	c.lastWord = word
	if c.tr.Len()-c.tr.CursorWordIndex() <= clockExtendThreshold {
		c.tr.Extend(c.deck.Next(clockExtendBy))
	}
	return ActionNone
}

// Tick samples the run once per second and ends it when time is up.
func (c *Clock) Tick() Action {
	if !c.sw.started() || c.sw.stopped() {
		return ActionNone
	}
	if c.IsComplete() {
		return ActionComplete
	}
	c.log.Tick(c.tr, c.tr.CursorWordIndex(), c.elapsed(), sampleInterval)
	return ActionNone
}

// IsComplete reports whether the duration has elapsed since the first key.
func (c *Clock) IsComplete() bool {
	if c.sw.stopped() {
		return true
	}
	if !c.sw.started() || c.sw.now().Sub(c.sw.start) < c.limit() {
		return false
	}
	c.finish()
	return true
}

// OnComplete implements Handler.
func (c *Clock) OnComplete() {
	if c.sw.started() {
		c.finish()
	}
}

func (c *Clock) finish() {
	if c.sw.stopped() {
		return
	}
	c.sw.stop(c.sw.start.Add(min(c.sw.now().Sub(c.sw.start), c.limit())))
	c.log.Sample(c.tr, c.tr.CursorWordIndex(), c.elapsed())
}

func (c *Clock) elapsed() time.Duration {
	return min(c.sw.elapsed(), c.limit())
}

// Options implements Renderer.
func (c *Clock) Options(focused int) []OptionItem { return c.duration.items(focused) }

// SelectOption implements Renderer.
func (c *Clock) SelectOption(index int) {
	c.duration.pick(index)
	c.settings.Duration = c.duration.value
}

// AdjustOption implements Renderer.
func (c *Clock) AdjustOption(index int, dir Direction) {
	c.duration.adjust(index, dir)
	c.settings.Duration = c.duration.value
}

// IsOptionEditing implements Renderer.
func (c *Clock) IsOptionEditing() bool { return c.duration.editing }

// OptionCount implements Renderer.
func (c *Clock) OptionCount() int { return c.duration.count() }

// Progress shows the remaining whole seconds once the timer runs.
func (c *Clock) Progress() string {
	if !c.sw.started() {
		return ""
	}
	remaining := c.limit() - c.elapsed()
	return fmt.Sprintf("%d", int(math.Ceil(remaining.Seconds())))
}

// Completion implements Renderer.
func (c *Clock) Completion() float64 {
	return c.elapsed().Seconds() / c.limit().Seconds()
}

// Characters implements Renderer.
func (c *Clock) Characters() []transcript.Char {
	if c.tr == nil {
		return nil
	}
	return c.tr.Characters()
}

// Counts returns the judged characters typed so far.
func (c *Clock) Counts() model.Counts {
	if c.tr == nil {
		return model.Counts{}
	}
	return c.tr.Counts()
}

// Stats implements Renderer.
func (c *Clock) Stats() stats.GameStats {
	return stats.Compute(c.Counts(), c.elapsed())
}

// WPMSeries implements Renderer.
func (c *Clock) WPMSeries() []stats.Point { return c.log.Series() }

// Settings implements Renderer.
func (c *Clock) Settings() model.Settings { return c.settings }
