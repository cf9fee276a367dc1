// Package mode implements the typing test variants and their option menus.
package mode

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/ttt/internal/generator"
	"github.com/verte-zerg/ttt/internal/model"
	"github.com/verte-zerg/ttt/internal/stats"
	"github.com/verte-zerg/ttt/internal/transcript"
)

// ErrEmptyCorpus is returned when a corpus-backed mode is given no words.
var ErrEmptyCorpus = errors.New("corpus has no words")

// Action tells the application what to do after an input or a tick.
type Action int

// Actions.
const (
	ActionNone Action = iota
	ActionComplete
)

// Direction of an option adjustment.
type Direction int

// Directions.
const (
	Left Direction = iota
	Right
)

// OptionItem is one entry of a mode's option bar.
type OptionItem struct {
	Label   string
	Active  bool
	Focused bool
	Editing bool
}

// Scope is a set of application states a hint applies to.
type Scope uint8

// Scopes.
const (
	ScopeHome Scope = 1 << iota
	ScopeRunning
	ScopeComplete
)

// Hint is a key binding shown in the footer.
type Hint struct {
	Key   string
	Desc  string
	Scope Scope
}

// Handler owns the state of a test and reacts to input.
type Handler interface {
	// Initialize takes the corpus and prepares a fresh test.
	Initialize(corpus []string) error
	HandleInput(key model.Key) Action
	// Tick is called periodically while the test runs.
	Tick() Action
	// IsComplete stays true once reached, until Reset.
	IsComplete() bool
	OnComplete()
	Reset() error
	NeedsCorpus() bool
	Started() bool
}

// Renderer exposes a mode's state for drawing.
type Renderer interface {
	Name() string
	Options(focused int) []OptionItem
	SelectOption(index int)
	AdjustOption(index int, dir Direction)
	IsOptionEditing() bool
	OptionCount() int
	Progress() string
	// Completion is the fraction done in [0,1], or negative when unbounded.
	Completion() float64
	Characters() []transcript.Char
	Stats() stats.GameStats
	WPMSeries() []stats.Point
	FooterHints() []Hint
	Settings() model.Settings
}

// Mode is a complete test variant.
type Mode interface {
	Handler
	Renderer
}

// base supplies defaults for optional Renderer methods.
type base struct{}

func (base) FooterHints() []Hint { return nil }

func (base) NeedsCorpus() bool { return true }

type options struct {
	now func() time.Time
	gen *generator.Generator
}

// Option configures a mode.
type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithGenerator sets the word source.
func WithGenerator(gen *generator.Generator) Option {
	return func(o *options) {
		o.gen = gen
	}
}

// WithSeed makes word draws reproducible.
func WithSeed(seed int64) Option {
	return WithGenerator(generator.NewSeeded(seed))
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.gen == nil {
		o.gen = generator.New()
	}
	return o
}

// New builds the mode named by settings.Mode. Unknown names fall back to the
// default mode.
func New(settings model.Settings, opts ...Option) Mode {
	settings = settings.Normalize()
	switch settings.Mode {
	case model.ModeWords:
		return NewWords(settings, opts...)
	case model.ModeZen:
		return NewZen(settings, opts...)
	default:
		return NewClock(settings, opts...)
	}
}

// Names lists the selectable modes in menu order.
func Names() []string {
	return []string{model.ModeClock, model.ModeWords, model.ModeZen}
}

// Detail is a short label of the active setting of a mode.
func Detail(s model.Settings) string {
	switch s.Mode {
	case model.ModeClock:
		return fmt.Sprintf("%ds", s.Duration)
	case model.ModeWords:
		return fmt.Sprintf("%d words", s.Count)
	default:
		return ""
	}
}

func applyKey(tr *transcript.Transcript, key model.Key) bool {
	switch key.Type {
	case model.KeyRune:
		return tr.Type(key.Rune)
	case model.KeySpace:
		return tr.Space()
	case model.KeyBackspace:
		return tr.Backspace()
	case model.KeyClearWord:
		return tr.ClearWord()
	default:
		return false
	}
}

func isEditKey(key model.Key) bool {
	switch key.Type {
	case model.KeyRune, model.KeySpace, model.KeyBackspace, model.KeyClearWord:
		return true
	default:
		return false
	}
}
