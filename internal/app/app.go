// Package app drives a typing test through its home, running and complete states.
package app

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/ttt/internal/mode"
	"github.com/verte-zerg/ttt/internal/model"
	"github.com/verte-zerg/ttt/internal/stats"
	"github.com/verte-zerg/ttt/internal/transcript"
)

// State of the application.
type State int

// States.
const (
	StateHome State = iota
	StateRunning
	StateComplete
)

var stateNames = [...]string{"home", "running", "complete"}

// String implements fmt.Stringer.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Loader provides corpora by text name.
type Loader interface {
	Load(name string) ([]string, error)
}

// ErrNoLoader is returned when a mode needs words but no loader was given.
var ErrNoLoader = errors.New("no text loader configured")

// OptionsBar is the home screen menu: the mode selector followed by the
// options of the active mode.
type OptionsBar struct {
	Mode        string
	ModeFocused bool
	ModeEditing bool
	Items       []mode.OptionItem
}

// App is the application state machine. It is not safe for concurrent use.
type App struct {
	state       State
	mode        mode.Mode
	loader      Loader
	modeOpts    []mode.Option
	log         zerolog.Logger
	focus       int
	editingMode bool
	preview     int
	ready       bool
	err         error
	quit        bool
	result      *stats.Result
	results     []stats.Result
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *App) {
		a.log = log
	}
}

// WithModeOptions passes options to every mode the app creates.
func WithModeOptions(opts ...mode.Option) Option {
	return func(a *App) {
		a.modeOpts = append(a.modeOpts, opts...)
	}
}

// WithClock replaces time.Now for all modes.
func WithClock(now func() time.Time) Option {
	return WithModeOptions(mode.WithClock(now))
}

// New creates an app on the home screen and prepares the configured mode.
// A preparation error is kept in Err and retried when the test starts.
func New(settings model.Settings, loader Loader, opts ...Option) *App {
	a := &App{
		state:  StateHome,
		loader: loader,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.mode = mode.New(settings, a.modeOpts...)
	_ = a.prepare()
	return a
}

func (a *App) prepare() error {
	var corpus []string
	if a.mode.NeedsCorpus() {
		if a.loader == nil {
			return a.fail(ErrNoLoader)
		}
		text := a.mode.Settings().Text
		words, err := a.loader.Load(text)
		if err != nil {
			return a.fail(err)
		}
		corpus = words
		a.log.Debug().Str("text", text).Int("words", len(words)).Msg("corpus loaded")
	}
	if err := a.mode.Initialize(corpus); err != nil {
		return a.fail(err)
	}
	a.ready = true
	a.err = nil
	return nil
}

func (a *App) fail(err error) error {
	a.ready = false
	a.err = err
	a.log.Warn().Err(err).Str("mode", a.mode.Name()).Msg("mode not ready")
	return err
}

// HandleKey processes one key event.
func (a *App) HandleKey(key model.Key) {
	if key.Type == model.KeyQuit {
		a.quit = true
		return
	}
	switch a.state {
	case StateHome:
		a.handleHome(key)
	case StateRunning:
		a.handleRunning(key)
	case StateComplete:
		a.handleComplete(key)
	}
}

func (a *App) editing() bool {
	return a.editingMode || a.mode.IsOptionEditing()
}

func (a *App) handleHome(key model.Key) {
	switch key.Type {
	case model.KeyEsc:
		switch {
		case a.editingMode:
			a.editingMode = false
		case a.mode.IsOptionEditing():
			a.mode.SelectOption(a.focus - 1)
		default:
			a.quit = true
		}
	case model.KeyTab:
		if a.editing() {
			return
		}
		if a.focus == 0 && a.mode.OptionCount() > 0 {
			a.focus = 1
		} else {
			a.focus = 0
		}
	case model.KeyLeft, model.KeyDown:
		a.move(mode.Left)
	case model.KeyRight, model.KeyUp:
		a.move(mode.Right)
	case model.KeyEnter, model.KeySpace:
		a.selectFocused()
	case model.KeyRune:
		a.start(key)
	}
}

// move adjusts the edited value, or moves the focus with wrap-around.
func (a *App) move(dir mode.Direction) {
	step := 1
	if dir == mode.Left {
		step = -1
	}
	switch {
	case a.editingMode:
		names := mode.Names()
		a.preview = (a.preview + step + len(names)) % len(names)
	case a.mode.IsOptionEditing():
		a.mode.AdjustOption(a.focus-1, dir)
	default:
		n := a.mode.OptionCount() + 1
		a.focus = (a.focus + step + n) % n
	}
}

func (a *App) selectFocused() {
	if a.focus > 0 {
		a.mode.SelectOption(a.focus - 1)
		a.log.Debug().Str("mode", a.mode.Name()).Interface("settings", a.mode.Settings()).Msg("option selected")
		return
	}
	if !a.editingMode {
		a.editingMode = true
		a.preview = indexOf(mode.Names(), a.mode.Name())
		return
	}
	a.editingMode = false
	if name := mode.Names()[a.preview]; name != a.mode.Name() {
		a.switchMode(name)
	}
}

func (a *App) switchMode(name string) {
	settings := a.mode.Settings()
	settings.Mode = name
	a.mode = mode.New(settings, a.modeOpts...)
	a.focus = 0
	a.ready = false
	a.log.Debug().Str("mode", name).Msg("mode switched")
	_ = a.prepare()
}

func (a *App) start(key model.Key) {
	if !a.ready {
		if err := a.prepare(); err != nil {
			return
		}
	}
	if a.mode.IsOptionEditing() {
		a.mode.SelectOption(a.focus - 1)
	}
	a.editingMode = false
	a.state = StateRunning
	a.log.Debug().Str("mode", a.mode.Name()).Msg("test started")
	a.deliver(key)
}

func (a *App) deliver(key model.Key) {
	action := a.mode.HandleInput(key)
	if action == mode.ActionComplete || a.mode.IsComplete() {
		a.complete()
	}
}

func (a *App) handleRunning(key model.Key) {
	switch key.Type {
	case model.KeyEsc:
		a.log.Debug().Msg("test aborted")
		a.home()
	case model.KeyTab:
		a.log.Debug().Msg("test restarted")
		a.home()
	default:
		a.deliver(key)
	}
}

func (a *App) handleComplete(key model.Key) {
	switch key.Type {
	case model.KeyTab, model.KeyEnter, model.KeyEsc:
		a.home()
	}
}

// Tick advances time-based behaviour of a running test.
func (a *App) Tick() {
	if a.state != StateRunning {
		return
	}
	if a.mode.Tick() == mode.ActionComplete || a.mode.IsComplete() {
		a.complete()
	}
}

// complete moves a running test to the complete state. Later calls are no-ops.
func (a *App) complete() {
	if a.state != StateRunning {
		return
	}
	a.mode.OnComplete()
	settings := a.mode.Settings()
	result := stats.Result{
		Mode:   a.mode.Name(),
		Detail: mode.Detail(settings),
		Stats:  a.mode.Stats(),
		Series: a.mode.WPMSeries(),
	}
	if a.mode.NeedsCorpus() {
		result.Text = settings.Text
	}
	if c, ok := a.mode.(stats.Counter); ok {
		result.Counts = c.Counts()
	}
	a.result = &result
	a.results = append(a.results, result)
	a.state = StateComplete
	a.log.Info().
		Str("mode", result.Mode).
		Float64("wpm", result.Stats.WPM).
		Float64("raw", result.Stats.RawWPM).
		Float64("accuracy", result.Stats.Accuracy).
		Dur("duration", result.Stats.Duration).
		Msg("test complete")
}

func (a *App) home() {
	if err := a.mode.Reset(); err != nil {
		_ = a.fail(err)
	}
	a.state = StateHome
	a.focus = 0
	a.editingMode = false
}

// State returns the current state.
func (a *App) State() State { return a.state }

// Mode returns the active mode.
func (a *App) Mode() mode.Mode { return a.mode }

// ModeName returns the name of the active mode.
func (a *App) ModeName() string { return a.mode.Name() }

// Settings returns the active mode's settings.
func (a *App) Settings() model.Settings { return a.mode.Settings() }

// Options returns the home screen menu.
func (a *App) Options() OptionsBar {
	name := a.mode.Name()
	if a.editingMode {
		name = mode.Names()[a.preview]
	}
	return OptionsBar{
		Mode:        name,
		ModeFocused: a.focus == 0,
		ModeEditing: a.editingMode,
		Items:       a.mode.Options(a.focus - 1),
	}
}

// Characters returns the typing area content.
func (a *App) Characters() []transcript.Char { return a.mode.Characters() }

// Progress returns the mode's progress label.
func (a *App) Progress() string { return a.mode.Progress() }

// Completion returns the mode's completion fraction, negative when unbounded.
func (a *App) Completion() float64 { return a.mode.Completion() }

// Stats returns live statistics of the current test.
func (a *App) Stats() stats.GameStats { return a.mode.Stats() }

// Result returns the last completed test, if any.
func (a *App) Result() (stats.Result, bool) {
	if a.result == nil {
		return stats.Result{}, false
	}
	return *a.result, true
}

// Results returns every test completed by this app, oldest first.
func (a *App) Results() []stats.Result {
	out := make([]stats.Result, len(a.results))
	copy(out, a.results)
	return out
}

// Err returns the last preparation error, or nil.
func (a *App) Err() error { return a.err }

// ShouldQuit reports whether the user asked to exit.
func (a *App) ShouldQuit() bool { return a.quit }

// Hints returns the key bindings relevant to the current state.
func (a *App) Hints() []mode.Hint {
	var hints []mode.Hint
	var scope mode.Scope
	switch a.state {
	case StateHome:
		scope = mode.ScopeHome
		if a.editing() {
			hints = []mode.Hint{
				{Key: "←/→", Desc: "adjust"},
				{Key: "enter", Desc: "confirm"},
				{Key: "esc", Desc: "cancel"},
			}
		} else {
			hints = []mode.Hint{
				{Key: "←/→", Desc: "navigate"},
				{Key: "enter", Desc: "select"},
				{Key: "tab", Desc: "switch group"},
				{Key: "esc", Desc: "quit"},
			}
		}
	case StateRunning:
		scope = mode.ScopeRunning
		hints = []mode.Hint{
			{Key: "tab", Desc: "restart"},
			{Key: "esc", Desc: "abort"},
		}
	case StateComplete:
		scope = mode.ScopeComplete
		hints = []mode.Hint{
			{Key: "tab", Desc: "new test"},
			{Key: "esc", Desc: "home"},
		}
	}
	for _, h := range a.mode.FooterHints() {
		if h.Scope&scope != 0 {
			hints = append(hints, h)
		}
	}
	for i := range hints {
		hints[i].Scope = scope
	}
	return hints
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return 0
}
