// Package model defines shared data structures.
package model

// Mode names understood by the mode factory and the config file.
const (
	ModeClock = "clock"
	ModeWords = "words"
	ModeZen   = "zen"
)

// Default settings values.
const (
	DefaultMode     = ModeClock
	DefaultText     = "english"
	DefaultDuration = 30
	DefaultCount    = 50
)

// Settings holds the mode configuration for a test run.
type Settings struct {
	Mode     string
	Text     string
	Duration int // seconds, clock mode
	Count    int // words, words mode
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Mode:     DefaultMode,
		Text:     DefaultText,
		Duration: DefaultDuration,
		Count:    DefaultCount,
	}
}

// Normalize clamps invalid values to the smallest valid ones.
func (s Settings) Normalize() Settings {
	switch s.Mode {
	case ModeClock, ModeWords, ModeZen:
	default:
		s.Mode = DefaultMode
	}
	if s.Text == "" {
		s.Text = DefaultText
	}
	if s.Duration < 1 {
		s.Duration = 1
	}
	if s.Count < 1 {
		s.Count = 1
	}
	return s
}

// Counts tallies judged characters of a transcript. Word separators are not counted.
type Counts struct {
	Correct   int
	Incorrect int
	Extra     int
	Skipped   int
}

// Typed returns every character the user produced, errors included.
func (c Counts) Typed() int {
	return c.Correct + c.Incorrect + c.Extra
}
