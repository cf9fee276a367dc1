package stats

import (
	"time"

	"github.com/verte-zerg/ttt/internal/model"
)

// Sample is one entry of the keystroke event log.
type Sample struct {
	Elapsed time.Duration
	Word    int
	Counts  model.Counts
}

// Point is one entry of the WPM-over-time series.
type Point struct {
	Elapsed time.Duration
	WPM     float64
	RawWPM  float64
}

// Minutes returns the elapsed time of the point in minutes.
func (p Point) Minutes() float64 {
	return p.Elapsed.Minutes()
}

// Log is an append-only record of cumulative counts over a run.
type Log struct {
	samples []Sample
}

// Sample appends the current counts of c.
func (l *Log) Sample(c Counter, word int, elapsed time.Duration) {
	l.samples = append(l.samples, Sample{
		Elapsed: elapsed,
		Word:    word,
		Counts:  c.Counts(),
	})
}

// Tick samples c when elapsed has reached the next multiple of interval
// after the previous sample. It reports whether a sample was taken.
func (l *Log) Tick(c Counter, word int, elapsed, interval time.Duration) bool {
	if interval <= 0 {
		return false
	}
	next := interval
	if n := len(l.samples); n > 0 {
		next = (l.samples[n-1].Elapsed/interval + 1) * interval
	}
	if elapsed < next {
		return false
	}
	l.Sample(c, word, elapsed)
	return true
}

// Samples returns a copy of the recorded samples.
func (l *Log) Samples() []Sample {
	out := make([]Sample, len(l.samples))
	copy(out, l.samples)
	return out
}

// Len returns the number of samples.
func (l *Log) Len() int {
	return len(l.samples)
}

// Reset clears the log.
func (l *Log) Reset() {
	l.samples = l.samples[:0]
}

// Series converts the log into cumulative WPM points. It always starts at
// the origin and never goes back in time.
func (l *Log) Series() []Point {
	out := make([]Point, 0, len(l.samples)+1)
	out = append(out, Point{})
	var last time.Duration
	for _, s := range l.samples {
		elapsed := max(s.Elapsed, last)
		last = elapsed
		gs := Compute(s.Counts, elapsed)
		out = append(out, Point{
			Elapsed: elapsed,
			WPM:     gs.WPM,
			RawWPM:  gs.RawWPM,
		})
	}
	return out
}
