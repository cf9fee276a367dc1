package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/ttt/internal/model"
)

type fixedCounter model.Counts

func (f *fixedCounter) Counts() model.Counts {
	return model.Counts(*f)
}

func TestSeriesStartsAtOrigin(t *testing.T) {
	var log Log
	series := log.Series()
	if len(series) != 1 || series[0] != (Point{}) {
		t.Fatalf("expected only the origin, got %+v", series)
	}
}

func TestSeriesCumulative(t *testing.T) {
	var log Log
	c := &fixedCounter{Correct: 25}
	log.Sample(c, 5, 30*time.Second)
	*c = fixedCounter{Correct: 50, Incorrect: 10}
	log.Sample(c, 10, time.Minute)

	series := log.Series()
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}
	if !almostEqual(series[1].WPM, 10) {
		t.Fatalf("expected 10 wpm at 30s, got %.2f", series[1].WPM)
	}
	if !almostEqual(series[2].WPM, 10) || !almostEqual(series[2].RawWPM, 12) {
		t.Fatalf("unexpected final point %+v", series[2])
	}
	if !almostEqual(series[2].Minutes(), 1) {
		t.Fatalf("expected 1 minute, got %.2f", series[2].Minutes())
	}
}

func TestSeriesMonotonicTime(t *testing.T) {
	var log Log
	c := &fixedCounter{Correct: 10}
	log.Sample(c, 0, 2*time.Second)
	log.Sample(c, 0, time.Second)
	log.Sample(c, 0, 3*time.Second)

	series := log.Series()
	for i := 1; i < len(series); i++ {
		if series[i].Elapsed < series[i-1].Elapsed {
			t.Fatalf("series went back in time at %d: %+v", i, series)
		}
	}
	if series[2].Elapsed != 2*time.Second {
		t.Fatalf("expected clamped sample at 2s, got %v", series[2].Elapsed)
	}

	again := log.Series()
	for i := range series {
		if series[i] != again[i] {
			t.Fatalf("series is not deterministic")
		}
	}
}

func TestTickSamplesOnInterval(t *testing.T) {
	var log Log
	c := &fixedCounter{}
	if log.Tick(c, 0, 500*time.Millisecond, time.Second) {
		t.Fatalf("sampled before the first interval")
	}
	if !log.Tick(c, 0, 1100*time.Millisecond, time.Second) {
		t.Fatalf("expected a sample after one second")
	}
	if log.Tick(c, 0, 1900*time.Millisecond, time.Second) {
		t.Fatalf("sampled twice in the same interval")
	}
	if !log.Tick(c, 0, 2*time.Second, time.Second) {
		t.Fatalf("expected a sample at two seconds")
	}
	if log.Tick(c, 0, 5*time.Second, 0) {
		t.Fatalf("zero interval must not sample")
	}
	if log.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", log.Len())
	}

	log.Reset()
	if log.Len() != 0 || len(log.Series()) != 1 {
		t.Fatalf("reset did not clear the log")
	}
}
