// Package stats contains typing speed calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/ttt/internal/model"
)

const (
	sparkChars   = " .:-=+*#%@"
	charsPerWord = 5.0
	minMinutes   = 1e-9
)

// GameStats is a point-in-time or final measurement of a run.
type GameStats struct {
	WPM      float64
	RawWPM   float64
	Accuracy float64 // percent, 0..100
	Duration time.Duration
}

// Counter exposes the judged character counts of a run.
type Counter interface {
	Counts() model.Counts
}

// Compute derives speed and accuracy from character counts over elapsed time.
// Speeds are zero when no measurable time has passed.
func Compute(c model.Counts, elapsed time.Duration) GameStats {
	gs := GameStats{
		Accuracy: Accuracy(c),
		Duration: elapsed,
	}
	minutes := elapsed.Minutes()
	if minutes < minMinutes {
		return gs
	}
	gs.RawWPM = float64(c.Typed()) / charsPerWord / minutes
	gs.WPM = float64(c.Correct) / charsPerWord / minutes
	return gs
}

// Accuracy returns correct/(correct+incorrect) as a percentage, or 100 when
// nothing was judged.
func Accuracy(c model.Counts) float64 {
	den := c.Correct + c.Incorrect
	if den == 0 {
		return 100
	}
	return float64(c.Correct) / float64(den) * 100
}

// Result is the final snapshot of a completed run.
type Result struct {
	Mode   string
	Detail string
	Text   string
	Stats  GameStats
	Counts model.Counts
	Series []Point
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	return minVal, maxVal
}

// RenderSummary prints a table of completed runs followed by averages.
func RenderSummary(w io.Writer, results []Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No completed tests.")
		return err
	}

	headers := []string{"#", "Mode", "Text", "WPM", "Raw", "Accuracy", "Time", "Trend"}
	rows := make([][]string, 0, len(results))
	var totalWPM, totalAcc, best float64
	for i, r := range results {
		totalWPM += r.Stats.WPM
		totalAcc += r.Stats.Accuracy
		best = math.Max(best, r.Stats.WPM)
		mode := r.Mode
		if r.Detail != "" {
			mode += " " + r.Detail
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			mode,
			r.Text,
			fmt.Sprintf("%.1f", r.Stats.WPM),
			fmt.Sprintf("%.1f", r.Stats.RawWPM),
			fmt.Sprintf("%.1f%%", r.Stats.Accuracy),
			formatDuration(r.Stats.Duration),
			trend(r.Series),
		})
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	count := float64(len(results))
	if _, err := fmt.Fprintf(w, "\nAvg WPM: %.2f  Best WPM: %.2f  Avg Accuracy: %.2f%%\n", totalWPM/count, best, totalAcc/count); err != nil {
		return err
	}
	return nil
}

const trendWidth = 12

func trend(points []Point) string {
	if len(points) < 2 {
		return ""
	}
	values := make([]float64, 0, len(points)-1)
	for _, p := range points[1:] {
		values = append(values, p.WPM)
	}
	if len(values) > trendWidth {
		values = resampleValues(values, trendWidth)
	}
	return Sparkline(MovingAverage(values, 3))
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
