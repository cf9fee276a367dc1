package mode

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/ttt/internal/model"
)

func newTestWords(t *testing.T, count int, corpus []string) (*Words, *fakeClock) {
	t.Helper()
	clk := newFakeClock()
	w := NewWords(model.Settings{Count: count}, WithClock(clk.Now), WithSeed(1))
	require.NoError(t, w.Initialize(corpus))
	return w, clk
}

func TestWordsPerfectRun(t *testing.T) {
	w, clk := newTestWords(t, 2, []string{"hello"})
	w.HandleInput(model.RuneKey('h'))
	clk.Advance(6 * time.Second)
	action := feed(w, "ello hello")
	assert.Equal(t, ActionComplete, action)
	assert.True(t, w.IsComplete())

	clk.Advance(time.Minute)
	st := w.Stats()
	assert.Equal(t, 6*time.Second, st.Duration)
	assert.InDelta(t, 100.0, st.Accuracy, 1e-9)
	assert.InDelta(t, 10.0/5/0.1, st.WPM, 1e-9)
	assert.Equal(t, "2/2", w.Progress())
	assert.InDelta(t, 1.0, w.Completion(), 1e-9)
}

func TestWordsIgnoresInputAfterCompletion(t *testing.T) {
	w, _ := newTestWords(t, 1, []string{"ab"})
	feed(w, "ab")
	require.True(t, w.IsComplete())
	before := w.Characters()

	assert.Equal(t, ActionComplete, w.HandleInput(model.RuneKey('x')))
	assert.Equal(t, ActionComplete, w.HandleInput(model.Key{Type: model.KeyBackspace}))
	assert.Equal(t, before, w.Characters())
}

func TestWordsMistypedWord(t *testing.T) {
	w, clk := newTestWords(t, 2, []string{"the", "cat"})
	target := w.tr.Words()
	require.Len(t, target, 2)

	typed := []rune(strings.Join(target, " "))
	typed[len(typed)-2] = 'e'
	if target[1] == "the" {
		typed[len(typed)-2] = 'x'
	}
	clk.Advance(time.Second)
	assert.Equal(t, ActionComplete, feed(w, string(typed)))
	assert.InDelta(t, 5.0/6.0*100, w.Stats().Accuracy, 1e-9)
}

func TestWordsRevisitsErrorfulWord(t *testing.T) {
	w, _ := newTestWords(t, 3, []string{"ab"})
	feed(w, "ax ")
	require.Equal(t, 1, w.tr.CursorWordIndex())
	w.HandleInput(model.Key{Type: model.KeyBackspace})
	assert.Equal(t, 0, w.tr.CursorWordIndex())
}

func TestWordsOptionChangeRegenerates(t *testing.T) {
	w, _ := newTestWords(t, 50, []string{"a", "b"})
	assert.Equal(t, 50, w.tr.Len())
	w.SelectOption(0)
	assert.Equal(t, 25, w.Settings().Count)
	assert.Equal(t, 25, w.tr.Len())

	w.SelectOption(4)
	w.AdjustOption(4, Left)
	assert.Equal(t, 25, w.Settings().Count)
	assert.Equal(t, 25, w.tr.Len())
}

func TestWordsSeriesIsMonotonic(t *testing.T) {
	w, clk := newTestWords(t, 3, []string{"go"})
	for i := 0; i < 3; i++ {
		w.HandleInput(model.RuneKey('g'))
		clk.Advance(700 * time.Millisecond)
		w.Tick()
		feed(w, "o ")
	}
	require.True(t, w.IsComplete())
	series := w.WPMSeries()
	assert.Equal(t, time.Duration(0), series[0].Elapsed)
	for i := 1; i < len(series); i++ {
		assert.GreaterOrEqual(t, series[i].Elapsed, series[i-1].Elapsed)
	}
}

func TestWordsCompleteOnlyOnce(t *testing.T) {
	w, clk := newTestWords(t, 1, []string{"go"})
	feed(w, "go")
	require.True(t, w.IsComplete())
	samples := len(w.WPMSeries())

	clk.Advance(time.Second)
	w.OnComplete()
	assert.True(t, w.IsComplete())
	assert.Len(t, w.WPMSeries(), samples)
}
