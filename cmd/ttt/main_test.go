package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/ttt/internal/config"
	"github.com/verte-zerg/ttt/internal/model"
	"github.com/verte-zerg/ttt/internal/stats"
)

func TestResolveSettingsFlagsOverrideConfig(t *testing.T) {
	root := newRootCmd()
	clock, _, err := root.Find([]string{"clock"})
	require.NoError(t, err)
	require.NoError(t, clock.ParseFlags([]string{"-d", "45"}))

	text, duration, count := "lorem", 90, 10
	cfg := config.FileConfig{Defaults: config.DefaultsConfig{Text: &text, Duration: &duration, Count: &count}}
	s, err := resolveSettings(clock, cfg, model.ModeClock)
	require.NoError(t, err)
	assert.Equal(t, model.Settings{Mode: model.ModeClock, Text: "lorem", Duration: 45, Count: 10}, s)
}

func TestResolveSettingsRejectsBadFlags(t *testing.T) {
	root := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--mode", "marathon"}))
	_, err := resolveSettings(root, config.FileConfig{}, "")
	assert.Error(t, err)

	root = newRootCmd()
	words, _, err := root.Find([]string{"words"})
	require.NoError(t, err)
	require.NoError(t, words.ParseFlags([]string{"-c", "0"}))
	_, err = resolveSettings(words, config.FileConfig{}, model.ModeWords)
	assert.Error(t, err)
}

func TestResolveSettingsClampsConfigValues(t *testing.T) {
	root := newRootCmd()
	require.NoError(t, root.ParseFlags(nil))
	mode, count := "unknown", -3
	cfg := config.FileConfig{Defaults: config.DefaultsConfig{Mode: &mode, Count: &count}}
	s, err := resolveSettings(root, cfg, "")
	require.NoError(t, err)
	assert.Equal(t, model.ModeClock, s.Mode)
	assert.Equal(t, 1, s.Count)
}

func TestConfigTemplateDecodes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"config.toml", "config.yaml", "config.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(configTemplate(path)), 0o644))
		cfg, err := config.LoadConfig(path)
		require.NoError(t, err, name)
		assert.Equal(t, model.DefaultSettings(), cfg.Settings(), name)
	}
}

func TestPrintResults(t *testing.T) {
	var empty bytes.Buffer
	require.NoError(t, printResults(&empty, nil))
	assert.Empty(t, empty.String())

	var buf bytes.Buffer
	result := stats.Result{
		Mode:   model.ModeWords,
		Detail: "10 words",
		Text:   "english",
		Stats:  stats.GameStats{WPM: 60, RawWPM: 62, Accuracy: 97, Duration: 10 * time.Second},
		Series: []stats.Point{
			{Elapsed: 0},
			{Elapsed: 5 * time.Second, WPM: 58, RawWPM: 60},
			{Elapsed: 10 * time.Second, WPM: 60, RawWPM: 62},
		},
	}
	require.NoError(t, printResults(&buf, []stats.Result{result}))
	assert.Contains(t, buf.String(), "Avg WPM: 60.00")
	assert.Contains(t, buf.String(), chartTitle)
}
