// Package main provides the CLI entrypoint for ttt.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/ttt/internal/app"
	"github.com/verte-zerg/ttt/internal/config"
	"github.com/verte-zerg/ttt/internal/logging"
	"github.com/verte-zerg/ttt/internal/mode"
	"github.com/verte-zerg/ttt/internal/model"
	"github.com/verte-zerg/ttt/internal/stats"
	"github.com/verte-zerg/ttt/internal/tui"
	"github.com/verte-zerg/ttt/internal/wordlist"
)

const chartTitle = "WPM over time"

var (
	configPath   string
	useDefaults  bool
	saveConfig   bool
	logLevel     string
	logFile      string
	textsDir     string
	seed         int64
	testMode     string
	testText     string
	testDuration int
	testCount    int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ttt",
		Short:        "Terminal typing test",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTest(cmd, "")
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultConfigPath(), "config file (.toml, .yaml or .json)")
	flags.BoolVar(&useDefaults, "defaults", false, "ignore the config file")
	flags.BoolVar(&saveConfig, "save-config", false, "write the resulting settings to the config file and exit")
	flags.StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "append diagnostic logs to this file")
	flags.Lookup("log-file").NoOptDefVal = config.DefaultLogPath()
	flags.StringVar(&textsDir, "texts-dir", config.DefaultTextsDir(), "directory with user texts")
	flags.Int64Var(&seed, "seed", 0, "seed for word selection (random when unset)")

	rootCmd.Flags().StringVarP(&testMode, "mode", "m", model.DefaultMode, "test mode: "+strings.Join(mode.Names(), ", "))
	addTextFlag(rootCmd)
	addDurationFlag(rootCmd)
	addCountFlag(rootCmd)

	rootCmd.AddCommand(newModeCmd(model.ModeClock, "Type as many words as possible before time runs out", addTextFlag, addDurationFlag))
	rootCmd.AddCommand(newModeCmd(model.ModeWords, "Type a fixed number of words", addTextFlag, addCountFlag))
	rootCmd.AddCommand(newModeCmd(model.ModeZen, "Type freely, finish with enter"))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTextsCmd())

	return rootCmd
}

func addTextFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&testText, "text", "t", model.DefaultText, "text to draw words from")
}

func addDurationFlag(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&testDuration, "duration", "d", model.DefaultDuration, "clock duration in seconds")
}

func addCountFlag(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&testCount, "count", "c", model.DefaultCount, "number of words")
}

func newModeCmd(name, short string, flags ...func(*cobra.Command)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTest(cmd, name)
		},
	}
	for _, add := range flags {
		add(cmd)
	}
	return cmd
}

func loadFileConfig() (config.FileConfig, error) {
	if useDefaults {
		return config.FileConfig{}, nil
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveSettings merges config values under explicit flags. A fixed mode
// comes from the subcommand.
func resolveSettings(cmd *cobra.Command, fileCfg config.FileConfig, fixedMode string) (model.Settings, error) {
	d := fileCfg.Defaults
	applyStringConfig(cmd, "mode", &testMode, d.Mode)
	applyStringConfig(cmd, "text", &testText, d.Text)
	applyIntConfig(cmd, "duration", &testDuration, d.Duration)
	applyIntConfig(cmd, "count", &testCount, d.Count)
	if fixedMode != "" {
		testMode = fixedMode
	}
	if err := validateFlags(cmd); err != nil {
		return model.Settings{}, err
	}
	s := model.Settings{
		Mode:     strings.ToLower(strings.TrimSpace(testMode)),
		Text:     strings.TrimSpace(testText),
		Duration: testDuration,
		Count:    testCount,
	}
	return s.Normalize(), nil
}

func validateFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("mode") && !isModeName(testMode) {
		return fmt.Errorf("--mode must be one of %s", strings.Join(mode.Names(), ", "))
	}
	if flags.Changed("duration") && testDuration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if flags.Changed("count") && testCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	if flags.Changed("text") && strings.TrimSpace(testText) == "" {
		return fmt.Errorf("--text must not be empty")
	}
	return nil
}

func isModeName(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range mode.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func openLog(cmd *cobra.Command, fileCfg config.FileConfig) (zerolog.Logger, io.Closer, error) {
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	log, closer, err := logging.New(logFile, logLevel)
	if err != nil {
		return log, closer, fmt.Errorf("failed to open log: %w", err)
	}
	return log, closer, nil
}

func runTest(cmd *cobra.Command, fixedMode string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cmd, fileCfg, fixedMode)
	if err != nil {
		return err
	}

	if saveConfig {
		if err := config.SaveConfig(configPath, fileCfg.WithSettings(settings)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Saved config to %s\n", configPath)
		return err
	}

	log, closer, err := openLog(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()
	log.Info().Str("mode", settings.Mode).Str("text", settings.Text).Msg("starting")

	opts := []app.Option{app.WithLogger(log)}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, app.WithModeOptions(mode.WithSeed(seed)))
	}
	a := app.New(settings, wordlist.NewLoader(textsDir), opts...)
	if err := a.Err(); err != nil {
		logErrf("%v\n", err)
	}

	program := tea.NewProgram(tui.NewModel(a, tui.NewTheme(fileCfg.Theme)), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run tui: %w", err)
	}
	return printResults(cmd.OutOrStdout(), a.Results())
}

func printResults(w io.Writer, results []stats.Result) error {
	if len(results) == 0 {
		return nil
	}
	if err := stats.RenderSummary(w, results); err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}
	last := results[len(results)-1]
	if len(last.Series) < 2 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := stats.WriteChart(w, chartTitle, last.Series, 0, 0); err != nil {
		return fmt.Errorf("failed to print chart: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(configTemplate(path)), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// configTemplate returns a commented TOML template, or the encoded defaults
// for YAML and JSON paths, which have no comment-preserving template.
func configTemplate(path string) string {
	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err := config.Encode(path, config.FileConfig{}.WithSettings(model.DefaultSettings()))
		if err != nil {
			return ""
		}
		return string(data)
	}
	return fmt.Sprintf(`# ttt configuration
# Uncomment a value to enable it. CLI flags override config values.

[defaults]
# mode = %q          # clock, words or zen
# text = %q        # Built-in text or a file in %s
# duration = %d           # Clock duration in seconds
# count = %d              # Words per words test

[theme]
# Hex colours or ANSI numbers.
# correct = "#F0F0F0"
# incorrect = "#FF4D4F"
# pending = "#8C8C8C"
# skipped = "#A05A5A"
# extra = "#B8323A"
# cursor = "#F0F0F0"
# selected = "#F0F0F0"
# editing = "#C89A3A"
# accent = "#C89A3A"
# muted = "#6E6E6E"

[log]
# level = %q
# file = %q
`,
		model.DefaultMode,
		model.DefaultText,
		config.DefaultTextsDir(),
		model.DefaultDuration,
		model.DefaultCount,
		logging.DefaultLevel,
		config.DefaultLogPath(),
	)
}

func newTextsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "texts",
		Short: "List available texts",
		Args:  cobra.NoArgs,
		RunE:  runTextsCmd,
	}
}

func runTextsCmd(cmd *cobra.Command, _ []string) error {
	texts, err := wordlist.NewLoader(textsDir).Texts()
	if err != nil {
		return fmt.Errorf("failed to list texts: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, t := range texts {
		line := fmt.Sprintf("%-16s %s", t.Name, t.Source)
		if t.Path != "" {
			line += "  " + t.Path
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
