// Package main provides the CLI entrypoint for kanape.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/kanape/internal/config"
	"github.com/verte-zerg/kanape/internal/generator"
	"github.com/verte-zerg/kanape/internal/grapheme"
	"github.com/verte-zerg/kanape/internal/logging"
	"github.com/verte-zerg/kanape/internal/model"
	"github.com/verte-zerg/kanape/internal/stats"
	"github.com/verte-zerg/kanape/internal/statsui"
	"github.com/verte-zerg/kanape/internal/store"
	"github.com/verte-zerg/kanape/internal/tui"
	"github.com/verte-zerg/kanape/internal/wordlist"
)

const (
	defaultProblems    = 10
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 20
	defaultSegmenter   = "grapheme"
	defaultLogLevel    = "info"
)

var (
	practiceProblems   int
	practiceWordList   string
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64
	practiceWeakWindow int
	practiceSegmenter  string

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsChars       string

	importName  string
	importForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "kanape",
		Short:        "Kana layout typing trainer",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runPracticeCmd,
	}

	rootCmd.Flags().IntVar(&practiceProblems, "problems", defaultProblems, "problems per session")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", wordlist.DefaultName, "word list name or path")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias practice toward weak characters")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak characters to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak characters")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak chars")
	rootCmd.Flags().StringVar(&practiceSegmenter, "segmenter", defaultSegmenter, "grapheme segmentation (grapheme or runes)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWordlistCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(cmd, "problems", &practiceProblems, fileCfg.Practice.Problems)
	applyConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)
	applyConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)
	applyConfig(cmd, "weak-window", &practiceWeakWindow, fileCfg.Practice.WeakWindow)
	applyConfig(cmd, "segmenter", &practiceSegmenter, fileCfg.Practice.Segmenter)

	cfg := model.Config{
		Problems:   practiceProblems,
		WordList:   practiceWordList,
		FocusWeak:  practiceFocusWeak,
		WeakTop:    practiceWeakTop,
		WeakFactor: practiceWeakFactor,
		WeakWindow: practiceWeakWindow,
		Segmenter:  practiceSegmenter,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	seg, _ := grapheme.ParseSegmenter(cfg.Segmenter)

	logger, err := openLogger(fileCfg.Log, true)
	if err != nil {
		return err
	}
	defer closeLogger(logger)

	words, wordPath, err := loadWordList(cfg.WordList)
	if err != nil {
		return err
	}
	words, dropped := wordlist.Filter(words)
	if dropped > 0 {
		logger.Warn("dropped untypable words", "wordlist", wordPath, "dropped", dropped)
	}
	if len(words) == 0 {
		return fmt.Errorf("word list %s has no typable words", wordPath)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}()

	var weakSet map[string]struct{}
	if cfg.FocusWeak {
		aggs, err := st.GetWeakChars(context.Background(), cfg.WeakWindow)
		if err != nil {
			logger.Error("failed to load weak chars", "err", err)
		} else {
			weakSet = stats.SelectWeakChars(aggs, cfg.WeakTop)
			if len(weakSet) == 0 {
				logErrln("no stats available for weak-char focus yet; using normal generator")
			}
		}
	}

	m, err := tui.NewModel(tui.Options{
		Config:       cfg,
		Store:        st,
		Logger:       logger.Logger,
		Generator:    generator.New(),
		Words:        words,
		WordListPath: wordPath,
		WeakSet:      weakSet,
		Segmenter:    seg,
	})
	if err != nil {
		return fmt.Errorf("failed to start practice: %w", err)
	}
	logger.Info("practice started", "problems", cfg.Problems, "wordlist", wordPath, "words", len(words), "segmenter", seg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadWordList resolves the embedded list or a word list file.
func loadWordList(name string) ([]string, string, error) {
	if name == "" || name == wordlist.DefaultName {
		if _, err := os.Stat(config.WordListPath(wordlist.DefaultName)); err != nil {
			return wordlist.Default(), wordlist.DefaultName, nil
		}
	}
	path := config.WordListPath(name)
	words, err := wordlist.LoadWords(path)
	if err != nil {
		return nil, path, wordListLoadError(name, path, err)
	}
	return words, path, nil
}

func wordListLoadError(name, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		fmt.Sprintf("Import: kanape wordlist --name %s <file>", name),
	}
	return errors.New(strings.Join(lines, "\n"))
}

func openLogger(cfg config.LogConfig, toFile bool) (*logging.Logger, error) {
	levelName := defaultLogLevel
	if cfg.Level != nil {
		levelName = *cfg.Level
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid [log] level: %w", err)
	}
	path := ""
	if toFile {
		path = config.DefaultLogPath()
		if cfg.File != nil && *cfg.File != "" {
			path = *cfg.File
		}
	}
	logger, err := logging.New(logging.Config{Level: level, FilePath: path})
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	return logger, nil
}

func closeLogger(l *logging.Logger) {
	if err := l.Close(); err != nil {
		logErrf("failed to close log: %v\n", err)
	}
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
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless a config exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsChars, "char", "", "characters for per-char curves")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	cfg, err := statsConfig(statsSince, statsLast, statsCurveWindow, statsChars)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func statsConfig(since string, last, window int, chars string) (model.StatsConfig, error) {
	cfg := model.StatsConfig{Last: last, CurveWindow: window, Chars: chars}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	if last < 0 {
		return cfg, errors.New("--last must be >= 0")
	}
	if window < 1 {
		return cfg, errors.New("--curve-window must be >= 1")
	}
	return cfg, nil
}

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist FILE",
		Short: "Import a word list, keeping only words typable on the kana layout",
		Args:  cobra.ExactArgs(1),
		RunE:  runWordlistCmd,
	}
	cmd.Flags().StringVar(&importName, "name", "", "word list name (default: file name)")
	cmd.Flags().BoolVar(&importForce, "force", false, "overwrite an existing word list")
	return cmd
}

func runWordlistCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := openLogger(fileCfg.Log, false)
	if err != nil {
		return err
	}
	defer closeLogger(logger)

	name := importName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	outPath, err := importWordList(args[0], name, importForce, logger)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
	return err
}

func importWordList(src, name string, force bool, logger *logging.Logger) (string, error) {
	if name == "" || strings.ContainsRune(name, os.PathSeparator) || strings.HasSuffix(name, ".txt") {
		return "", fmt.Errorf("invalid word list name %q", name)
	}
	outPath := config.WordListPath(name)
	if !force {
		if _, err := os.Stat(outPath); err == nil {
			return "", fmt.Errorf("word list already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat word list: %w", err)
		}
	}
	words, err := wordlist.LoadWords(src)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", src, err)
	}
	kept, dropped := wordlist.Filter(words)
	if dropped > 0 {
		logger.Warn("dropped untypable words", "source", src, "dropped", dropped, "kept", len(kept))
	}
	if len(kept) == 0 {
		return "", fmt.Errorf("%s has no words typable on the kana layout", src)
	}
	if err := writeWordList(outPath, kept); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	logger.Info("imported word list", "name", name, "path", outPath, "words", len(kept))
	return outPath, nil
}

func writeWordList(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create word list dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "wordlist-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp word list: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, word := range words {
		if _, err := fmt.Fprintln(writer, word); err != nil {
			return fmt.Errorf("failed to write word list: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush word list: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close word list: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	return nil
}

// applyConfig copies a file value into target unless the flag was set.
func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# kanape configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# problems = %d           # Problems per session
# wordlist = %q     # Word list name (in the wordlists dir) or path
# focus-weak = false      # Bias practice toward weak characters
# weak-top = %d           # Number of weak characters to focus on
# weak-factor = %.1f      # Weight factor for weak characters
# weak-window = %d        # Number of recent sessions to compute weak chars
# segmenter = %q  # "grapheme" or "runes"

[log]
# level = %q          # debug, info, warn or error
# file = ""               # Defaults to %s
`,
		defaultProblems,
		wordlist.DefaultName,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		defaultSegmenter,
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Problems <= 0 {
		return errors.New("--problems must be > 0")
	}
	if strings.TrimSpace(cfg.WordList) == "" {
		return errors.New("--wordlist must not be empty")
	}
	if cfg.WeakTop < 0 {
		return errors.New("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return errors.New("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return errors.New("--weak-window must be >= 0")
	}
	if _, ok := grapheme.ParseSegmenter(cfg.Segmenter); !ok {
		return fmt.Errorf("--segmenter must be grapheme or runes, got %q", cfg.Segmenter)
	}
	return nil
}

func logErrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}

func logErrln(args ...any) {
	_, _ = fmt.Fprintln(os.Stderr, args...)
}
