package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/kanape/internal/config"
	"github.com/verte-zerg/kanape/internal/logging"
	"github.com/verte-zerg/kanape/internal/model"
	"github.com/verte-zerg/kanape/internal/wordlist"
)

func validConfig() model.Config {
	return model.Config{
		Problems:   defaultProblems,
		WordList:   wordlist.DefaultName,
		WeakTop:    defaultWeakTop,
		WeakFactor: defaultWeakFactor,
		WeakWindow: defaultWeakWindow,
		Segmenter:  defaultSegmenter,
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(validConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	tests := []struct {
		name   string
		mutate func(*model.Config)
		want   string
	}{
		{"problems", func(c *model.Config) { c.Problems = 0 }, "--problems"},
		{"wordlist", func(c *model.Config) { c.WordList = " " }, "--wordlist"},
		{"weak-top", func(c *model.Config) { c.WeakTop = -1 }, "--weak-top"},
		{"weak-factor", func(c *model.Config) { c.WeakFactor = -0.5 }, "--weak-factor"},
		{"weak-window", func(c *model.Config) { c.WeakWindow = -1 }, "--weak-window"},
		{"segmenter", func(c *model.Config) { c.Segmenter = "words" }, "--segmenter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := validateConfig(cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %s error, got %v", tt.want, err)
			}
		})
	}
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	var problems int
	cmd := &cobra.Command{}
	cmd.Flags().IntVar(&problems, "problems", 10, "")
	fromFile := 3
	applyConfig(cmd, "problems", &problems, &fromFile)
	if problems != 3 {
		t.Fatalf("expected file value, got %d", problems)
	}
	if err := cmd.Flags().Set("problems", "7"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	applyConfig(cmd, "problems", &problems, &fromFile)
	if problems != 7 {
		t.Fatalf("expected flag value to win, got %d", problems)
	}
	applyConfig[int](cmd, "problems", &problems, nil)
	if problems != 7 {
		t.Fatalf("nil file value must not change target")
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Fatalf("template must decode: %v", err)
	}

	// Uncommented keys are all known to the decoder.
	var b strings.Builder
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
			if i := strings.Index(line, " #"); i >= 0 {
				line = line[:i]
			}
		}
		b.WriteString(line + "\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("uncommented template must decode: %v", err)
	}
	if cfg.Practice.Problems == nil || *cfg.Practice.Problems != defaultProblems {
		t.Fatalf("unexpected problems %+v", cfg.Practice.Problems)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != defaultLogLevel {
		t.Fatalf("unexpected log level %+v", cfg.Log.Level)
	}
}

func TestEnsureConfigFileKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("[practice]\nproblems = 4\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[practice]\nproblems = 4\n" {
		t.Fatalf("existing config was overwritten: %q", data)
	}
}

func TestStatsConfig(t *testing.T) {
	cfg, err := statsConfig("2024-05-01", 3, 5, "ねこ")
	if err != nil {
		t.Fatalf("stats config: %v", err)
	}
	if cfg.Since == nil || cfg.Since.Month() != 5 || cfg.Last != 3 || cfg.CurveWindow != 5 || cfg.Chars != "ねこ" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if _, err := statsConfig("yesterday", 0, 5, ""); err == nil {
		t.Fatalf("expected --since error")
	}
	if _, err := statsConfig("", -1, 5, ""); err == nil {
		t.Fatalf("expected --last error")
	}
	if _, err := statsConfig("", 0, 0, ""); err == nil {
		t.Fatalf("expected --curve-window error")
	}
}

func TestImportWordList(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	src := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(src, []byte("ねこ\nabc\n\nがっこう\nねこ\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	logger := logging.Discard()

	out, err := importWordList(src, "animals", false, logger)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if out != config.WordListPath("animals") {
		t.Fatalf("unexpected output path %s", out)
	}
	words, err := wordlist.LoadWords(out)
	if err != nil {
		t.Fatalf("load imported: %v", err)
	}
	if len(words) != 2 || words[0] != "ねこ" {
		t.Fatalf("unexpected imported words %v", words)
	}

	if _, err := importWordList(src, "animals", false, logger); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected overwrite error, got %v", err)
	}
	if _, err := importWordList(src, "animals", true, logger); err != nil {
		t.Fatalf("forced import: %v", err)
	}
	if _, err := importWordList(src, "bad.txt", false, logger); err == nil {
		t.Fatalf("expected invalid name error")
	}
}

func TestImportWordListRejectsUntypable(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	src := filepath.Join(t.TempDir(), "latin.txt")
	if err := os.WriteFile(src, []byte("hello\nworld\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if _, err := importWordList(src, "latin", false, logging.Discard()); err == nil {
		t.Fatalf("expected error for list without typable words")
	}
}

func TestLoadWordListFallsBackToEmbedded(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	words, path, err := loadWordList(wordlist.DefaultName)
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	if path != wordlist.DefaultName || len(words) == 0 {
		t.Fatalf("expected embedded list, got %s (%d words)", path, len(words))
	}
	if _, _, err := loadWordList("missing"); err == nil || !strings.Contains(err.Error(), "kanape wordlist") {
		t.Fatalf("expected import hint, got %v", err)
	}
}
