// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanape/internal/game"
	"github.com/verte-zerg/kanape/internal/generator"
	"github.com/verte-zerg/kanape/internal/grapheme"
	"github.com/verte-zerg/kanape/internal/kana"
	"github.com/verte-zerg/kanape/internal/match"
	"github.com/verte-zerg/kanape/internal/model"
	statsPkg "github.com/verte-zerg/kanape/internal/stats"
	"github.com/verte-zerg/kanape/internal/store"
)

type screen int

const (
	screenPractice screen = iota
	screenScore
)

// Options wires the practice screen.
type Options struct {
	Config       model.Config
	Store        *store.Store
	Logger       *slog.Logger
	Generator    *generator.Generator
	Words        []string
	WordListPath string
	WeakSet      map[string]struct{}
	Segmenter    grapheme.Segmenter
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	opts Options
	log  *slog.Logger

	game   *game.Game
	screen screen

	width  int
	height int

	lastRound match.RoundResult
	hasRound  bool
	summary   game.Summary
	bestScore int
	hasBest   bool
	isRecord  bool

	keys keyMap
	help help.Model
}

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	typedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	hintTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0"))
)

// NewModel constructs a typing TUI model and deals the first game.
func NewModel(opts Options) (*Model, error) {
	if len(opts.Words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	if opts.Config.Problems <= 0 {
		return nil, fmt.Errorf("problem count must be > 0")
	}
	if opts.Generator == nil {
		opts.Generator = generator.New()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Model{
		opts: opts,
		log:  log,
		keys: newKeyMap(),
		help: help.New(),
	}
	if err := m.newGame(); err != nil {
		return nil, err
	}
	m.loadBestScore()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.screen == screenScore {
			return m.updateScore(msg)
		}
		return m.updatePractice(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateScore(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Leave):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		if err := m.newGame(); err != nil {
			m.log.Error("failed to start game", "err", err)
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) updatePractice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		m.handle(kana.Press(kana.Backspace, false))
	case tea.KeySpace:
		m.handle(kana.Press(kana.Space, false))
	case tea.KeyEnter:
		m.handle(kana.Press(kana.Enter, false))
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			for _, ev := range eventsForRune(r) {
				m.handle(ev)
			}
		}
	}
	return m, nil
}

// eventsForRune maps a terminal rune to key presses. A precomposed voiced
// kana from a host input method becomes its base key followed by the mark key.
func eventsForRune(r rune) []kana.KeyEvent {
	if ev, ok := kana.EventFromRune(r); ok {
		return []kana.KeyEvent{ev}
	}
	g := string(r)
	markKey := kana.MarkKey(grapheme.MarkOf(g))
	if markKey == kana.KeyNone {
		return nil
	}
	base, _ := grapheme.Decompose(g)
	baseRunes := []rune(base)
	if len(baseRunes) != 1 {
		return nil
	}
	ev, ok := kana.EventFromRune(baseRunes[0])
	if !ok {
		return nil
	}
	return []kana.KeyEvent{ev, kana.Press(markKey, false)}
}

func (m *Model) handle(ev kana.KeyEvent) {
	if m.screen != screenPractice {
		return
	}
	out := m.game.Handle(ev)
	if out.RoundDone {
		m.lastRound = out.Round
		m.hasRound = true
		m.log.Debug("round complete",
			"target", out.Round.Target,
			"elapsed", out.Round.Elapsed,
			"accuracy", out.Round.Accuracy,
			"speed", out.Round.Speed)
	}
	if out.Finished {
		m.finishGame()
	}
}

func (m *Model) newGame() error {
	problems := m.generateProblems()
	g, err := game.New(problems, game.WithSegmenter(m.opts.Segmenter), game.WithClock(m.opts.Clock))
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	m.game = g
	m.screen = screenPractice
	m.hasRound = false
	m.isRecord = false
	return nil
}

func (m *Model) generateProblems() []string {
	cfg := m.opts.Config
	if cfg.FocusWeak && len(m.opts.WeakSet) > 0 {
		return m.opts.Generator.GenerateWeighted(m.opts.Words, cfg.Problems, m.opts.WeakSet, cfg.WeakFactor)
	}
	return m.opts.Generator.Generate(m.opts.Words, cfg.Problems)
}

func (m *Model) finishGame() {
	m.summary = m.game.Summary()
	m.screen = screenScore
	m.isRecord = !m.hasBest || m.summary.Score > m.bestScore
	if m.isRecord {
		m.bestScore = m.summary.Score
		m.hasBest = true
	}
	m.log.Info("session complete",
		"problems", m.summary.Problems,
		"score", m.summary.Score,
		"avg_speed", m.summary.AvgSpeed,
		"avg_accuracy", m.summary.AvgAccuracy)

	if m.opts.Store == nil {
		return
	}
	ctx := context.Background()
	stats := m.game.SessionStats(m.opts.WordListPath)
	if _, err := m.opts.Store.InsertSession(ctx, stats, m.game.RoundStats(), m.game.CharStats()); err != nil {
		m.log.Error("failed to save session", "err", err)
	}
	if m.opts.Config.FocusWeak {
		m.refreshWeakSet()
	}
}

func (m *Model) loadBestScore() {
	if m.opts.Store == nil {
		return
	}
	best, err := m.opts.Store.BestSessions(context.Background(), 1)
	if err != nil {
		m.log.Error("failed to load best score", "err", err)
		return
	}
	if len(best) > 0 {
		m.bestScore = best[0].Score
		m.hasBest = true
	}
}

func (m *Model) refreshWeakSet() {
	aggs, err := m.opts.Store.GetWeakChars(context.Background(), m.opts.Config.WeakWindow)
	if err != nil {
		m.log.Error("failed to load weak chars", "err", err)
		return
	}
	m.opts.WeakSet = statsPkg.SelectWeakChars(aggs, m.opts.Config.WeakTop)
	m.log.Debug("weak chars refreshed", "count", len(m.opts.WeakSet))
}

// View implements tea.Model.
func (m *Model) View() string {
	var content, helpView string
	if m.screen == screenScore {
		content = m.renderScore()
		helpView = m.help.View(scoreHelp{m.keys})
	} else {
		content = m.renderPractice()
		helpView = m.help.View(practiceHelp{m.keys})
	}
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + helpView
	}
	footer := m.renderFooter()
	bodyHeight := max(1, m.height-2)
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer) + "\n" +
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, helpView)
}

func (m *Model) renderPractice() string {
	session := m.game.Session()
	st := session.State()
	cursor := -1
	if st.Prefix < len(st.Cells) {
		cursor = st.Prefix
	}
	cells := buildStyledCells(st.Cells, cursor)
	contentWidth := 0
	if m.width > 0 {
		contentWidth = max(1, int(float64(m.width)*0.70))
	}
	problem := wrapStyledCells(cells, contentWidth)

	typed := session.Typed()
	if typed == "" {
		typed = " "
	}
	shifted := session.ShiftHeld() || st.Hint.Reason == match.HintShift
	parts := []string{
		titleStyle.Render(fmt.Sprintf("Problem %d/%d", m.game.Index()+1, m.game.Total())),
		"",
		problem,
		typedStyle.Render(typed),
		"",
		renderKeyboard(st.Hint, shifted),
		hintTextStyle.Render(hintText(st.Hint)),
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func hintText(h match.Hint) string {
	switch h.Reason {
	case match.HintKey:
		return fmt.Sprintf("next: %s", h.Label)
	case match.HintMark:
		return fmt.Sprintf("next: sound mark %s", h.Label)
	case match.HintShift:
		if h.Key == kana.ShiftRight {
			return "next: right Shift"
		}
		return "next: left Shift"
	default:
		return " "
	}
}

func (m *Model) renderScore() string {
	s := m.summary
	lines := []string{
		titleStyle.Render("Results"),
		"",
		fmt.Sprintf("Problems      %d", s.Problems),
		fmt.Sprintf("Avg time      %.2f s", s.AvgTime),
		fmt.Sprintf("Avg accuracy  %.1f%%", s.AvgAccuracy),
		fmt.Sprintf("Avg speed     %d chars/min", s.AvgSpeed),
		fmt.Sprintf("Score         %d", s.Score),
	}
	if m.isRecord {
		lines = append(lines, "", titleStyle.Render("New best score!"))
	} else if m.hasBest {
		lines = append(lines, "", fmt.Sprintf("Best          %d", m.bestScore))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderFooter() string {
	if m.screen != screenPractice {
		return ""
	}
	session := m.game.Session()
	segments := []string{
		fmt.Sprintf("Accuracy %d%%", session.Accuracy()),
		fmt.Sprintf("Speed %d/min", session.Speed()),
	}
	if m.hasRound {
		segments = append(segments, fmt.Sprintf("Last %s %.2fs · %d%%", m.lastRound.Target, m.lastRound.Elapsed.Seconds(), m.lastRound.Accuracy))
	}
	if m.hasBest {
		segments = append(segments, fmt.Sprintf("Best %d", m.bestScore))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
