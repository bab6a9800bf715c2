// Package game drives a practice session: a fixed sequence of problems, each
// typed to completion, followed by a score summary.
package game

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/verte-zerg/kanape/internal/grapheme"
	"github.com/verte-zerg/kanape/internal/kana"
	"github.com/verte-zerg/kanape/internal/match"
	"github.com/verte-zerg/kanape/internal/model"
)

// ErrNoProblems is returned when a session is created without problems.
var ErrNoProblems = errors.New("no problems to practice")

type charStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// Outcome describes the effect of one key event.
type Outcome struct {
	State     match.State
	RoundDone bool
	Round     match.RoundResult
	Finished  bool
}

// Summary aggregates every finished round.
type Summary struct {
	Problems    int
	Chars       int
	TotalTime   time.Duration
	AvgTime     float64
	AvgAccuracy float64
	AvgSpeed    int
	Score       int
}

// Game is not safe for concurrent use.
type Game struct {
	problems []string
	index    int
	session  *match.Session
	now      func() time.Time
	seg      grapheme.Segmenter

	rounds []match.RoundResult
	chars  map[string]*charStat

	prevPrefix    int
	prevCorrectAt time.Time

	startedAt time.Time
	endedAt   time.Time
}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces the wall clock for the game and its rounds.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// WithSegmenter selects grapheme segmentation for every round.
func WithSegmenter(seg grapheme.Segmenter) Option {
	return func(g *Game) {
		g.seg = seg
	}
}

// New starts a game over the given problems. Every problem must be non-empty.
func New(problems []string, opts ...Option) (*Game, error) {
	if len(problems) == 0 {
		return nil, ErrNoProblems
	}
	for i, p := range problems {
		if p == "" {
			return nil, fmt.Errorf("problem %d is empty", i+1)
		}
	}
	g := &Game{
		problems: append([]string(nil), problems...),
		now:      time.Now,
		seg:      grapheme.SegmentClusters,
		chars:    map[string]*charStat{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.session = match.NewSession(match.WithClock(g.now), match.WithSegmenter(g.seg))
	g.load()
	return g, nil
}

func (g *Game) load() {
	g.session.Load(g.problems[g.index])
	g.prevPrefix = 0
	g.prevCorrectAt = time.Time{}
}

// Current returns the problem being typed, or "" once finished.
func (g *Game) Current() string {
	if g.Finished() {
		return ""
	}
	return g.problems[g.index]
}

// Index is the zero-based position of the current problem.
func (g *Game) Index() int {
	return g.index
}

// Total is the number of problems in the game.
func (g *Game) Total() int {
	return len(g.problems)
}

// Finished reports whether every problem was completed.
func (g *Game) Finished() bool {
	return g.index >= len(g.problems)
}

// Session exposes the round in progress.
func (g *Game) Session() *match.Session {
	return g.session
}

// Rounds returns the finished rounds in order.
func (g *Game) Rounds() []match.RoundResult {
	return append([]match.RoundResult(nil), g.rounds...)
}

// StartedAt is the time of the first keystroke of the game.
func (g *Game) StartedAt() time.Time {
	return g.startedAt
}

// EndedAt is the completion time of the last round.
func (g *Game) EndedAt() time.Time {
	return g.endedAt
}

// Handle forwards a key event to the current round and advances to the next
// problem when the round completes.
func (g *Game) Handle(ev kana.KeyEvent) Outcome {
	if g.Finished() {
		return Outcome{State: g.session.State(), Finished: true}
	}
	st := g.session.Handle(ev)
	if g.startedAt.IsZero() && g.session.Phase() != match.PhaseIdle {
		g.startedAt = g.now()
	}
	g.trackLatency(st)

	out := Outcome{State: st}
	if g.session.Phase() != match.PhaseComplete {
		return out
	}
	res := g.session.Result()
	g.finishRound(res)
	out.RoundDone = true
	out.Round = res

	g.index++
	if g.Finished() {
		g.endedAt = g.now()
		out.Finished = true
		return out
	}
	g.load()
	return out
}

func (g *Game) trackLatency(st match.State) {
	if st.Prefix <= g.prevPrefix {
		g.prevPrefix = st.Prefix
		return
	}
	now := g.now()
	for i := g.prevPrefix; i < st.Prefix; i++ {
		entry := g.charEntry(st.Cells[i].Target)
		if !g.prevCorrectAt.IsZero() {
			entry.latencySumMs += now.Sub(g.prevCorrectAt).Milliseconds()
			entry.latencyCount++
		}
	}
	g.prevCorrectAt = now
	g.prevPrefix = st.Prefix
}

func (g *Game) finishRound(res match.RoundResult) {
	g.rounds = append(g.rounds, res)
	for i, cell := range g.session.State().Cells {
		if isBlank(cell.Target) {
			continue
		}
		entry := g.charEntry(cell.Target)
		if g.session.WasWrong(i) {
			entry.incorrect++
		} else {
			entry.correct++
		}
	}
}

func (g *Game) charEntry(char string) *charStat {
	char = grapheme.NFC(char)
	entry, ok := g.chars[char]
	if !ok {
		entry = &charStat{}
		g.chars[char] = entry
	}
	return entry
}

func isBlank(s string) bool {
	return s == " " || s == "\n" || s == "　"
}

// CharStats returns per-character counts for finished rounds, sorted by
// character.
func (g *Game) CharStats() []model.CharStats {
	out := make([]model.CharStats, 0, len(g.chars))
	for ch, entry := range g.chars {
		if entry.correct+entry.incorrect == 0 {
			continue
		}
		out = append(out, model.CharStats{
			Char:         ch,
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Char < out[j].Char
	})
	return out
}

// Summary aggregates the finished rounds.
func (g *Game) Summary() Summary {
	return Summarize(g.rounds)
}

// Summarize computes average time in seconds, average accuracy, average speed
// and the final score over rounds.
func Summarize(rounds []match.RoundResult) Summary {
	s := Summary{Problems: len(rounds)}
	if len(rounds) == 0 {
		return s
	}
	var accSum int
	for _, r := range rounds {
		s.TotalTime += r.Elapsed
		s.Chars += r.Chars
		accSum += r.Accuracy
	}
	n := float64(len(rounds))
	s.AvgTime = s.TotalTime.Seconds() / n
	s.AvgAccuracy = float64(accSum) / n
	s.AvgSpeed = match.Speed(s.Chars, s.TotalTime)
	s.Score = Score(s.AvgSpeed, s.AvgTime)
	return s
}

// Score rewards high speed over short rounds: round(avgSpeed / avgTime).
func Score(avgSpeed int, avgTime float64) int {
	if avgTime <= 0 {
		return 0
	}
	return int(math.Round(float64(avgSpeed) / avgTime))
}

// SessionStats converts the finished game into a persistable record.
func (g *Game) SessionStats(wordListPath string) model.SessionStats {
	sum := g.Summary()
	return model.SessionStats{
		StartedAt:    g.startedAt,
		EndedAt:      g.endedAt,
		Problems:     sum.Problems,
		WordListPath: wordListPath,
		Chars:        sum.Chars,
		DurationMs:   sum.TotalTime.Milliseconds(),
		AvgAccuracy:  sum.AvgAccuracy,
		AvgSpeed:     sum.AvgSpeed,
		Score:        sum.Score,
	}
}

// RoundStats converts the finished rounds into persistable records.
func (g *Game) RoundStats() []model.RoundStats {
	out := make([]model.RoundStats, 0, len(g.rounds))
	for i, r := range g.rounds {
		out = append(out, model.RoundStats{
			Index:      i,
			Target:     r.Target,
			DurationMs: r.Elapsed.Milliseconds(),
			Accuracy:   r.Accuracy,
			Speed:      r.Speed,
			Chars:      r.Chars,
			Wrong:      len(r.Wrong),
		})
	}
	return out
}
