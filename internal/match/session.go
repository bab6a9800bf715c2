package match

import (
	"sort"
	"time"

	"github.com/verte-zerg/kanape/internal/compose"
	"github.com/verte-zerg/kanape/internal/grapheme"
	"github.com/verte-zerg/kanape/internal/kana"
)

// Phase is the lifecycle stage of one target.
type Phase int

const (
	// PhaseIdle means the target is shown but nothing was typed yet.
	PhaseIdle Phase = iota
	// PhaseInProgress means the timer runs and the buffer is partial.
	PhaseInProgress
	// PhaseComplete means the buffer canonically equals the target.
	PhaseComplete
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in-progress"
	case PhaseComplete:
		return "complete"
	default:
		return "idle"
	}
}

// RoundResult summarizes a finished target.
type RoundResult struct {
	Target   string
	Elapsed  time.Duration
	Accuracy int
	Speed    int
	Chars    int
	Wrong    []int
}

// Session owns the buffer, wrong set and timer for one target at a time.
// It is not safe for concurrent use; the host serializes key events.
type Session struct {
	now    func() time.Time
	seg    grapheme.Segmenter
	buf    *compose.Buffer
	text   string
	target []string
	wrong  map[int]struct{}
	state  State
	phase  Phase

	startedAt time.Time
	endedAt   time.Time

	shiftLeft  bool
	shiftRight bool
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithSegmenter selects grapheme segmentation.
func WithSegmenter(seg grapheme.Segmenter) Option {
	return func(s *Session) {
		s.seg = seg
	}
}

// NewSession returns a session with no target loaded.
func NewSession(opts ...Option) *Session {
	s := &Session{now: time.Now, seg: grapheme.SegmentClusters}
	for _, opt := range opts {
		opt(s)
	}
	s.buf = compose.New(s.seg)
	s.Load("")
	return s
}

// Load starts a new target. The buffer, wrong set and timer are cleared; an
// empty target is complete immediately.
func (s *Session) Load(target string) State {
	s.text = target
	s.target = s.seg.Split(target)
	s.buf.Reset()
	s.wrong = map[int]struct{}{}
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	s.phase = PhaseIdle
	s.refresh()
	return s.state
}

// Handle applies one key event and returns the recomputed state. Events that
// change nothing return the current state unchanged.
func (s *Session) Handle(ev kana.KeyEvent) State {
	if ev.Key.IsShift() {
		held := !ev.Up
		if ev.Key == kana.ShiftLeft {
			s.shiftLeft = held
		} else {
			s.shiftRight = held
		}
		s.state.Hint = nextHint(s.buf.Graphemes(), s.target, s.state.Prefix, s.ShiftHeld())
		return s.state
	}
	if ev.Up || s.phase == PhaseComplete {
		return s.state
	}

	var changed bool
	if ev.Backspace || kana.IsBackspace(ev.Key) {
		changed = s.buf.RemoveLast()
	} else {
		unit := kana.Translate(ev.Key, ev.Shift || s.ShiftHeld())
		if unit.IsNone() {
			return s.state
		}
		if s.phase == PhaseIdle {
			s.phase = PhaseInProgress
			s.startedAt = s.now()
		}
		changed = s.buf.Append(unit)
	}
	if changed {
		s.refresh()
	}
	return s.state
}

func (s *Session) refresh() {
	s.state = Recompute(s.buf.Graphemes(), s.target, s.ShiftHeld())
	for _, i := range s.state.Wrong {
		s.wrong[i] = struct{}{}
	}
	if s.state.Complete && s.phase != PhaseComplete {
		if s.phase == PhaseInProgress {
			s.endedAt = s.now()
		}
		s.phase = PhaseComplete
	}
}

// ShiftHeld reports whether either shift key is down.
func (s *Session) ShiftHeld() bool {
	return s.shiftLeft || s.shiftRight
}

// State returns the latest match state.
func (s *Session) State() State {
	return s.state
}

// Phase returns the lifecycle stage of the current target.
func (s *Session) Phase() Phase {
	return s.phase
}

// Target returns the current target text.
func (s *Session) Target() string {
	return s.text
}

// Typed returns the buffer content.
func (s *Session) Typed() string {
	return s.buf.String()
}

// WrongIndices returns every position marked wrong since the target loaded.
func (s *Session) WrongIndices() []int {
	out := make([]int, 0, len(s.wrong))
	for i := range s.wrong {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// WasWrong reports whether position i has been marked wrong.
func (s *Session) WasWrong(i int) bool {
	_, ok := s.wrong[i]
	return ok
}

// Elapsed is the time since the first keystroke, frozen on completion.
func (s *Session) Elapsed() time.Duration {
	switch s.phase {
	case PhaseInProgress:
		return s.now().Sub(s.startedAt)
	case PhaseComplete:
		if s.startedAt.IsZero() {
			return 0
		}
		return s.endedAt.Sub(s.startedAt)
	default:
		return 0
	}
}

// Accuracy returns the accuracy percentage for the current target.
func (s *Session) Accuracy() int {
	return Accuracy(len(s.wrong), len(s.target))
}

// Speed returns confirmed characters per minute for the current target.
func (s *Session) Speed() int {
	return Speed(s.state.Prefix, s.Elapsed())
}

// Result summarizes the current target.
func (s *Session) Result() RoundResult {
	return RoundResult{
		Target:   s.text,
		Elapsed:  s.Elapsed(),
		Accuracy: s.Accuracy(),
		Speed:    s.Speed(),
		Chars:    len(s.target),
		Wrong:    s.WrongIndices(),
	}
}
