// Package match diffs the typed buffer against a target string grapheme by
// grapheme and tracks the per-target typing session.
package match

import (
	"strings"

	"github.com/verte-zerg/kanape/internal/grapheme"
	"github.com/verte-zerg/kanape/internal/kana"
)

// Status classifies one target grapheme.
type Status int

const (
	// StatusPending means the position has not been attempted.
	StatusPending Status = iota
	StatusCorrect
	StatusWrong
	// StatusMarkPending means the base was struck at the last typed position
	// and the sound mark may still follow. No verdict yet.
	StatusMarkPending
	// StatusMarkWrong means the base is right but the learner moved on
	// without the sound mark.
	StatusMarkWrong
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusCorrect:
		return "correct"
	case StatusWrong:
		return "wrong"
	case StatusMarkPending:
		return "mark-pending"
	case StatusMarkWrong:
		return "mark-wrong"
	default:
		return "pending"
	}
}

// IsPending reports whether no verdict has been reached.
func (s Status) IsPending() bool {
	return s == StatusPending || s == StatusMarkPending
}

// Cell is the classification of one target grapheme, split into the base
// character and its spacing sound mark for display.
type Cell struct {
	Target string
	Base   string
	Mark   string
	Status Status
}

// BaseStatus returns the verdict on the base character alone.
func (c Cell) BaseStatus() Status {
	switch c.Status {
	case StatusMarkWrong, StatusMarkPending:
		return StatusCorrect
	default:
		return c.Status
	}
}

// MarkStatus returns the verdict on the sound mark, or StatusPending when the
// grapheme has none.
func (c Cell) MarkStatus() Status {
	if c.Mark == "" {
		return StatusPending
	}
	switch c.Status {
	case StatusMarkWrong:
		return StatusWrong
	case StatusMarkPending:
		return StatusPending
	default:
		return c.Status
	}
}

// HintReason says why a key is suggested.
type HintReason int

const (
	HintNone HintReason = iota
	// HintKey suggests the key producing the next character.
	HintKey
	// HintMark suggests the sound-mark key for an already typed base.
	HintMark
	// HintShift suggests pressing a shift key first.
	HintShift
)

// Hint names the key the learner should press next.
type Hint struct {
	Key    kana.KeyID
	Label  string
	Reason HintReason
}

// State is the derived result of comparing the buffer with the target.
type State struct {
	// Prefix counts leading graphemes that canonically match the target.
	Prefix   int
	Cells    []Cell
	Wrong    []int
	Typed    int
	Complete bool
	Hint     Hint
}

// Recompute classifies typed against target. shiftHeld reports whether a
// shift key is currently held, which only affects the hint. It is a pure
// function of its inputs.
func Recompute(typed, target []string, shiftHeld bool) State {
	st := State{
		Prefix: prefixLength(typed, target),
		Typed:  len(typed),
		Cells:  make([]Cell, len(target)),
	}
	for i, tg := range target {
		cell := splitCell(tg)
		mark := grapheme.MarkOf(tg)
		switch {
		case i < st.Prefix:
			cell.Status = StatusCorrect
		case i >= len(typed):
			cell.Status = StatusPending
		case mark != grapheme.MarkNone && grapheme.CanonicalEqual(typed[i], cell.Base):
			if i < len(typed)-1 {
				cell.Status = StatusMarkWrong
				st.Wrong = append(st.Wrong, i)
			} else {
				cell.Status = StatusMarkPending
			}
		case grapheme.CanonicalEqual(typed[i], tg):
			cell.Status = StatusCorrect
		default:
			cell.Status = StatusWrong
			st.Wrong = append(st.Wrong, i)
		}
		st.Cells[i] = cell
	}
	st.Complete = grapheme.NFC(strings.Join(typed, "")) == grapheme.NFC(strings.Join(target, ""))
	st.Hint = nextHint(typed, target, st.Prefix, shiftHeld)
	return st
}

func prefixLength(typed, target []string) int {
	n := min(len(typed), len(target))
	for i := 0; i < n; i++ {
		if !grapheme.CanonicalEqual(typed[i], target[i]) {
			return i
		}
	}
	return n
}

func splitCell(g string) Cell {
	mark := grapheme.MarkOf(g)
	if mark == grapheme.MarkNone {
		return Cell{Target: g, Base: g}
	}
	base, _ := grapheme.Decompose(g)
	return Cell{Target: g, Base: base, Mark: grapheme.SpacingMark(mark)}
}

func nextHint(typed, target []string, idx int, shiftHeld bool) Hint {
	if idx >= len(target) {
		return Hint{}
	}
	tg := target[idx]
	base, _ := grapheme.Decompose(tg)
	if mark := grapheme.MarkOf(tg); mark != grapheme.MarkNone && idx < len(typed) && grapheme.CanonicalEqual(typed[idx], base) {
		return Hint{Key: kana.MarkKey(mark), Label: grapheme.SpacingMark(mark), Reason: HintMark}
	}
	if kana.ShiftOnly(tg) {
		if !shiftHeld {
			key := kana.ShiftKeyFor(tg)
			return Hint{Key: key, Label: kana.Label(key, false), Reason: HintShift}
		}
		key, _, _ := kana.Locate(tg)
		return Hint{Key: key, Label: kana.Label(key, true), Reason: HintKey}
	}
	key, shift, ok := kana.Locate(base)
	if !ok {
		return Hint{}
	}
	return Hint{Key: key, Label: kana.Label(key, shift), Reason: HintKey}
}
