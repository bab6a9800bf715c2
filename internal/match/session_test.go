package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/kanape/internal/grapheme"
	"github.com/verte-zerg/kanape/internal/kana"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestSession(target string) (*Session, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := NewSession(WithClock(clock.now))
	s.Load(target)
	return s, clock
}

func press(s *Session, key kana.KeyID) State {
	return s.Handle(kana.Press(key, false))
}

func TestSessionScenarioSingleKana(t *testing.T) {
	s, clock := newTestSession("か")
	assert.Equal(t, PhaseIdle, s.Phase())

	clock.advance(time.Second)
	st := press(s, kana.KeyT)
	assert.Equal(t, 1, st.Prefix)
	assert.True(t, st.Complete)
	assert.Equal(t, PhaseComplete, s.Phase())
	assert.Equal(t, 100, s.Accuracy())
	assert.Equal(t, 0, s.Speed(), "first keystroke has zero elapsed time")
}

func TestSessionScenarioVoicedMark(t *testing.T) {
	s, clock := newTestSession("が")

	st := press(s, kana.KeyT)
	require.Len(t, st.Cells, 1)
	assert.Equal(t, StatusMarkPending, st.Cells[0].Status)
	assert.False(t, st.Complete)
	assert.Equal(t, PhaseInProgress, s.Phase())

	clock.advance(30 * time.Second)
	st = press(s, kana.BracketLeft)
	assert.True(t, grapheme.CanonicalEqual("が", s.Typed()))
	assert.True(t, st.Complete)
	assert.Equal(t, 100, s.Accuracy())
	assert.Equal(t, 2, s.Speed())
	assert.Equal(t, 30*time.Second, s.Elapsed())
}

func TestSessionScenarioSkippedMark(t *testing.T) {
	s, _ := newTestSession("が")
	press(s, kana.KeyT)
	st := press(s, kana.Comma)

	require.Len(t, st.Cells, 1)
	assert.Equal(t, StatusMarkWrong, st.Cells[0].Status)
	assert.Equal(t, []int{0}, s.WrongIndices())
	assert.Equal(t, 0, s.Accuracy())
}

func TestSessionScenarioWrongKana(t *testing.T) {
	s, _ := newTestSession("ねこ")
	press(s, kana.Comma)
	st := s.Handle(kana.Press(kana.Quote, true))

	assert.Equal(t, "ねろ", s.Typed())
	assert.Equal(t, 1, st.Prefix)
	assert.Equal(t, StatusWrong, st.Cells[1].Status)
	assert.Equal(t, []int{1}, s.WrongIndices())
	assert.Equal(t, 50, s.Accuracy())
}

func TestSessionScenarioFirstHint(t *testing.T) {
	s, _ := newTestSession("ねこ")
	assert.Equal(t, kana.Comma, s.State().Hint.Key)
}

func TestSessionScenarioShiftHint(t *testing.T) {
	s, _ := newTestSession("っと")
	assert.Equal(t, Hint{Key: kana.ShiftRight, Label: "Shift", Reason: HintShift}, s.State().Hint)

	st := s.Handle(kana.Press(kana.ShiftRight, true))
	assert.Equal(t, Hint{Key: kana.KeyZ, Label: "っ", Reason: HintKey}, st.Hint)
	assert.True(t, s.ShiftHeld())

	st = press(s, kana.KeyZ)
	assert.Equal(t, "っ", s.Typed())
	assert.Equal(t, 1, st.Prefix)

	st = s.Handle(kana.Release(kana.ShiftRight))
	assert.False(t, s.ShiftHeld())
	assert.Equal(t, kana.KeyS, st.Hint.Key)
}

func TestSessionWrongSetIsMonotonic(t *testing.T) {
	s, _ := newTestSession("ねこ")
	press(s, kana.KeyA)
	require.Equal(t, []int{0}, s.WrongIndices())

	press(s, kana.Backspace)
	assert.Equal(t, []int{0}, s.WrongIndices(), "correction keeps the mistake")

	press(s, kana.Comma)
	st := press(s, kana.KeyB)
	assert.True(t, st.Complete)
	assert.True(t, s.WasWrong(0))
	assert.False(t, s.WasWrong(1))
	assert.Equal(t, 50, s.Accuracy())
}

func TestSessionPrefixMonotonicity(t *testing.T) {
	s, _ := newTestSession("ねこ")
	st := press(s, kana.Comma)
	assert.Equal(t, 1, st.Prefix)
	st = press(s, kana.KeyA)
	assert.Equal(t, 1, st.Prefix, "wrong grapheme at the frontier leaves prefix unchanged")
	press(s, kana.Backspace)
	st = press(s, kana.KeyB)
	assert.Equal(t, 2, st.Prefix)
}

func TestSessionIgnoresUnmappedAndStrayMarks(t *testing.T) {
	s, _ := newTestSession("ね")
	st := s.Handle(kana.Press(kana.KeyID("F1"), false))
	assert.Equal(t, PhaseIdle, s.Phase(), "unmapped keys do not start the timer")
	assert.Equal(t, 0, st.Typed)

	press(s, kana.BracketLeft)
	assert.Equal(t, "", s.Typed())
	assert.Empty(t, s.WrongIndices())

	press(s, kana.Backspace)
	assert.Equal(t, "", s.Typed())
}

func TestSessionIgnoresInputAfterCompletion(t *testing.T) {
	s, _ := newTestSession("ね")
	press(s, kana.Comma)
	require.Equal(t, PhaseComplete, s.Phase())

	st := press(s, kana.KeyB)
	assert.Equal(t, "ね", s.Typed())
	assert.True(t, st.Complete)
	st = press(s, kana.Backspace)
	assert.Equal(t, "ね", s.Typed())
}

func TestSessionEmptyTarget(t *testing.T) {
	s, _ := newTestSession("")
	assert.Equal(t, PhaseComplete, s.Phase())
	assert.True(t, s.State().Complete)
	assert.Equal(t, 100, s.Accuracy())
	assert.Equal(t, time.Duration(0), s.Elapsed())
}

func TestSessionLoadResets(t *testing.T) {
	s, _ := newTestSession("ね")
	press(s, kana.KeyA)
	require.NotEmpty(t, s.WrongIndices())

	st := s.Load("こ")
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.WrongIndices())
	assert.Equal(t, "", s.Typed())
	assert.Equal(t, kana.KeyB, st.Hint.Key)
}

func TestSessionResult(t *testing.T) {
	s, clock := newTestSession("ねこ")
	press(s, kana.Comma)
	clock.advance(30 * time.Second)
	press(s, kana.KeyB)

	res := s.Result()
	assert.Equal(t, "ねこ", res.Target)
	assert.Equal(t, 2, res.Chars)
	assert.Equal(t, 100, res.Accuracy)
	assert.Equal(t, 4, res.Speed)
	assert.Equal(t, 30*time.Second, res.Elapsed)
	assert.Empty(t, res.Wrong)
}

func TestSessionWrongSetNeverShrinks(t *testing.T) {
	s, _ := newTestSession("がっこう")
	keys := []kana.KeyEvent{
		kana.Press(kana.KeyT, false),
		kana.Press(kana.KeyZ, true),
		kana.Press(kana.Backspace, false),
		kana.Press(kana.Backspace, false),
		kana.Press(kana.KeyT, false),
		kana.Press(kana.BracketLeft, false),
		kana.Press(kana.KeyZ, true),
		kana.Press(kana.KeyB, false),
		kana.Press(kana.Digit4, false),
	}
	prev := 0
	for _, ev := range keys {
		s.Handle(ev)
		n := len(s.WrongIndices())
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}
	assert.True(t, s.State().Complete)
	assert.Equal(t, []int{0}, s.WrongIndices())
	assert.Equal(t, 75, s.Accuracy())
}
