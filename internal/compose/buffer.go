// Package compose maintains the authoritative typed buffer fed by key
// translation.
package compose

import (
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/kanape/internal/grapheme"
	"github.com/verte-zerg/kanape/internal/kana"
)

// Buffer holds what the learner has typed for the current target. Sound marks
// are fused into the preceding character as they arrive, so the buffer never
// holds a dangling mark.
type Buffer struct {
	text strings.Builder
	seg  grapheme.Segmenter
}

// New returns an empty buffer that segments with seg.
func New(seg grapheme.Segmenter) *Buffer {
	return &Buffer{seg: seg}
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.text.Reset()
}

// String returns the typed text.
func (b *Buffer) String() string {
	return b.text.String()
}

// Graphemes returns the typed text split into graphemes.
func (b *Buffer) Graphemes() []string {
	return b.seg.Split(b.text.String())
}

// Len returns the number of typed graphemes.
func (b *Buffer) Len() int {
	return len(b.Graphemes())
}

// Append applies a translated unit and reports whether the buffer changed.
// A sound mark with nothing eligible before it is dropped.
func (b *Buffer) Append(u kana.Unit) bool {
	switch u.Kind {
	case kana.UnitText:
		if u.Text == "" {
			return false
		}
		b.text.WriteString(u.Text)
		return true
	case kana.UnitVoiced:
		return b.fuseLast(kana.Voiced)
	case kana.UnitSemiVoiced:
		return b.fuseLast(kana.SemiVoiced)
	default:
		return false
	}
}

func (b *Buffer) fuseLast(table func(rune) (rune, bool)) bool {
	s := b.text.String()
	last, size := utf8.DecodeLastRuneInString(s)
	if size == 0 || last == utf8.RuneError {
		return false
	}
	fused, ok := table(last)
	if !ok {
		return false
	}
	b.replace(s[:len(s)-size] + string(fused))
	return true
}

// RemoveLast deletes the last grapheme and reports whether anything was
// removed.
func (b *Buffer) RemoveLast() bool {
	gs := b.Graphemes()
	if len(gs) == 0 {
		return false
	}
	s := b.text.String()
	b.replace(s[:len(s)-len(gs[len(gs)-1])])
	return true
}

func (b *Buffer) replace(s string) {
	b.text.Reset()
	b.text.WriteString(s)
}
