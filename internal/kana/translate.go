package kana

import "github.com/verte-zerg/kanape/internal/grapheme"

// Translate maps a physical key and shift state to a unit. Keys outside the
// layout yield None.
func Translate(key KeyID, shift bool) Unit {
	table := unshifted
	if shift {
		table = shifted
	}
	s, ok := table[key]
	if !ok {
		return None
	}
	switch s {
	case voicedLabel:
		return Unit{Kind: UnitVoiced}
	case semiVoicedLabel:
		return Unit{Kind: UnitSemiVoiced}
	default:
		return Text(s)
	}
}

// IsBackspace reports whether key deletes the last character.
func IsBackspace(key KeyID) bool {
	return key == Backspace
}

// Voiced returns the dakuten form of r.
func Voiced(r rune) (rune, bool) {
	v, ok := voiced[r]
	return v, ok
}

// SemiVoiced returns the handakuten form of r.
func SemiVoiced(r rune) (rune, bool) {
	v, ok := semiVoiced[r]
	return v, ok
}

// Locate finds the key producing char. Unshifted placements win over shifted
// ones. Space and newline resolve to their dedicated keys.
func Locate(char string) (key KeyID, shift, ok bool) {
	switch char {
	case " ":
		return Space, false, true
	case "\n":
		return Enter, false, true
	}
	if k, found := reverseUnshifted[char]; found {
		return k, false, true
	}
	if k, found := reverseShifted[char]; found {
		return k, true, true
	}
	return KeyNone, false, false
}

// ShiftOnly reports whether char can only be typed with shift held.
func ShiftOnly(char string) bool {
	if _, ok := reverseUnshifted[char]; ok {
		return false
	}
	_, ok := reverseShifted[char]
	return ok
}

// ShiftKeyFor returns the shift key conventionally used for a shift-only
// character.
func ShiftKeyFor(char string) KeyID {
	if _, ok := rightShiftChars[char]; ok {
		return ShiftRight
	}
	return ShiftLeft
}

// MarkKey returns the key that strikes the given sound mark.
func MarkKey(m grapheme.Mark) KeyID {
	switch m {
	case grapheme.MarkVoiced:
		return BracketLeft
	case grapheme.MarkSemiVoiced:
		return Equal
	default:
		return KeyNone
	}
}

// Reachable reports whether g can be typed on the layout, either directly or
// as a base followed by a sound mark.
func Reachable(g string) bool {
	if _, _, ok := Locate(g); ok {
		return true
	}
	nfc := []rune(grapheme.NFC(g))
	if len(nfc) != 1 {
		return false
	}
	base, _ := grapheme.Decompose(g)
	baseRunes := []rune(base)
	if len(baseRunes) != 1 {
		return false
	}
	if _, _, ok := Locate(base); !ok {
		return false
	}
	switch grapheme.MarkOf(g) {
	case grapheme.MarkVoiced:
		v, ok := Voiced(baseRunes[0])
		return ok && v == nfc[0]
	case grapheme.MarkSemiVoiced:
		v, ok := SemiVoiced(baseRunes[0])
		return ok && v == nfc[0]
	default:
		return false
	}
}

var (
	reverseUnshifted = invert(unshifted)
	reverseShifted   = invert(shifted)
)

func invert(table map[KeyID]string) map[string]KeyID {
	out := make(map[string]KeyID, len(table))
	for k, v := range table {
		if v == voicedLabel || v == semiVoicedLabel {
			continue
		}
		out[v] = k
	}
	return out
}
