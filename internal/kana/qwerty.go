package kana

import "unicode"

type qwertyKey struct {
	key   KeyID
	shift bool
}

var qwertySymbols = map[rune]qwertyKey{
	'1': {Digit1, false}, '!': {Digit1, true},
	'2': {Digit2, false}, '@': {Digit2, true},
	'3': {Digit3, false}, '#': {Digit3, true},
	'4': {Digit4, false}, '$': {Digit4, true},
	'5': {Digit5, false}, '%': {Digit5, true},
	'6': {Digit6, false}, '^': {Digit6, true},
	'7': {Digit7, false}, '&': {Digit7, true},
	'8': {Digit8, false}, '*': {Digit8, true},
	'9': {Digit9, false}, '(': {Digit9, true},
	'0': {Digit0, false}, ')': {Digit0, true},
	'-': {Minus, false}, '_': {Minus, true},
	'=': {Equal, false}, '+': {Equal, true},
	'[': {BracketLeft, false}, '{': {BracketLeft, true},
	']': {BracketRight, false}, '}': {BracketRight, true},
	'\\': {Backslash, false}, '|': {Backslash, true},
	';': {Semicolon, false}, ':': {Semicolon, true},
	'\'': {Quote, false}, '"': {Quote, true},
	',': {Comma, false}, '<': {Comma, true},
	'.': {Period, false}, '>': {Period, true},
	'/': {Slash, false}, '?': {Slash, true},
	' ':  {Space, false},
	'\n': {Enter, false},
	'\r': {Enter, false},
}

// EventFromRune recovers the physical key press behind a rune delivered by a
// terminal. ASCII runes are read as a US QWERTY board, where the rune pins
// both the key position and the shift state. Kana runes, as delivered by a
// host running a kana input method, resolve through the layout tables.
func EventFromRune(r rune) (KeyEvent, bool) {
	if r >= 'a' && r <= 'z' {
		return Press(KeyID("Key"+string(unicode.ToUpper(r))), false), true
	}
	if r >= 'A' && r <= 'Z' {
		return Press(KeyID("Key"+string(r)), true), true
	}
	if q, ok := qwertySymbols[r]; ok {
		return Press(q.key, q.shift), true
	}
	switch string(r) {
	case voicedLabel:
		return Press(BracketLeft, false), true
	case semiVoicedLabel:
		return Press(Equal, false), true
	}
	if key, shift, ok := Locate(string(r)); ok {
		return Press(key, shift), true
	}
	return KeyEvent{}, false
}
