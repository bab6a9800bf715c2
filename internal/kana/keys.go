// Package kana translates physical key presses into kana under the JIS
// kana-input layout.
package kana

// KeyID names a physical key independently of the active keyboard layout.
// Values follow the KeyboardEvent.code vocabulary.
type KeyID string

const (
	KeyNone KeyID = ""

	Digit1 KeyID = "Digit1"
	Digit2 KeyID = "Digit2"
	Digit3 KeyID = "Digit3"
	Digit4 KeyID = "Digit4"
	Digit5 KeyID = "Digit5"
	Digit6 KeyID = "Digit6"
	Digit7 KeyID = "Digit7"
	Digit8 KeyID = "Digit8"
	Digit9 KeyID = "Digit9"
	Digit0 KeyID = "Digit0"
	Minus  KeyID = "Minus"
	Equal  KeyID = "Equal"

	KeyQ         KeyID = "KeyQ"
	KeyW         KeyID = "KeyW"
	KeyE         KeyID = "KeyE"
	KeyR         KeyID = "KeyR"
	KeyT         KeyID = "KeyT"
	KeyY         KeyID = "KeyY"
	KeyU         KeyID = "KeyU"
	KeyI         KeyID = "KeyI"
	KeyO         KeyID = "KeyO"
	KeyP         KeyID = "KeyP"
	BracketLeft  KeyID = "BracketLeft"
	BracketRight KeyID = "BracketRight"
	Backslash    KeyID = "Backslash"

	KeyA      KeyID = "KeyA"
	KeyS      KeyID = "KeyS"
	KeyD      KeyID = "KeyD"
	KeyF      KeyID = "KeyF"
	KeyG      KeyID = "KeyG"
	KeyH      KeyID = "KeyH"
	KeyJ      KeyID = "KeyJ"
	KeyK      KeyID = "KeyK"
	KeyL      KeyID = "KeyL"
	Semicolon KeyID = "Semicolon"
	Quote     KeyID = "Quote"

	KeyZ   KeyID = "KeyZ"
	KeyX   KeyID = "KeyX"
	KeyC   KeyID = "KeyC"
	KeyV   KeyID = "KeyV"
	KeyB   KeyID = "KeyB"
	KeyN   KeyID = "KeyN"
	KeyM   KeyID = "KeyM"
	Comma  KeyID = "Comma"
	Period KeyID = "Period"
	Slash  KeyID = "Slash"

	Space      KeyID = "Space"
	Enter      KeyID = "Enter"
	Backspace  KeyID = "Backspace"
	ShiftLeft  KeyID = "ShiftLeft"
	ShiftRight KeyID = "ShiftRight"
)

// IsShift reports whether k is one of the shift keys.
func (k KeyID) IsShift() bool {
	return k == ShiftLeft || k == ShiftRight
}

// KeyEvent is a single physical key press or release delivered by the host.
type KeyEvent struct {
	Key       KeyID
	Shift     bool
	Backspace bool
	// Up marks a release. Only shift releases carry meaning.
	Up bool
}

// Press builds a key-down event.
func Press(key KeyID, shift bool) KeyEvent {
	return KeyEvent{Key: key, Shift: shift, Backspace: IsBackspace(key)}
}

// Release builds a key-up event.
func Release(key KeyID) KeyEvent {
	return KeyEvent{Key: key, Up: true}
}

// UnitKind classifies the output of a translation.
type UnitKind int

const (
	UnitNone UnitKind = iota
	UnitText
	UnitVoiced
	UnitSemiVoiced
)

// Unit is the immutable result of translating one key press.
type Unit struct {
	Kind UnitKind
	Text string
}

// None is the unit produced by unmapped keys.
var None = Unit{}

// Text returns a plain text unit.
func Text(s string) Unit {
	return Unit{Kind: UnitText, Text: s}
}

// IsNone reports whether u carries nothing.
func (u Unit) IsNone() bool {
	return u.Kind == UnitNone
}

// IsMark reports whether u is a voiced or semi-voiced trigger.
func (u Unit) IsMark() bool {
	return u.Kind == UnitVoiced || u.Kind == UnitSemiVoiced
}
