package kana

const (
	voicedLabel     = "゛"
	semiVoicedLabel = "゜"
)

var unshifted = map[KeyID]string{
	Digit1: "ぬ", Digit2: "ふ", Digit3: "あ", Digit4: "う", Digit5: "え",
	Digit6: "お", Digit7: "や", Digit8: "ゆ", Digit9: "よ", Digit0: "わ",
	Minus: "ほ", Equal: semiVoicedLabel,

	KeyQ: "た", KeyW: "て", KeyE: "い", KeyR: "す", KeyT: "か", KeyY: "ん",
	KeyU: "な", KeyI: "に", KeyO: "ら", KeyP: "せ", BracketLeft: voicedLabel, BracketRight: "む",
	Backslash: "へ",

	KeyA: "ち", KeyS: "と", KeyD: "し", KeyF: "は", KeyG: "き", KeyH: "く",
	KeyJ: "ま", KeyK: "の", KeyL: "り", Semicolon: "れ", Quote: "け",

	KeyZ: "つ", KeyX: "さ", KeyC: "そ", KeyV: "ひ", KeyB: "こ", KeyN: "み",
	KeyM: "も", Comma: "ね", Period: "る", Slash: "め",

	Space: " ", Enter: "\n",
}

var shifted = map[KeyID]string{
	Digit1: "ぬ", Digit2: "ふ", Digit3: "ぁ", Digit4: "ぅ", Digit5: "ぇ",
	Digit6: "ぉ", Digit7: "ゃ", Digit8: "ゅ", Digit9: "ょ", Digit0: "を",
	Minus: "ほ", Equal: "「",

	KeyQ: "た", KeyW: "て", KeyE: "ぃ", KeyR: "す", KeyT: "か", KeyY: "ん",
	KeyU: "な", KeyI: "に", KeyO: "ら", KeyP: "せ", BracketLeft: "」", BracketRight: "ー",
	Backslash: "へ",

	KeyA: "ち", KeyS: "と", KeyD: "し", KeyF: "は", KeyG: "き", KeyH: "く",
	KeyJ: "ま", KeyK: "の", KeyL: "り", Semicolon: "れ", Quote: "ろ",

	KeyZ: "っ", KeyX: "さ", KeyC: "そ", KeyV: "ひ", KeyB: "こ", KeyN: "み",
	KeyM: "も", Comma: "、", Period: "。", Slash: "・",

	Space: " ", Enter: "\n",
}

var voiced = map[rune]rune{
	'か': 'が', 'き': 'ぎ', 'く': 'ぐ', 'け': 'げ', 'こ': 'ご',
	'さ': 'ざ', 'し': 'じ', 'す': 'ず', 'せ': 'ぜ', 'そ': 'ぞ',
	'た': 'だ', 'ち': 'ぢ', 'つ': 'づ', 'て': 'で', 'と': 'ど',
	'は': 'ば', 'ひ': 'び', 'ふ': 'ぶ', 'へ': 'べ', 'ほ': 'ぼ',
	'カ': 'ガ', 'キ': 'ギ', 'ク': 'グ', 'ケ': 'ゲ', 'コ': 'ゴ',
	'サ': 'ザ', 'シ': 'ジ', 'ス': 'ズ', 'セ': 'ゼ', 'ソ': 'ゾ',
	'タ': 'ダ', 'チ': 'ヂ', 'ツ': 'ヅ', 'テ': 'デ', 'ト': 'ド',
	'ハ': 'バ', 'ヒ': 'ビ', 'フ': 'ブ', 'ヘ': 'ベ', 'ホ': 'ボ',
}

var semiVoiced = map[rune]rune{
	'は': 'ぱ', 'ひ': 'ぴ', 'ふ': 'ぷ', 'へ': 'ぺ', 'ほ': 'ぽ',
	'ハ': 'パ', 'ヒ': 'ピ', 'フ': 'プ', 'ヘ': 'ペ', 'ホ': 'ポ',
}

// rightShiftChars are the shift-only characters conventionally reached with
// the right hand's shift. Every other shift-only character uses ShiftLeft.
var rightShiftChars = map[string]struct{}{
	"ぁ": {}, "ぃ": {}, "ぅ": {}, "ぇ": {}, "っ": {},
}

var rows = [][]KeyID{
	{Digit1, Digit2, Digit3, Digit4, Digit5, Digit6, Digit7, Digit8, Digit9, Digit0, Minus, Equal},
	{KeyQ, KeyW, KeyE, KeyR, KeyT, KeyY, KeyU, KeyI, KeyO, KeyP, BracketLeft, BracketRight, Backslash},
	{KeyA, KeyS, KeyD, KeyF, KeyG, KeyH, KeyJ, KeyK, KeyL, Semicolon, Quote},
	{ShiftLeft, KeyZ, KeyX, KeyC, KeyV, KeyB, KeyN, KeyM, Comma, Period, Slash, ShiftRight},
	{Space, Enter, Backspace},
}

// homeKeys carry the tactile bumps on a JIS board.
var homeKeys = map[KeyID]struct{}{KeyF: {}, KeyJ: {}}

// fingerGroups colours keys by the finger that strikes them.
var fingerGroups = map[string]int{
	"う": 1, "す": 1, "は": 1, "ひ": 1, "え": 1, "か": 1, "き": 1, "こ": 1, "ぅ": 1, "ぇ": 1,
	"あ": 2, "い": 2, "し": 2, "そ": 2, "ぁ": 2, "ぃ": 2,
	"ふ": 3, "て": 3, "と": 3, "さ": 3,
	"ぬ": 4, "た": 4, "ち": 4, "つ": 4, "っ": 4,
	"や": 5, "な": 5, "ま": 5, "も": 5, "お": 5, "ん": 5, "く": 5, "み": 5, "ぉ": 5, "ゃ": 5,
	"ゆ": 6, "に": 6, "の": 6, "ね": 6, "ゅ": 6,
	"よ": 7, "ら": 7, "り": 7, "る": 7, "ょ": 7,
	"わ": 8, "せ": 8, "れ": 8, "め": 8, "ほ": 8, "け": 8, "む": 8, "へ": 8,
	voicedLabel: 8, semiVoicedLabel: 8, "を": 8, "ろ": 8,
	"、": 8, "。": 8, "・": 8, "「": 8, "」": 8, "ー": 8,
}

// Rows returns the physical key rows of the board, top to bottom.
func Rows() [][]KeyID {
	out := make([][]KeyID, len(rows))
	for i, row := range rows {
		out[i] = append([]KeyID(nil), row...)
	}
	return out
}

// IsHomeKey reports whether k is a home-position key.
func IsHomeKey(k KeyID) bool {
	_, ok := homeKeys[k]
	return ok
}

// FingerGroup returns the finger group (1-8) for a key legend, or 0.
func FingerGroup(label string) int {
	return fingerGroups[label]
}

// Label returns the legend printed on k for the given shift state.
func Label(k KeyID, shift bool) string {
	switch k {
	case ShiftLeft, ShiftRight:
		return "Shift"
	case Space:
		return "␣"
	case Enter:
		return "⏎"
	case Backspace:
		return "⌫"
	}
	if shift {
		return shifted[k]
	}
	return unshifted[k]
}
