// Package grapheme segments text into user-perceived characters and compares
// them under canonical normalization.
package grapheme

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

const (
	combiningVoiced     = '\u3099'
	combiningSemiVoiced = '\u309A'
)

// Mark identifies the sound mark carried by a kana grapheme.
type Mark int

const (
	MarkNone Mark = iota
	MarkVoiced
	MarkSemiVoiced
)

// Segmenter selects how text is cut into graphemes.
type Segmenter int

const (
	// SegmentClusters uses Unicode extended grapheme clusters.
	SegmentClusters Segmenter = iota
	// SegmentRunes splits on code points. It is lossy: a decomposed
	// sequence such as "か" + U+3099 yields two graphemes.
	SegmentRunes
)

// ParseSegmenter maps a config value to a Segmenter.
func ParseSegmenter(name string) (Segmenter, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "grapheme", "clusters":
		return SegmentClusters, true
	case "runes", "codepoints":
		return SegmentRunes, true
	default:
		return SegmentClusters, false
	}
}

// String implements fmt.Stringer.
func (s Segmenter) String() string {
	if s == SegmentRunes {
		return "runes"
	}
	return "grapheme"
}

// Split returns the graphemes of text using cluster segmentation.
func Split(text string) []string {
	return SegmentClusters.Split(text)
}

// Split returns the graphemes of text. Invalid UTF-8 always falls back to
// code point splitting.
func (s Segmenter) Split(text string) []string {
	if text == "" {
		return nil
	}
	if s == SegmentRunes || !utf8.ValidString(text) {
		return splitRunes(text)
	}
	out := make([]string, 0, utf8.RuneCountInString(text))
	state := -1
	rest := text
	var cluster string
	for rest != "" {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		out = append(out, cluster)
	}
	return out
}

func splitRunes(text string) []string {
	out := make([]string, 0, len(text))
	for len(text) > 0 {
		_, size := utf8.DecodeRuneInString(text)
		out = append(out, text[:size])
		text = text[size:]
	}
	return out
}

// NFC returns the composed form of s, or s itself when it is not valid UTF-8.
func NFC(s string) string {
	if !utf8.ValidString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// NFD returns the decomposed form of s, or s itself when it is not valid UTF-8.
func NFD(s string) string {
	if !utf8.ValidString(s) {
		return s
	}
	return norm.NFD.String(s)
}

// CanonicalEqual reports whether a and b are equal after NFC normalization.
func CanonicalEqual(a, b string) bool {
	if a == b {
		return true
	}
	return NFC(a) == NFC(b)
}

// Decompose splits g into its first scalar and the trailing combining marks.
func Decompose(g string) (base, marks string) {
	d := NFD(g)
	if d == "" {
		return "", ""
	}
	_, size := utf8.DecodeRuneInString(d)
	return d[:size], d[size:]
}

// MarkOf reports which sound mark g carries.
func MarkOf(g string) Mark {
	d := NFD(g)
	switch {
	case strings.ContainsRune(d, combiningVoiced):
		return MarkVoiced
	case strings.ContainsRune(d, combiningSemiVoiced):
		return MarkSemiVoiced
	default:
		return MarkNone
	}
}

// SpacingMark returns the display glyph for m.
func SpacingMark(m Mark) string {
	switch m {
	case MarkVoiced:
		return "゛"
	case MarkSemiVoiced:
		return "゜"
	default:
		return ""
	}
}
