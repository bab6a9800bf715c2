// Package wordlist provides word list filtering helpers.
package wordlist

import (
	"github.com/verte-zerg/kanape/internal/grapheme"
	"github.com/verte-zerg/kanape/internal/kana"
)

// Typable reports whether every grapheme of word can be typed on the kana
// layout.
func Typable(word string) bool {
	if word == "" {
		return false
	}
	for _, g := range grapheme.Split(word) {
		if !kana.Reachable(g) {
			return false
		}
	}
	return true
}

// Filter keeps the typable words and reports how many were dropped.
func Filter(words []string) (kept []string, dropped int) {
	kept = make([]string, 0, len(words))
	for _, w := range words {
		if Typable(w) {
			kept = append(kept, w)
			continue
		}
		dropped++
	}
	return kept, dropped
}
