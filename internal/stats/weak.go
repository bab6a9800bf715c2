package stats

import (
	"github.com/verte-zerg/kanape/internal/grapheme"
	"github.com/verte-zerg/kanape/internal/model"
)

// SelectWeakChars selects the lowest-accuracy characters from aggregates.
// Blank characters never count as weak.
func SelectWeakChars(aggs []model.CharAggregate, top int) map[string]struct{} {
	weakSet := map[string]struct{}{}
	candidates := make([]model.CharAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Char == "" || agg.Char == " " || agg.Char == "\n" {
			continue
		}
		candidates = append(candidates, agg)
	}
	candidates = SortByAccuracy(candidates)
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for _, agg := range candidates[:top] {
		weakSet[grapheme.NFC(agg.Char)] = struct{}{}
	}
	return weakSet
}
