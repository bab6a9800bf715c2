// Package generator picks practice problems from a word list.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/kanape/internal/grapheme"
)

// Generator produces randomized problem sequences.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate selects count words uniformly, one word per problem.
func (g *Generator) Generate(words []string, count int) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, words[g.rnd.Intn(len(words))])
	}
	return result
}

// GenerateWeighted selects words with a bias toward weak characters. Each
// word weighs 1 plus factor for every grapheme found in weakSet.
func (g *Generator) GenerateWeighted(words []string, count int, weakSet map[string]struct{}, factor float64) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	weights := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		weakCount := 0
		for _, ch := range grapheme.Split(word) {
			if _, ok := weakSet[grapheme.NFC(ch)]; ok {
				weakCount++
			}
		}
		w := 1.0 + float64(weakCount)*factor
		weights[i] = w
		total += w
	}

	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := len(words) - 1
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		result = append(result, words[idx])
	}
	return result
}
