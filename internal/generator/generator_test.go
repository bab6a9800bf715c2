package generator

import "testing"

func TestGenerateCount(t *testing.T) {
	g := NewWithSeed(1)
	words := []string{"ねこ", "いぬ", "とり"}
	got := g.Generate(words, 10)
	if len(got) != 10 {
		t.Fatalf("expected 10 problems, got %d", len(got))
	}
	allowed := map[string]bool{"ねこ": true, "いぬ": true, "とり": true}
	for _, w := range got {
		if !allowed[w] {
			t.Fatalf("unexpected word %q", w)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	g := NewWithSeed(1)
	if got := g.Generate(nil, 5); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := g.Generate([]string{"ねこ"}, 0); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	words := []string{"ねこ", "いぬ", "とり", "やま", "かわ"}
	a := NewWithSeed(42).Generate(words, 20)
	b := NewWithSeed(42).Generate(words, 20)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded generators diverged at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestGenerateWeightedPrefersWeakChars(t *testing.T) {
	g := NewWithSeed(7)
	words := []string{"ぱん", "いぬ"}
	weak := map[string]struct{}{"ぱ": {}}
	got := g.GenerateWeighted(words, 2000, weak, 20)
	counts := map[string]int{}
	for _, w := range got {
		counts[w]++
	}
	if counts["ぱん"] <= counts["いぬ"]*5 {
		t.Fatalf("expected weak word to dominate, got %v", counts)
	}
}

func TestGenerateWeightedZeroFactorKeepsAllWords(t *testing.T) {
	g := NewWithSeed(3)
	words := []string{"ねこ", "いぬ"}
	got := g.GenerateWeighted(words, 500, map[string]struct{}{"ね": {}}, 0)
	counts := map[string]int{}
	for _, w := range got {
		counts[w]++
	}
	if counts["ねこ"] == 0 || counts["いぬ"] == 0 {
		t.Fatalf("expected both words to appear, got %v", counts)
	}
}
