package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/kanape/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
	same := MovingAverage([]float64{1, 5}, 1)
	if same[0] != 1 || same[1] != 5 {
		t.Fatalf("window 1 should copy values: %v", same)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{0, 7}); got != "▁█" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "▅▅▅" {
		t.Fatalf("flat series should render mid blocks, got %q", got)
	}
}

func TestSelectWeakChars(t *testing.T) {
	aggs := []model.CharAggregate{
		{Char: "ね", Correct: 9, Incorrect: 1},
		{Char: "が", Correct: 1, Incorrect: 3},
		{Char: " ", Correct: 0, Incorrect: 9},
		{Char: "こ", Correct: 5, Incorrect: 5},
	}
	weak := SelectWeakChars(aggs, 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak chars, got %v", weak)
	}
	for _, ch := range []string{"が", "こ"} {
		if _, ok := weak[ch]; !ok {
			t.Fatalf("expected %q in weak set %v", ch, weak)
		}
	}
	if all := SelectWeakChars(aggs, 0); len(all) != 3 {
		t.Fatalf("top 0 should keep every candidate, got %v", all)
	}
	if empty := SelectWeakChars(nil, 3); len(empty) != 0 {
		t.Fatalf("expected empty set, got %v", empty)
	}
}

func TestSummarize(t *testing.T) {
	sessions := []model.SessionAggregate{
		{Problems: 10, AvgSpeed: 60, AvgAccuracy: 90, Score: 20},
		{Problems: 5, AvgSpeed: 80, AvgAccuracy: 100, Score: 40},
	}
	got := Summarize(sessions)
	if got.Sessions != 2 || got.Problems != 15 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.AvgSpeed != 70 || got.AvgAccuracy != 95 || got.AvgScore != 30 {
		t.Fatalf("unexpected averages: %+v", got)
	}
	if got.BestScore != 40 || got.BestSpeed != 80 {
		t.Fatalf("unexpected bests: %+v", got)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	buf.Reset()
	err := RenderSummary(&buf, []model.SessionAggregate{{Problems: 3, AvgSpeed: 42, AvgAccuracy: 87.5, Score: 12}})
	if err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	for _, want := range []string{"Sessions: 1", "Avg Speed: 42.0 chars/min", "Avg Accuracy: 87.5%", "Best Score: 12"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("missing %q in %q", want, buf.String())
		}
	}
}

func TestRenderCharTableSortsWeakestFirst(t *testing.T) {
	var buf bytes.Buffer
	err := RenderCharTable(&buf, []model.CharAggregate{
		{Char: "ね", Correct: 4, Incorrect: 0, LatencySumMs: 400, LatencyCount: 2},
		{Char: " ", Correct: 1, Incorrect: 1},
	})
	if err != nil {
		t.Fatalf("RenderCharTable: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, header and two rows, got %q", lines)
	}
	if !strings.HasPrefix(lines[2], "␣") {
		t.Fatalf("weakest row should be the space: %q", lines[2])
	}
	if !strings.Contains(lines[3], "200.0") {
		t.Fatalf("expected mean latency in %q", lines[3])
	}
}

func TestRenderBest(t *testing.T) {
	var buf bytes.Buffer
	best := []model.SessionAggregate{
		{EndedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local), Score: 55, AvgSpeed: 110, AvgAccuracy: 98, Problems: 10},
	}
	if err := RenderBest(&buf, best); err != nil {
		t.Fatalf("RenderBest: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "2024-05-01 12:00") || !strings.Contains(out, "55") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderChart(t *testing.T) {
	var buf bytes.Buffer
	err := RenderChart(&buf, "Test Chart", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
		{Name: "Empty"},
	}, 12, 4, false)
	if err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Test Chart", "A: min=1.0 max=3.0", "Legend:", "⣿ B"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Empty") {
		t.Fatalf("empty series should be dropped")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1+2+4+1 {
		t.Fatalf("expected 8 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[3], "max │ ") || !strings.HasPrefix(lines[6], "min │ ") {
		t.Fatalf("unexpected axis labels: %q %q", lines[3], lines[6])
	}
}

func TestRenderChartNoSeries(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderChart(&buf, "Nothing", nil, 20, 4, false); err != nil {
		t.Fatalf("RenderChart: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestChartWidthFor(t *testing.T) {
	if got := ChartWidthFor(80); got != 80-runewidth.StringWidth(axisTop+axisRule) {
		t.Fatalf("unexpected width %d", got)
	}
	if got := ChartWidthFor(5); got != minChartWidth {
		t.Fatalf("expected min width, got %d", got)
	}
}

func TestResample(t *testing.T) {
	got := resample([]float64{1, 3}, 4)
	want := []float64{1, 1, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("resample up: got %v, want %v", got, want)
		}
	}
	down := resample([]float64{1, 3, 5, 7}, 2)
	if down[0] != 2 || down[1] != 6 {
		t.Fatalf("resample down: got %v", down)
	}
}
