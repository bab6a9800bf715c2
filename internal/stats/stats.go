// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/kanape/internal/model"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// CharAccuracy returns the share of correct strikes for a character, 1 when
// the character was never seen.
func CharAccuracy(agg model.CharAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}

// CharLatency returns the mean latency in milliseconds.
func CharLatency(agg model.CharAggregate) float64 {
	if agg.LatencyCount <= 0 {
		return 0
	}
	return float64(agg.LatencySumMs) / float64(agg.LatencyCount)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders values as a row of block characters.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := minMax(values)
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkBlocks[len(sparkBlocks)/2]), len(values))
	}
	var b strings.Builder
	last := len(sparkBlocks) - 1
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(last)))
		b.WriteRune(sparkBlocks[max(0, min(idx, last))])
	}
	return b.String()
}

func minMax(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Totals summarizes a list of sessions.
type Totals struct {
	Sessions    int
	Problems    int
	AvgSpeed    float64
	AvgAccuracy float64
	AvgScore    float64
	BestScore   int
	BestSpeed   int
}

// Summarize aggregates session metrics.
func Summarize(sessions []model.SessionAggregate) Totals {
	t := Totals{Sessions: len(sessions)}
	if len(sessions) == 0 {
		return t
	}
	var speed, acc, score float64
	for _, s := range sessions {
		t.Problems += s.Problems
		speed += float64(s.AvgSpeed)
		acc += s.AvgAccuracy
		score += float64(s.Score)
		t.BestScore = max(t.BestScore, s.Score)
		t.BestSpeed = max(t.BestSpeed, s.AvgSpeed)
	}
	n := float64(len(sessions))
	t.AvgSpeed = speed / n
	t.AvgAccuracy = acc / n
	t.AvgScore = score / n
	return t
}

// RenderSummary prints a summary for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	t := Summarize(sessions)
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", t.Sessions),
		fmt.Sprintf("Problems: %d", t.Problems),
		fmt.Sprintf("Avg Speed: %.1f chars/min", t.AvgSpeed),
		fmt.Sprintf("Best Speed: %d chars/min", t.BestSpeed),
		fmt.Sprintf("Avg Accuracy: %.1f%%", t.AvgAccuracy),
		fmt.Sprintf("Avg Score: %.1f", t.AvgScore),
		fmt.Sprintf("Best Score: %d", t.BestScore),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints learning curves for speed, accuracy and score.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	speeds := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	scores := make([]float64, len(sessions))
	for i, s := range sessions {
		speeds[i] = float64(s.AvgSpeed)
		accs[i] = s.AvgAccuracy
		scores[i] = float64(s.Score)
	}
	return RenderChart(w, "Learning Curves", []Series{
		{Name: "Speed", Values: MovingAverage(speeds, window)},
		{Name: "Accuracy", Values: MovingAverage(accs, window)},
		{Name: "Score", Values: MovingAverage(scores, window)},
	}, ChartWidthFor(totalWidth), height, useColor)
}

// CharLabel is the printable form of a character in tables.
func CharLabel(ch string) string {
	switch ch {
	case " ":
		return "␣"
	case "\n":
		return "⏎"
	default:
		return ch
	}
}

// SortByAccuracy orders aggregates weakest first.
func SortByAccuracy(aggs []model.CharAggregate) []model.CharAggregate {
	out := append([]model.CharAggregate(nil), aggs...)
	sort.Slice(out, func(i, j int) bool {
		ai, aj := CharAccuracy(out[i]), CharAccuracy(out[j])
		if ai == aj {
			return out[i].Char < out[j].Char
		}
		return ai < aj
	})
	return out
}

// RenderCharTable prints per-character aggregates, weakest first.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Character (Windowed)"); err != nil {
		return err
	}
	headers := []string{"Char", "Accuracy", "Avg Latency (ms)", "Correct", "Incorrect"}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range SortByAccuracy(aggs) {
		rows = append(rows, []string{
			CharLabel(agg.Char),
			fmt.Sprintf("%.2f%%", CharAccuracy(agg)*100),
			fmt.Sprintf("%.1f", CharLatency(agg)),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	return writeTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true})
}

// RenderBest prints the best sessions by score.
func RenderBest(w io.Writer, best []model.SessionAggregate) error {
	if len(best) == 0 {
		_, err := fmt.Fprintln(w, "No scores yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Best Scores"); err != nil {
		return err
	}
	headers := []string{"#", "Date", "Score", "Speed", "Accuracy", "Problems"}
	rows := make([][]string, 0, len(best))
	for i, s := range best {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.AvgSpeed),
			fmt.Sprintf("%.1f%%", s.AvgAccuracy),
			fmt.Sprintf("%d", s.Problems),
		})
	}
	return writeTable(w, headers, rows, map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true})
}

// RenderCharCurves prints per-character learning curves.
func RenderCharCurves(w io.Writer, sessions []model.SessionAggregate, perSession map[int64]map[string]model.CharAggregate, chars []string, window, totalWidth, height int, useColor bool) error {
	if len(chars) == 0 || len(sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Per-Character Curves"); err != nil {
		return err
	}
	for _, ch := range chars {
		accSeries := make([]float64, len(sessions))
		latSeries := make([]float64, len(sessions))
		for i, s := range sessions {
			agg, ok := perSession[s.SessionID][ch]
			if !ok {
				continue
			}
			if agg.Correct+agg.Incorrect > 0 {
				accSeries[i] = CharAccuracy(agg) * 100
			}
			latSeries[i] = CharLatency(agg)
		}
		if err := RenderChart(w, fmt.Sprintf("Char %s", CharLabel(ch)), []Series{
			{Name: "Accuracy", Values: MovingAverage(accSeries, window)},
			{Name: "Latency", Values: MovingAverage(latSeries, window)},
		}, ChartWidthFor(totalWidth), height, useColor); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
