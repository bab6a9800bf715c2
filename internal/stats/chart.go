package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series is a named data series for charts.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultChartHeight = 8
	minChartWidth      = 10
	fallbackTermWidth  = 80
	axisTop            = "max"
	axisBottom         = "min"
	axisRule           = " │ "
)

var seriesColors = []lipgloss.Color{"#5FD7FF", "#FF87D7", "#FFD75F", "#87FF87", "#8787FF"}

// ChartWidthFor is the plotting width left after the axis labels. A
// non-positive total falls back to the terminal width.
func ChartWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		totalWidth = TerminalWidth()
	}
	return max(minChartWidth, totalWidth-runewidth.StringWidth(axisTop+axisRule))
}

// TerminalWidth reports the stdout width or a fallback.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

// ColorEnabled reports whether w is a terminal that accepts colour.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// RenderChart draws series as braille lines, each scaled to its own range.
func RenderChart(w io.Writer, title string, series []Series, width, height int, useColor bool) error {
	kept := series[:0:0]
	for _, s := range series {
		if len(s.Values) > 0 {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultChartHeight
	}
	width = max(width, minChartWidth)

	grids := make([][][]uint8, len(kept))
	ranges := make([][2]float64, len(kept))
	for i, s := range kept {
		values := resample(s.Values, width)
		lo, hi := minMax(values)
		if hi-lo < 1e-9 {
			lo, hi = lo-1, hi+1
		}
		ranges[i] = [2]float64{lo, hi}
		grids[i] = plotBraille(values, lo, hi, width, height)
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(title + "\n")
	}
	for i, s := range kept {
		fmt.Fprintf(&b, "%s: min=%.1f max=%.1f\n", s.Name, ranges[i][0], ranges[i][1])
	}
	labelWidth := runewidth.StringWidth(axisTop)
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = axisTop
		case height - 1:
			label = axisBottom
		}
		b.WriteString(runewidth.FillLeft(label, labelWidth) + axisRule)
		for x := 0; x < width; x++ {
			var mask uint8
			owner := -1
			for i := range grids {
				if m := grids[i][y][x]; m != 0 {
					mask |= m
					if owner < 0 {
						owner = i
					}
				}
			}
			cell := string(rune(0x2800 + int(mask)))
			if useColor && owner >= 0 {
				cell = seriesStyle(owner).Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	legend := make([]string, len(kept))
	for i, s := range kept {
		legend[i] = "⣿ " + s.Name
		if useColor {
			legend[i] = seriesStyle(i).Render(legend[i])
		}
	}
	b.WriteString("Legend: " + strings.Join(legend, "  ") + "\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func seriesStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(seriesColors[i%len(seriesColors)])
}

// resample stretches or averages values onto width columns.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	n := len(values)
	for i := range out {
		start := i * n / width
		end := max(start+1, (i+1)*n/width)
		var sum float64
		for _, v := range values[start:min(end, n)] {
			sum += v
		}
		out[i] = sum / float64(min(end, n)-start)
	}
	return out
}

// plotBraille rasterizes values into braille cells, two dots wide and four
// tall per cell, joining neighbouring points.
func plotBraille(values []float64, lo, hi float64, width, height int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	dotsTall := height * 4
	rowOf := func(v float64) int {
		pos := (v - lo) / (hi - lo)
		return max(0, min(dotsTall-1, int(math.Round((1-pos)*float64(dotsTall-1)))))
	}
	prev := -1
	for x, v := range values {
		row := rowOf(v)
		from, to := row, row
		if prev >= 0 {
			from, to = min(prev, row), max(prev, row)
		}
		for y := from; y <= to; y++ {
			cells[y/4][x] |= brailleDot(0, y%4)
		}
		cells[row/4][x] |= brailleDot(1, row%4)
		prev = row
	}
	return cells
}

func brailleDot(col, row int) uint8 {
	left := [4]uint8{0x01, 0x02, 0x04, 0x40}
	right := [4]uint8{0x08, 0x10, 0x20, 0x80}
	if col == 0 {
		return left[row]
	}
	return right[row]
}
