package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/kanape/internal/match"
)

type styledCell struct {
	s       string
	width   int
	isSpace bool
}

func statusStyle(s match.Status) lipgloss.Style {
	switch s {
	case match.StatusCorrect:
		return correctStyle
	case match.StatusWrong:
		return incorrectStyle
	default:
		return pendingStyle
	}
}

// buildStyledCells colours each target grapheme. A grapheme whose base and
// mark disagree is drawn as base plus spacing mark so each half gets its own
// colour.
func buildStyledCells(cells []match.Cell, cursorIndex int) []styledCell {
	out := make([]styledCell, 0, len(cells))
	for i, cell := range cells {
		base, mark := cell.BaseStatus(), cell.MarkStatus()
		var text string
		switch {
		case cell.Target == " ":
			text = " "
			if cell.Status == match.StatusWrong {
				text = incorrectStyle.Render("•")
			}
		case cell.Target == "\n":
			text = statusStyle(base).Render("⏎")
		case cell.Mark == "" || base == mark:
			style := statusStyle(base)
			if i == cursorIndex {
				style = style.Underline(true)
			}
			text = style.Render(cell.Target)
		default:
			text = statusStyle(base).Render(cell.Base) + statusStyle(mark).Underline(i == cursorIndex).Render(cell.Mark)
		}
		width := runewidth.StringWidth(cell.Target)
		if cell.Target == "\n" {
			width = 1
		} else if cell.Mark != "" && base != mark {
			width = runewidth.StringWidth(cell.Base + cell.Mark)
		}
		out = append(out, styledCell{s: text, width: width, isSpace: cell.Target == " "})
	}
	return out
}

func renderStyledCells(cells []styledCell) string {
	var b strings.Builder
	for _, item := range cells {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledCells breaks at the last space that fits, or mid-word when a word
// is wider than the line.
func wrapStyledCells(cells []styledCell, width int) string {
	if width <= 0 {
		return renderStyledCells(cells)
	}
	var out strings.Builder
	line := make([]styledCell, 0, len(cells))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		item := cells[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledCells(line[:lastSpaceIdx]))
				line = append([]styledCell{}, line[lastSpaceIdx+1:]...)
			} else {
				out.WriteString(renderStyledCells(line))
				line = line[:0]
			}
			out.WriteRune('\n')
			lineWidth, lastSpaceIdx = measure(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledCells(line))
	return out.String()
}

func measure(line []styledCell) (width, lastSpace int) {
	lastSpace = -1
	for i, item := range line {
		width += item.width
		if item.isSpace {
			lastSpace = i
		}
	}
	return width, lastSpace
}
