package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanape/internal/kana"
	"github.com/verte-zerg/kanape/internal/match"
)

// fingerColors are indexed by kana.FingerGroup.
var fingerColors = []lipgloss.Color{
	"#3A3A3A",
	"#B5651D", "#C0392B", "#D4AC0D", "#7D9D3A",
	"#2E86C1", "#17A589", "#8E44AD", "#A04000",
}

var (
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Padding(0, 1)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#101010")).Background(lipgloss.Color("#F5F5F5")).Bold(true).Padding(0, 1)
	homeStyle = lipgloss.NewStyle().Underline(true)
)

func keyWidth(k kana.KeyID) int {
	switch k {
	case kana.ShiftLeft, kana.ShiftRight:
		return 6
	case kana.Space:
		return 14
	case kana.Enter, kana.Backspace:
		return 4
	default:
		return 2
	}
}

// renderKeyboard draws the board for the given shift layer and highlights
// the hinted key.
func renderKeyboard(hint match.Hint, shifted bool) string {
	rows := kana.Rows()
	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		keys := make([]string, 0, len(row))
		for _, k := range row {
			keys = append(keys, renderKey(k, shifted, hint.Key != kana.KeyNone && k == hint.Key))
		}
		indent := strings.Repeat(" ", min(i, 3)*2)
		lines = append(lines, indent+lipgloss.JoinHorizontal(lipgloss.Top, keys...))
	}
	return strings.Join(lines, "\n")
}

func renderKey(k kana.KeyID, shifted, hinted bool) string {
	label := kana.Label(k, shifted)
	if label == "" {
		label = " "
	}
	style := keyStyle.Background(fingerColors[kana.FingerGroup(label)])
	if hinted {
		style = hintStyle
	}
	if kana.IsHomeKey(k) {
		style = style.Inherit(homeStyle)
	}
	return style.Width(keyWidth(k) + 2).Align(lipgloss.Center).Render(label)
}
