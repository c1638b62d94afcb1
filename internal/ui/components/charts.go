package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tomato/internal/ui/theme"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline scales values to eight block heights. All-zero input renders a
// flat baseline.
func Sparkline(values []int) string {
	peak := 0
	for _, v := range values {
		peak = max(peak, v)
	}
	var sb strings.Builder
	for _, v := range values {
		if peak == 0 || v <= 0 {
			sb.WriteRune(sparkLevels[0])
			continue
		}
		idx := v * (len(sparkLevels) - 1) / peak
		sb.WriteRune(sparkLevels[idx])
	}
	return sb.String()
}

type Bar struct {
	Label string
	Value int
}

// BarChart draws vertical bars of the given height with the value on top
// and the label underneath.
func BarChart(bars []Bar, height, barWidth int) string {
	if height < 1 {
		height = 1
	}
	if barWidth < 1 {
		barWidth = 1
	}
	peak := 0
	for _, b := range bars {
		peak = max(peak, b.Value)
	}
	barStyle := lipgloss.NewStyle().Foreground(theme.Tomato)
	cols := make([]string, 0, len(bars))
	for _, b := range bars {
		filled := 0
		if peak > 0 {
			filled = (b.Value*height + peak - 1) / peak
		}
		rows := make([]string, 0, height+2)
		rows = append(rows, theme.StatValue.Render(center(fmt.Sprint(b.Value), barWidth)))
		for row := height; row > 0; row-- {
			if row <= filled {
				rows = append(rows, barStyle.Render(strings.Repeat("█", barWidth)))
			} else {
				rows = append(rows, strings.Repeat(" ", barWidth))
			}
		}
		rows = append(rows, theme.Muted.Render(center(b.Label, barWidth)))
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Left, rows...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, intersperse(cols, "  ")...)
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

func intersperse(items []string, sep string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items)*2-1)
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}
