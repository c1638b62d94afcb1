package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tomato/internal/ui/theme"
)

var (
	promptStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Tomato).
			Foreground(theme.Text).
			Padding(1, 2)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Surface1).
			Padding(0, 1)

	cursor = lipgloss.NewStyle().Foreground(theme.Gold).Render("█")
)

// TaskPrompt renders the task entry overlay. The text buffer itself lives in
// the clock; this only draws it.
func TaskPrompt(task string, width int) string {
	if width < 30 {
		width = 64
	}
	inner := width - 8
	if inner > 72 {
		inner = 72
	}

	value := task
	if value == "" {
		value = theme.Muted.Render("e.g. Write the quarterly report")
	}
	// Keep the tail visible when the task is wider than the box.
	runes := []rune(task)
	if keep := inner - 5; lipgloss.Width(task) > inner-4 && keep > 0 && keep < len(runes) {
		value = "…" + string(runes[len(runes)-keep:])
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("What are you working on?") + "\n\n")
	sb.WriteString(inputStyle.Width(inner).Render(value+cursor) + "\n\n")
	sb.WriteString(Hints([]Hint{{Key: "Enter", Action: "Start"}, {Key: "Esc", Action: "Cancel"}}))
	return promptStyle.Render(sb.String())
}

type Hint struct {
	Key    string
	Action string
}

// Hints renders a "[key] action" row.
func Hints(hints []Hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, theme.KeyHint.Render("["+h.Key+"]")+" "+theme.KeyAction.Render(h.Action))
	}
	return strings.Join(parts, "  ")
}
