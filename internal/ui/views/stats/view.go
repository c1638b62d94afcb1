package stats

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	historydto "tomato/internal/modules/history/dto"
	"tomato/internal/ui/components"
	"tomato/internal/ui/theme"
)

// Model is the Stats tab: summary cards, a seven-day trend and a daily bar
// chart in minutes.
type Model struct {
	stats  historydto.StatsOutput
	width  int
	height int
}

func New() Model { return Model{} }

func (m *Model) SetStats(s historydto.StatsOutput) { m.stats = s }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) View() string {
	cardWidth := max(12, (m.width-8)/4)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card(fmt.Sprint(m.stats.Count), "Sessions", cardWidth),
		card(fmt.Sprintf("%.0f%%", m.stats.CompletionRate), "Complete", cardWidth),
		card(ShortDuration(m.stats.TotalSeconds), "Focus", cardWidth),
		card(ShortDuration(m.stats.AverageSeconds), "Average", cardWidth),
	)

	values := make([]int, 0, len(m.stats.Daily))
	bars := make([]components.Bar, 0, len(m.stats.Daily))
	for _, d := range m.stats.Daily {
		values = append(values, d.Seconds)
		bars = append(bars, components.Bar{Label: d.Weekday, Value: d.Seconds / 60})
	}
	trend := theme.Pane.Render(
		theme.Subtitle.Bold(true).Render("7-Day Trend") + "\n" +
			lipgloss.NewStyle().Foreground(theme.Tomato).Render(spread(components.Sparkline(values))),
	)
	chartHeight := max(3, m.height-20)
	chart := theme.Pane.Render(
		theme.Subtitle.Bold(true).Render("Weekly Activity (minutes)") + "\n\n" +
			components.BarChart(bars, chartHeight, 5),
	)

	filter := theme.Success.Render("Filter: " + m.label())
	hints := filter + theme.Muted.Render(" | ") + components.Hints([]components.Hint{
		{Key: "Tab", Action: "Switch View"},
		{Key: "f", Action: "Filter"},
		{Key: "q", Action: "Quit"},
	})
	return lipgloss.JoinVertical(lipgloss.Left, cards, trend, chart, "", hints)
}

func (m Model) label() string {
	if m.stats.Label == "" {
		return "This Week"
	}
	return m.stats.Label
}

func card(value, label string, width int) string {
	return theme.Card.Width(width).Render(theme.StatValue.Render(value) + "\n" + theme.Muted.Render(label))
}

// spread widens each sparkline cell so seven days fill a readable width.
func spread(line string) string {
	out := make([]rune, 0, len(line)*4)
	for _, r := range line {
		out = append(out, r, r, r, ' ')
	}
	return string(out)
}

// ShortDuration renders seconds as "1h 5m", "12m" or "40s".
func ShortDuration(secs int) string {
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}
