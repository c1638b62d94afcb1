package history

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	historydto "tomato/internal/modules/history/dto"
	"tomato/internal/ui/components"
	"tomato/internal/ui/theme"
)

const taskWidth = 32

// Model is the History tab: a scrollable table of sessions, newest first.
type Model struct {
	table  table.Model
	list   historydto.ListOutput
	loc    *time.Location
	width  int
	height int
}

func New(loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}
	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Surface1).
		BorderBottom(true).
		Foreground(theme.Gold).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.Base).
		Background(theme.Tomato).
		Bold(false)
	t.SetStyles(styles)
	return Model{table: t, loc: loc}
}

func columns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Time", Width: 5},
		{Title: "Task", Width: taskWidth},
		{Title: "Duration", Width: 8},
		{Title: "Status", Width: 11},
	}
}

// SetList replaces the rows and keeps the cursor in range.
func (m *Model) SetList(list historydto.ListOutput) {
	m.list = list
	rows := make([]table.Row, 0, len(list.Records))
	for _, r := range list.Records {
		local := r.StartedAt.In(m.loc)
		status := "Interrupted"
		if r.Completed {
			status = "Completed"
		}
		rows = append(rows, table.Row{
			local.Format("2006-01-02"),
			local.Format("15:04"),
			truncate(r.Task, taskWidth),
			MinutesSeconds(r.DurationSecs),
			status,
		})
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

func (m *Model) ResetCursor() { m.table.SetCursor(0) }

func (m Model) Cursor() int { return m.table.Cursor() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(3, m.height-6))
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := theme.Title.Render(fmt.Sprintf("Session History (%s)", m.label())) +
		theme.Muted.Render(fmt.Sprintf("  %d sessions", len(m.list.Records)))

	var body string
	if len(m.list.Records) == 0 {
		body = theme.Muted.Render("No sessions found.")
	} else {
		body = theme.Pane.Render(m.table.View())
	}
	hints := components.Hints([]components.Hint{
		{Key: "↑/↓", Action: "Navigate"},
		{Key: "f", Action: "Filter"},
		{Key: "Tab", Action: "View"},
		{Key: "q", Action: "Quit"},
	})
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", hints)
}

func (m Model) label() string {
	if m.list.Label == "" {
		return "This Week"
	}
	return m.list.Label
}

// MinutesSeconds formats whole seconds as m:ss.
func MinutesSeconds(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
