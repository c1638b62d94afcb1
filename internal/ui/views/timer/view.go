package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdto "tomato/internal/modules/timer/dto"
	"tomato/internal/ui/components"
	"tomato/internal/ui/theme"
)

// Model renders the Timer tab from the latest clock snapshot.
type Model struct {
	snap   timerdto.Snapshot
	bar    progress.Model
	width  int
	height int
}

func New() Model {
	bar := progress.New(
		progress.WithGradient(string(theme.Tomato), string(theme.Gold)),
		progress.WithoutPercentage(),
	)
	return Model{bar: bar}
}

func (m *Model) SetSnapshot(s timerdto.Snapshot) { m.snap = s }

func (m Model) Snapshot() timerdto.Snapshot { return m.snap }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(m.width-24, 60))
	}
	return m, nil
}

func (m Model) View() string {
	if m.snap.Phase == timerdto.PhaseEnteringTask {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			components.TaskPrompt(m.snap.Task, min(m.width, 80)))
	}

	color := phaseColor(m.snap.Phase, m.snap.Kind)
	clock := lipgloss.NewStyle().Foreground(color).Bold(true).Render(components.BigClock(m.snap.RemainingSecs))

	sections := []string{
		theme.Subtitle.Render(m.headline()),
		"",
		clock,
		"",
		m.progressLine(),
		"",
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(statusLabel(m.snap.Phase, m.snap.Kind)),
		theme.Muted.Render(m.counterLine()),
		"",
		components.Hints(hintsFor(m.snap.Phase, m.snap.Kind)),
	}
	body := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) headline() string {
	switch {
	case m.snap.Phase == timerdto.PhaseIdle:
		return "Press ENTER to start a new session"
	case m.snap.Kind == timerdto.KindShortBreak && m.snap.Phase != timerdto.PhaseBreakFinished:
		return "Take a short break. Stretch, hydrate!"
	case m.snap.Kind == timerdto.KindLongBreak && m.snap.Phase != timerdto.PhaseBreakFinished:
		return "Long break. You've earned it."
	case m.snap.Phase == timerdto.PhaseWorkFinished:
		return "Completed: " + m.snap.Task
	case m.snap.Phase == timerdto.PhaseBreakFinished:
		return "Break complete. Ready for another session?"
	}
	return "Working on: " + m.snap.Task
}

func (m Model) progressLine() string {
	elapsed := theme.Muted.Render(fmt.Sprintf("%6s", components.MinSec(m.snap.ElapsedSecs)))
	remaining := theme.Muted.Render("-" + components.MinSec(m.snap.RemainingSecs))
	percent := theme.Muted.Render(fmt.Sprintf("%3.0f%%", m.snap.Progress*100))
	return strings.Join([]string{elapsed, m.bar.ViewAs(m.snap.Progress), remaining, percent}, " ")
}

func (m Model) counterLine() string {
	if m.snap.SessionsUntilLongBreak <= 0 {
		return ""
	}
	done := min(m.snap.WorkSessionsCompleted, m.snap.SessionsUntilLongBreak)
	dots := strings.Repeat("●", done) + strings.Repeat("○", m.snap.SessionsUntilLongBreak-done)
	return fmt.Sprintf("%s  %d/%d until long break", dots, m.snap.WorkSessionsCompleted, m.snap.SessionsUntilLongBreak)
}

func phaseColor(phase, kind string) lipgloss.Color {
	switch phase {
	case timerdto.PhaseRunning:
		switch kind {
		case timerdto.KindShortBreak:
			return theme.Teal
		case timerdto.KindLongBreak:
			return theme.Sapphire
		}
		return theme.Green
	case timerdto.PhasePaused:
		return theme.Gold
	case timerdto.PhaseWorkFinished:
		return theme.Sky
	case timerdto.PhaseBreakFinished:
		return theme.Teal
	}
	return theme.Overlay0
}

func statusLabel(phase, kind string) string {
	switch phase {
	case timerdto.PhaseRunning:
		switch kind {
		case timerdto.KindShortBreak:
			return "SHORT BREAK"
		case timerdto.KindLongBreak:
			return "LONG BREAK"
		}
		return "FOCUS TIME"
	case timerdto.PhasePaused:
		return "PAUSED"
	case timerdto.PhaseWorkFinished:
		return "SESSION COMPLETE!"
	case timerdto.PhaseBreakFinished:
		return "BREAK OVER"
	case timerdto.PhaseEnteringTask:
		return "ENTER TASK"
	}
	return "READY"
}

func hintsFor(phase, kind string) []components.Hint {
	switch phase {
	case timerdto.PhaseRunning:
		if kind == timerdto.KindWork {
			return []components.Hint{{Key: "Space", Action: "Pause"}, {Key: "r", Action: "Stop"}, {Key: "Tab", Action: "View"}, {Key: "q", Action: "Quit"}}
		}
		return []components.Hint{{Key: "s", Action: "Skip"}, {Key: "r", Action: "Stop"}, {Key: "Tab", Action: "View"}, {Key: "q", Action: "Quit"}}
	case timerdto.PhasePaused:
		return []components.Hint{{Key: "Space", Action: "Resume"}, {Key: "r", Action: "Stop"}, {Key: "Tab", Action: "View"}, {Key: "q", Action: "Quit"}}
	case timerdto.PhaseWorkFinished:
		return []components.Hint{{Key: "b", Action: "Break"}, {Key: "Enter", Action: "New Task"}, {Key: "s", Action: "Skip"}, {Key: "q", Action: "Quit"}}
	case timerdto.PhaseBreakFinished:
		return []components.Hint{{Key: "Enter", Action: "New Task"}, {Key: "s", Action: "Idle"}, {Key: "q", Action: "Quit"}}
	}
	return []components.Hint{{Key: "Enter", Action: "Start"}, {Key: "Tab", Action: "View"}, {Key: "q", Action: "Quit"}}
}
