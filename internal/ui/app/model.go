package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	historydomain "tomato/internal/modules/history/domain"
	historydto "tomato/internal/modules/history/dto"
	timerdto "tomato/internal/modules/timer/dto"
	apperrors "tomato/internal/platform/errors"
	"tomato/internal/ui/theme"
	historyview "tomato/internal/ui/views/history"
	statsview "tomato/internal/ui/views/stats"
	timerview "tomato/internal/ui/views/timer"
)

// TickInterval is how often the running clock is re-read.
const TickInterval = 250 * time.Millisecond

// ─── ports ───────────────────────────────────────────────────────────────────

type timerPort interface {
	Key(ctx context.Context, key string) (timerdto.ApplyOutput, bool, error)
	Runes(ctx context.Context, runes []rune) (timerdto.ApplyOutput, error)
	Tick(ctx context.Context) (timerdto.ApplyOutput, error)
	Quit(ctx context.Context) (timerdto.ApplyOutput, error)
	Snapshot(ctx context.Context) timerdto.Snapshot
}

type historyPort interface {
	List(ctx context.Context, window string) (historydto.ListOutput, error)
	Stats(ctx context.Context, window string) (historydto.StatsOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabHistory
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Timer", "History", "Stats"}

// ─── messages ────────────────────────────────────────────────────────────────

type tickMsg time.Time

type sessionsLoadedMsg struct {
	list  historydto.ListOutput
	stats historydto.StatsOutput
	err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. The clock lives behind timerPort and
// is only touched from Update, so it never sees concurrent access.
type Model struct {
	timer   timerPort
	history historyPort

	timerView   timerview.Model
	historyView historyview.Model
	statsView   statsview.Model

	activeTab tabID
	window    historydomain.Window
	keys      keyMap
	help      help.Model
	showHelp  bool
	status    string
	statusErr bool
	quitting  bool
	width     int
	height    int
}

func NewModel(timer timerPort, history historyPort, loc *time.Location) Model {
	m := Model{
		timer:       timer,
		history:     history,
		timerView:   timerview.New(),
		historyView: historyview.New(loc),
		statsView:   statsview.New(),
		activeTab:   tabTimer,
		window:      historydomain.WindowWeek,
		keys:        defaultKeys(),
		help:        help.New(),
	}
	m.timerView.SetSnapshot(timer.Snapshot(context.Background()))
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.loadSessionsCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.propagateSize()
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		if m.snapshot().Phase != timerdto.PhaseRunning {
			return m, tickCmd()
		}
		out, err := m.timer.Tick(context.Background())
		return m.afterApply(out, err, tickCmd())

	case sessionsLoadedMsg:
		if msg.err != nil {
			m.setError(loadErrorText(msg.err))
			m.historyView.SetList(historydto.ListOutput{Label: m.window.Label()})
			m.statsView.SetStats(historydto.StatsOutput{Label: m.window.Label()})
			return m, nil
		}
		m.historyView.SetList(msg.list)
		m.statsView.SetStats(msg.stats)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	keyName := msg.String()

	if keyName == "ctrl+c" {
		out, err := m.timer.Quit(ctx)
		return m.afterApply(out, err, nil)
	}

	// Task entry owns the keyboard.
	if m.snapshot().Phase == timerdto.PhaseEnteringTask {
		if msg.Type == tea.KeyRunes && !msg.Paste {
			out, err := m.timer.Runes(ctx, msg.Runes)
			return m.afterApply(out, err, nil)
		}
		if msg.Paste {
			out, err := m.timer.Runes(ctx, []rune(strings.ReplaceAll(string(msg.Runes), "\n", " ")))
			return m.afterApply(out, err, nil)
		}
		out, _, err := m.timer.Key(ctx, keyName)
		return m.afterApply(out, err, nil)
	}

	if m.showHelp {
		if keyName == "?" || keyName == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.activeTab + 1) % tabCount)
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.activeTab + tabCount - 1) % tabCount)
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case m.activeTab != tabTimer && key.Matches(msg, m.keys.Filter):
		m.window = m.window.Next()
		m.historyView.ResetCursor()
		return m, m.loadSessionsCmd()
	case m.activeTab == tabHistory && (key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.Down)):
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd
	}

	if m.activeTab != tabTimer && !timerKeys[keyName] {
		return m, nil
	}
	// An idle clock reads any other character as the start of a task name.
	if m.activeTab != tabTimer && m.snapshot().Phase == timerdto.PhaseIdle && !quitKeys[keyName] {
		return m, nil
	}
	out, handled, err := m.timer.Key(ctx, keyName)
	if !handled {
		return m, nil
	}
	return m.afterApply(out, err, nil)
}

// afterApply folds a clock transition into the model: it refreshes the
// timer view, reports persistence, reloads history when a record was written
// and ends the program on quit.
func (m Model) afterApply(out timerdto.ApplyOutput, err error, next tea.Cmd) (tea.Model, tea.Cmd) {
	if err != nil {
		m.setError(err.Error())
		return m, next
	}
	m.timerView.SetSnapshot(out.Snapshot)
	if out.Snapshot.Phase == timerdto.PhaseEnteringTask {
		m.activeTab = tabTimer
	}

	cmds := []tea.Cmd{next}
	switch {
	case out.PersistErr != nil:
		m.setError("could not save session: " + out.PersistErr.Error())
	case out.Persisted != nil:
		verb := "interrupted"
		if out.Persisted.Completed {
			verb = "completed"
		}
		m.setStatus(fmt.Sprintf("saved %s session: %s (%s)", verb, out.Persisted.Task, historyview.MinutesSeconds(out.Persisted.DurationSecs)))
		cmds = append(cmds, m.loadSessionsCmd())
	case out.Finished != "" && out.Finished != timerdto.KindWork:
		m.setStatus("break over")
	}

	if out.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tea.Batch(cmds...)
}

func (m Model) switchTab(tab tabID) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	m.historyView.ResetCursor()
	if tab == tabTimer {
		return m, nil
	}
	return m, m.loadSessionsCmd()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m Model) snapshot() timerdto.Snapshot {
	return m.timerView.Snapshot()
}

func loadErrorText(err error) string {
	if errors.Is(err, apperrors.ErrCorruptStore) {
		return "session history is unreadable; showing no sessions (" + err.Error() + ")"
	}
	return "could not load sessions: " + err.Error()
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Padding(1, 2).
			Render(m.help.View(m.keys))
	default:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.activeView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	if m.snapshot().Phase == timerdto.PhaseEnteringTask {
		return m.timerView.View()
	}
	switch m.activeTab {
	case tabHistory:
		return m.historyView.View()
	case tabStats:
		return m.statsView.View()
	}
	return m.timerView.View()
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := " " + tabLabels[i] + " "
		if i == m.activeTab {
			parts[i] = theme.Hot.Underline(true).Render(label)
		} else {
			parts[i] = theme.Muted.Render(label)
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := theme.Title.Render("🍅 tomato") + "  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Muted.Render(m.status)
	if m.statusErr {
		left = theme.Warning.Render(m.status)
	}
	right := theme.Muted.Render("?:help  tab:switch  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(1, m.height-4)}
	m.timerView, _ = m.timerView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

func (m Model) loadSessionsCmd() tea.Cmd {
	window := m.window.String()
	return func() tea.Msg {
		ctx := context.Background()
		list, err := m.history.List(ctx, window)
		if err != nil {
			return sessionsLoadedMsg{err: err}
		}
		stats, err := m.history.Stats(ctx, window)
		return sessionsLoadedMsg{list: list, stats: stats, err: err}
	}
}
