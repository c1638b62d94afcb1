package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha surfaces with a tomato accent.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Overlay0 = lipgloss.Color("#6c7086")

	Tomato   = lipgloss.Color("#e74c3c")
	Gold     = lipgloss.Color("#f39c12")
	Green    = lipgloss.Color("#a6e3a1")
	Teal     = lipgloss.Color("#94e2d5")
	Sapphire = lipgloss.Color("#74c7ec")
	Sky      = lipgloss.Color("#89dceb")
	Peach    = lipgloss.Color("#fab387")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Align(lipgloss.Center).
		Padding(0, 1)

	Title     = lipgloss.NewStyle().Foreground(Tomato).Bold(true)
	Subtitle  = lipgloss.NewStyle().Foreground(Gold)
	Muted     = lipgloss.NewStyle().Foreground(Subtext0)
	Hot       = lipgloss.NewStyle().Foreground(Tomato).Bold(true)
	Success   = lipgloss.NewStyle().Foreground(Green)
	Warning   = lipgloss.NewStyle().Foreground(Peach)
	StatValue = lipgloss.NewStyle().Foreground(Text).Bold(true)
	KeyHint   = lipgloss.NewStyle().Foreground(Gold).Bold(true)
	KeyAction = lipgloss.NewStyle().Foreground(Subtext0)
)
