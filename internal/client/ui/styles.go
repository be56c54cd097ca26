package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Palette
	Primary  = lipgloss.Color("#7D56F4") // Violet
	Accent   = lipgloss.Color("#04B575") // Green
	Warning  = lipgloss.Color("#FFAD00") // Orange
	ErrorCol = lipgloss.Color("#FF5F56") // Red
	Muted    = lipgloss.Color("#888888") // Gray
	Text     = lipgloss.Color("#FFFFFF") // White

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(1, 1)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(Muted).
			PaddingLeft(2).
			MarginBottom(1)

	CardStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Muted).
			MarginLeft(2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Width(12)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	DoneStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Strikethrough(true)

	PendingStyle = lipgloss.NewStyle().
			Foreground(Text)

	FilterStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ErrorCol).
			PaddingLeft(2)

	StatusTextStyle = lipgloss.NewStyle().
			Foreground(Accent).
			PaddingLeft(2)

	ConfirmStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true).
			PaddingLeft(2)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	FooterStyle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginTop(1).
			PaddingLeft(2).
			Faint(true)
)
