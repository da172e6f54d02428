package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorHighlight = lipgloss.Color("229")
	ColorSelected  = lipgloss.Color("57")
	ColorMuted     = lipgloss.Color("241")
	ColorError     = lipgloss.Color("196")
	ColorOK        = lipgloss.Color("42")
)

var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Background(ColorSelected)
	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	OKStyle       = lipgloss.NewStyle().Foreground(ColorOK)
)
