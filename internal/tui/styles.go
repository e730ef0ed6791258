package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleHeader    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleWord      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleSection   = lipgloss.NewStyle().Bold(true).Underline(true)
	styleSubtle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleCompleted = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleCursor    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleHighlight = lipgloss.NewStyle().Background(lipgloss.Color("22")).Foreground(lipgloss.Color("0"))
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
	styleCard      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)
