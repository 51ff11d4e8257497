package main

import "github.com/charmbracelet/lipgloss"

// palette
const (
	colorAccent = lipgloss.Color("#2EC4B6")
	colorHub    = lipgloss.Color("#FF9F1C")
	colorMuted  = lipgloss.Color("#7A7A7A")
	colorText   = lipgloss.Color("#F5F5F5")
	colorBad    = lipgloss.Color("#E71D36")
	colorGood   = lipgloss.Color("#8AC926")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHub).Margin(1, 0, 0, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorAccent).Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2)

	contentStyle = lipgloss.NewStyle().Margin(1, 0, 0, 2)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGood).
			Padding(1, 2).
			MarginRight(2)

	selectedSourceStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorAccent).Padding(0, 1)
	sourceStyle         = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)

	barStyle     = lipgloss.NewStyle().Foreground(colorHub)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBad)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGood)
	helpStyle    = lipgloss.NewStyle().Foreground(colorMuted).Margin(1, 0, 0, 2)
)
