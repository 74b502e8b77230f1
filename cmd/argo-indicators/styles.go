package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for secondary text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef5350"))

	// CellStyle for plain table cells.
	CellStyle = lipgloss.NewStyle().Padding(0, 1)

	// PriceStyle and OscillatorStyle color the pane column of the indicator list.
	PriceStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#2962FF"))
	OscillatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8E24AA"))
)
