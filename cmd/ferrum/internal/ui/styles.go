// Package ui holds the lipgloss styles shared by the CLI commands.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#3b82f6")
	successColor = lipgloss.Color("#10b981")
	errorColor   = lipgloss.Color("#ef4444")
	mutedColor   = lipgloss.Color("#94a3b8")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// Title renders a command banner line.
func Title(s string) string { return titleStyle.Render(s) }

// Success renders a success message.
func Success(s string) string { return successStyle.Render(s) }

// Error renders a failure message.
func Error(s string) string { return errorStyle.Render(s) }

// Muted renders secondary help text.
func Muted(s string) string { return mutedStyle.Render(s) }
