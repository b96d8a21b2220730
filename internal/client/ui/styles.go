// Package ui renders page content for the terminal: KPI cards, tables and
// status lines, styled with lipgloss.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	Primary     = lipgloss.Color("#1F4E79")
	Accent      = lipgloss.Color("#2196F3")
	Muted       = lipgloss.Color("#8A94A6")
	Border      = lipgloss.Color("#C9D1DC")
	Destructive = lipgloss.Color("#E53935")
	Success     = lipgloss.Color("#43A047")
	Warning     = lipgloss.Color("#FFC107")
)

// Styles holds the styled building blocks pages are made of.
type Styles struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	Card      lipgloss.Style
	CardLabel lipgloss.Style
	CardValue lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Bold:    lipgloss.NewStyle().Bold(true),
		Body:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(Muted),
		Error:   lipgloss.NewStyle().Foreground(Destructive),
		Success: lipgloss.NewStyle().Foreground(Success),
		Warning: lipgloss.NewStyle().Foreground(Warning),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1).
			MarginRight(1),
		CardLabel: lipgloss.NewStyle().Foreground(Muted),
		CardValue: lipgloss.NewStyle().Bold(true).Foreground(Accent),
	}
}

// PlainStyles drops colors and borders; used when NO_COLOR is set and in tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:     plain,
		Bold:      plain,
		Body:      plain,
		Muted:     plain,
		Error:     plain,
		Success:   plain,
		Warning:   plain,
		Card:      lipgloss.NewStyle().MarginRight(2),
		CardLabel: plain,
		CardValue: plain,
	}
}

// DetectStyles honours the NO_COLOR convention.
func DetectStyles() Styles {
	if os.Getenv("NO_COLOR") != "" {
		return PlainStyles()
	}
	return DefaultStyles()
}
