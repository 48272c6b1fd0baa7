package cmd

import (
	"charm.land/lipgloss/v2"
)

// Terminal styles for command output.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8B5CF6"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8"))

	poolDueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F97316"))

	poolInterleaveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#14B8A6"))

	poolNewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22C55E"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F43F5E"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

func poolStyle(pool string) lipgloss.Style {
	switch pool {
	case "due":
		return poolDueStyle
	case "interleave":
		return poolInterleaveStyle
	case "new":
		return poolNewStyle
	}
	return labelStyle
}
