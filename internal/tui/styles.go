// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusBusyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	statusFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red

	focusedBorder  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("2"))
	disabledBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))

	dialogBorder = map[dialogKind]lipgloss.Style{
		dialogInfo:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("2")).Padding(0, 1),
		dialogWarning: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("3")).Padding(0, 1),
		dialogError:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("1")).Padding(0, 1),
	}
	dialogTitle = map[dialogKind]lipgloss.Style{
		dialogInfo:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		dialogWarning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		dialogError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
)
