// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type dialogKind int

const (
	dialogInfo dialogKind = iota
	dialogWarning
	dialogError
)

func (k dialogKind) String() string {
	switch k {
	case dialogWarning:
		return "warning"
	case dialogError:
		return "error"
	default:
		return "info"
	}
}

// dialog is a modal message dismissed with enter or esc.
type dialog struct {
	kind  dialogKind
	title string
	body  string
}

func (d dialog) render(width int) string {
	var b strings.Builder
	b.WriteString(dialogTitle[d.kind].Render(d.title))
	b.WriteString("\n\n")
	b.WriteString(d.body)
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("enter: OK"))

	style := dialogBorder[d.kind]
	if width > 4 {
		style = style.Width(min(width-2, 80))
	}
	return lipgloss.NewStyle().Margin(1, 0).Render(style.Render(b.String()))
}
