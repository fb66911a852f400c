// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// previewStyle is detected once, before the program owns the terminal.
var previewStyle = "dark"

// Run starts the shell and blocks until the user quits or ctx is done.
func Run(ctx context.Context, exp Exporter, opts ...Option) error {
	if !lipgloss.HasDarkBackground() {
		previewStyle = "light"
	}

	p := tea.NewProgram(New(ctx, exp, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running shell: %w", err)
	}
	return nil
}

func readSystemClipboard() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("clipboard not supported on this system")
	}
	return clipboard.ReadAll()
}

func renderMarkdown(text string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(previewStyle),
		glamour.WithWordWrap(max(width-2, 20)),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}
