// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive shell: one text area for pasted Markdown,
// export and clear actions, and a status line. Conversions run through an
// Exporter while the input is disabled.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pdiddy/omvandlare/internal/export"
)

const (
	appTitle = "omvandlare - Markdown to document"

	statusReady    = "Ready - paste text and press ctrl+s to export"
	statusBusy     = "Exporting…"
	statusFailed   = "Export failed!"
	statusCleared  = "Text cleared - ready for new content"
	statusCanceled = "Export cancelled"
)

// Exporter is the export workflow the shell drives.
type Exporter interface {
	Export(ctx context.Context, text, dest string) (export.Outcome, error)
	DefaultPath() string
	EnsureExtension(path string) string
	Format() string
}

type mode int

const (
	modeEditing mode = iota
	modeSaveAs
	modeConfirmClear
	modeExporting
	modePreview
)

// exportDoneMsg carries the result of a background export.
type exportDoneMsg struct {
	outcome export.Outcome
	err     error
}

// pasteMsg carries clipboard contents.
type pasteMsg struct {
	text string
	err  error
}

// previewMsg carries rendered Markdown.
type previewMsg struct {
	rendered string
	err      error
}

// Model is the Bubble Tea model of the shell.
type Model struct {
	ctx      context.Context
	exporter Exporter
	logger   *slog.Logger

	readClipboard func() (string, error)
	render        func(text string, width int) (string, error)

	input   textarea.Model
	preview viewport.Model
	form    *huh.Form

	// Form values live on the heap so huh can write through them after the
	// model is copied.
	savePath *string
	confirm  *bool

	mode    mode
	dialogs []dialog
	status  string
	failed  bool
	width   int
	height  int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(m *Model) { m.logger = l } }

// WithClipboard replaces the system clipboard reader.
func WithClipboard(read func() (string, error)) Option {
	return func(m *Model) { m.readClipboard = read }
}

// WithRenderer replaces the Markdown preview renderer.
func WithRenderer(render func(text string, width int) (string, error)) Option {
	return func(m *Model) { m.render = render }
}

// New returns a shell model exporting through exp.
func New(ctx context.Context, exp Exporter, opts ...Option) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste Markdown here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(78)
	ta.SetHeight(16)
	ta.Focus()

	m := Model{
		ctx:           ctx,
		exporter:      exp,
		logger:        slog.Default(),
		readClipboard: readSystemClipboard,
		render:        renderMarkdown,
		input:         ta,
		preview:       viewport.New(78, 16),
		savePath:      new(string),
		confirm:       new(bool),
		status:        statusReady,
		width:         80,
		height:        24,
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Text returns the current buffer.
func (m Model) Text() string { return m.input.Value() }

// Status returns the status line.
func (m Model) Status() string { return m.status }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.form != nil {
			m.form = m.form.WithWidth(min(msg.Width-2, 80))
		}
		return m, nil

	case exportDoneMsg:
		return m.finishExport(msg)

	case pasteMsg:
		if msg.err != nil {
			m.logger.Warn("reading clipboard", "error", msg.err)
			m.pushDialog(dialogWarning, "Clipboard", fmt.Sprintf("Could not read the clipboard:\n\n%v", msg.err))
			return m, nil
		}
		m.input.InsertString(msg.text)
		return m, nil

	case previewMsg:
		if m.mode != modePreview {
			return m, nil
		}
		if msg.err != nil {
			m.mode = modeEditing
			m.pushDialog(dialogError, "Preview", fmt.Sprintf("Could not render the preview:\n\n%v", msg.err))
			return m, m.input.Focus()
		}
		m.preview.SetContent(msg.rendered)
		m.preview.GotoTop()
		return m, nil
	}

	if len(m.dialogs) > 0 {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "enter", "esc", " ", "q":
				m.dialogs = m.dialogs[1:]
			case "ctrl+c":
				return m, tea.Quit
			}
		}
		return m, nil
	}

	switch m.mode {
	case modeSaveAs, modeConfirmClear:
		return m.updateForm(msg)
	case modePreview:
		return m.updatePreview(msg)
	case modeExporting:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			return m.beginExport()
		case "ctrl+l":
			return m.beginClear()
		case "ctrl+p":
			return m.beginPreview()
		case "ctrl+y":
			read := m.readClipboard
			return m, func() tea.Msg {
				text, err := read()
				return pasteMsg{text: text, err: err}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	// Title, hint, status and the border take eight rows.
	h := max(height-8, 3)
	w := max(width-4, 10)
	m.input.SetWidth(w)
	m.input.SetHeight(h)
	m.preview.Width = w
	m.preview.Height = h
}

func (m *Model) pushDialog(kind dialogKind, title, body string) {
	m.logger.Debug("showing dialog", "kind", kind.String(), "title", title)
	m.dialogs = append(m.dialogs, dialog{kind: kind, title: title, body: body})
}

// beginExport validates the buffer and asks where to save.
func (m Model) beginExport() (tea.Model, tea.Cmd) {
	if strings.TrimSpace(m.input.Value()) == "" {
		m.pushDialog(dialogWarning, "No content", "Please enter some text to convert!")
		return m, nil
	}

	*m.savePath = m.exporter.DefaultPath()
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Save %s document as", strings.ToUpper(m.exporter.Format()))).
			Value(m.savePath),
	)).WithShowHelp(false).WithWidth(min(m.width-2, 80))
	m.mode = modeSaveAs
	m.input.Blur()
	return m, m.form.Init()
}

// beginClear asks for confirmation before wiping the buffer.
func (m Model) beginClear() (tea.Model, tea.Cmd) {
	*m.confirm = false
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Clear text").
			Description("Are you sure you want to clear all text?").
			Affirmative("Yes").
			Negative("No").
			Value(m.confirm),
	)).WithShowHelp(false).WithWidth(min(m.width-2, 80))
	m.mode = modeConfirmClear
	m.input.Blur()
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		return m.closeForm(false)
	}

	fm, cmd := m.form.Update(msg)
	if f, ok := fm.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		return m.closeForm(true)
	case huh.StateAborted:
		return m.closeForm(false)
	}
	return m, cmd
}

// closeForm leaves the active form. submitted is false when the user
// cancelled it.
func (m Model) closeForm(submitted bool) (tea.Model, tea.Cmd) {
	prev := m.mode
	m.form = nil
	m.mode = modeEditing

	switch prev {
	case modeSaveAs:
		path := strings.TrimSpace(*m.savePath)
		if !submitted || path == "" {
			m.status = statusCanceled
			m.failed = false
			return m, m.input.Focus()
		}
		return m.startExport(path)

	case modeConfirmClear:
		if submitted && *m.confirm {
			m.input.Reset()
			m.status = statusCleared
			m.failed = false
		}
	}
	return m, m.input.Focus()
}

// startExport disables the input and runs the export off the UI loop.
func (m Model) startExport(path string) (tea.Model, tea.Cmd) {
	path = m.exporter.EnsureExtension(path)
	text := m.input.Value()

	m.mode = modeExporting
	m.status = statusBusy
	m.failed = false
	m.input.Blur()

	ctx, exp := m.ctx, m.exporter
	return m, func() tea.Msg {
		out, err := exp.Export(ctx, text, path)
		return exportDoneMsg{outcome: out, err: err}
	}
}

func (m Model) finishExport(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	m.mode = modeEditing
	focus := m.input.Focus()

	if msg.err != nil {
		m.status = statusFailed
		m.failed = true
		if errors.Is(msg.err, export.ErrEmptyInput) {
			m.pushDialog(dialogWarning, "No content", "Please enter some text to convert!")
			return m, focus
		}
		m.pushDialog(dialogError, "Export error", fmt.Sprintf(
			"Failed to export the document:\n\n%v\n\nMake sure the conversion engine is installed.", msg.err))
		return m, focus
	}

	out := msg.outcome
	m.status = "Exported to: " + filepath.Base(out.Path)
	m.failed = false
	m.pushDialog(dialogInfo, "Done!", fmt.Sprintf("Document exported.\n\nSaved as: %s", out.Path))
	if out.OpenErr != nil {
		m.pushDialog(dialogWarning, "Could not open the file", fmt.Sprintf(
			"The file was created but could not be opened automatically.\n\nYou can open it manually: %s\n\nDetails: %v",
			out.Path, out.OpenErr))
	}
	if out.Notice != "" {
		m.pushDialog(dialogWarning, "Conversion warnings", out.Notice)
	}
	return m, focus
}

func (m Model) beginPreview() (tea.Model, tea.Cmd) {
	m.mode = modePreview
	m.input.Blur()
	m.preview.SetContent("Rendering…")

	text, width, render := m.input.Value(), m.preview.Width, m.render
	return m, func() tea.Msg {
		out, err := render(text, width)
		return previewMsg{rendered: out, err: err}
	}
}

func (m Model) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+p", "esc", "q":
			m.mode = modeEditing
			return m, m.input.Focus()
		case "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(appTitle))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.hint()))
	b.WriteString("\n")

	switch {
	case len(m.dialogs) > 0:
		b.WriteString(m.dialogs[0].render(m.width))
	case m.form != nil:
		b.WriteString(focusedBorder.Render(m.form.View()))
	case m.mode == modePreview:
		b.WriteString(focusedBorder.Render(m.preview.View()))
	case m.mode == modeExporting:
		b.WriteString(disabledBorder.Render(m.input.View()))
	default:
		b.WriteString(focusedBorder.Render(m.input.View()))
	}

	b.WriteString("\n")
	style := statusStyle
	switch {
	case m.mode == modeExporting:
		style = statusBusyStyle
	case m.failed:
		style = statusFailStyle
	}
	b.WriteString(style.Render(m.status))
	return b.String()
}

func (m Model) hint() string {
	switch {
	case len(m.dialogs) > 0:
		return "enter: dismiss"
	case m.mode == modeSaveAs:
		return "enter: save • esc: cancel"
	case m.mode == modeConfirmClear:
		return "←/→: choose • enter: confirm • esc: cancel"
	case m.mode == modePreview:
		return "↑/↓: scroll • ctrl+p/esc: back to editing"
	case m.mode == modeExporting:
		return "please wait…"
	default:
		return "ctrl+s: export • ctrl+l: clear • ctrl+p: preview • ctrl+y: paste • esc: quit"
	}
}
