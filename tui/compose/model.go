package compose

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"threadline/infra/editor"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// --- Messages ---

// DoneMsg is sent when composing is complete (success or cancel).
type DoneMsg struct {
	ThreadID string
	Body     string // Empty if cancelled
	Err      error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model holds the state for the reply composer.
type Model struct {
	mode        mode
	editor      *editor.EnvEditor
	threadID    string
	threadTitle string
	status      string
	textarea    textarea.Model // Only used in inline mode
	tmpPath     string         // Temp file path for editor mode
}

// NewEditor creates a composer that opens $EDITOR via tea.Exec.
func NewEditor(ed *editor.EnvEditor, threadID, threadTitle string) Model {
	return Model{
		mode:        editorMode,
		editor:      ed,
		threadID:    threadID,
		threadTitle: threadTitle,
		status:      "Opening editor...",
	}
}

// NewInline creates a composer with an inline Bubble Tea textarea.
func NewInline(threadID, threadTitle string) Model {
	ta := textarea.New()
	ta.Placeholder = "Write your reply..."
	ta.CharLimit = 0
	ta.SetWidth(72)
	ta.SetHeight(6)
	ta.Focus()

	return Model{
		mode:        inlineMode,
		threadID:    threadID,
		threadTitle: threadTitle,
		textarea:    ta,
	}
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.Exec to properly
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m *Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd("", m.threadTitle)
	if err != nil {
		threadID := m.threadID
		return func() tea.Msg {
			return DoneMsg{ThreadID: threadID, Err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	m.tmpPath = tmpPath

	// tea.ExecProcess suspends Bubble Tea, runs the command with full terminal
	// control, then resumes Bubble Tea and delivers the callback message.
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the composer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(DoneMsg{ThreadID: m.threadID, Err: fmt.Errorf("editor: %w", msg.err)})
		}

		body, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{ThreadID: m.threadID, Err: err})
		}
		if body == "" {
			return m, done(DoneMsg{ThreadID: m.threadID}) // Cancel
		}
		return m, done(DoneMsg{ThreadID: m.threadID, Body: body})

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{ThreadID: m.threadID}) // Cancel.

		case "ctrl+d":
			body := m.textarea.Value()
			if body == "" {
				return m, done(DoneMsg{ThreadID: m.threadID})
			}
			return m, done(DoneMsg{ThreadID: m.threadID, Body: body})
		}

		// Delegate to textarea for normal typing.
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	// Pass through any remaining messages to textarea in inline mode.
	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
