package board

import (
	"errors"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"threadline/domain"
)

func (m Model) handleEditMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EditGateMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrSessionExpired) {
				return m, sessionExpired()
			}
			m.notice = "Could not verify session: " + msg.Err.Error()
			return m, nil
		}
		// Only one textarea at a time; a second grant is a no-op.
		if m.edit != nil {
			return m, nil
		}
		reply, ok := m.replyByID(msg.ThreadID, msg.ReplyID)
		if !ok {
			return m, nil // Deleted while the gate was in flight.
		}

		ta := textarea.New()
		ta.SetValue(reply.RawBody)
		ta.SetWidth(editorWidth(m.width))
		ta.SetHeight(5)
		ta.CharLimit = 0
		ta.Focus()

		m.edit = &editSession{
			replyID:  msg.ReplyID,
			threadID: msg.ThreadID,
			textarea: ta,
			original: reply.RawBody,
		}
		return m, textarea.Blink

	case EditSavedMsg:
		active := m.edit != nil && m.edit.replyID == msg.ReplyID

		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrSessionExpired) {
				return m, sessionExpired()
			}
			if active {
				// The textarea stays open so the user can retry or cancel.
				m.edit.saving = false
				m.edit.err = msg.Err.Error()
			}
			return m, nil
		}

		// Apply the server-confirmed body even if the user has since left
		// this edit session; a late success is silently applied.
		m.applyEditedBody(msg.ThreadID, msg.ReplyID, msg.Raw, msg.Sanitized)
		if active {
			m.edit = nil
			m.notice = "Reply updated."
		}
		return m, nil
	}

	return m, nil
}

// handleEditKey consumes every key while an edit session is active.
func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// The control is disabled during the save round trip.
	if m.edit.saving {
		return m, nil
	}

	switch {
	case msg.String() == "esc":
		// Cancel: the pre-edit raw text was never touched, so dropping the
		// session restores the view with no network call.
		m.edit = nil
		return m, nil

	case msg.Type == tea.KeyEnter && msg.Alt:
		// Modifier+enter inserts a literal line break instead of committing.
		m.edit.textarea.InsertString("\n")
		return m, nil

	case msg.Type == tea.KeyEnter:
		body := m.edit.textarea.Value()
		if isBlank(body) {
			m.edit.err = "Reply cannot be empty."
			return m, nil
		}
		m.edit.saving = true
		m.edit.err = ""
		return m, m.submitEdit(m.edit.replyID, m.edit.threadID, body)
	}

	var cmd tea.Cmd
	m.edit.textarea, cmd = m.edit.textarea.Update(msg)
	return m, cmd
}

func (m Model) replyByID(threadID, replyID string) (domain.Reply, bool) {
	tr, ok := m.byThread[threadID]
	if !ok {
		return domain.Reply{}, false
	}
	for _, r := range tr.replies {
		if r.ID == replyID {
			return r, true
		}
	}
	return domain.Reply{}, false
}

// applyEditedBody swaps in the server-sanitized body, retains the raw text
// for the next edit pass, and attaches the edited marker exactly once.
func (m *Model) applyEditedBody(threadID, replyID, raw, sanitized string) {
	tr, ok := m.byThread[threadID]
	if !ok {
		return
	}
	for i := range tr.replies {
		if tr.replies[i].ID == replyID {
			tr.replies[i].RawBody = raw
			tr.replies[i].DisplayBody = sanitized
			tr.replies[i].Edited = true
			return
		}
	}
}

func editorWidth(termWidth int) int {
	w := termWidth - 12
	if w < 24 {
		w = 24
	}
	if w > 76 {
		w = 76
	}
	return w
}
