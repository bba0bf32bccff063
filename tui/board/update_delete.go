package board

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"threadline/domain"
)

func (m Model) handleDeleteMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DeleteGateMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrSessionExpired) {
				return m, sessionExpired()
			}
			m.notice = "Could not verify session: " + msg.Err.Error()
			return m, nil
		}
		if m.inflight[msg.ID] {
			return m, nil
		}
		m.confirmID = msg.ID
		m.confirmThreadID = msg.ThreadID
		m.confirmIsReply = msg.IsReply
		return m, nil

	case DeleteResultMsg:
		delete(m.inflight, msg.ID)

		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrSessionExpired) {
				return m, sessionExpired()
			}
			// The item stays in place and its control re-enables with the
			// original label; only the error text changes.
			m.notice = "Delete failed: " + msg.Err.Error()
			return m, nil
		}

		if !msg.IsReply {
			m.removeThread(msg.ID)
			m.notice = "Thread deleted."
			m.clampCursor()
			return m, nil
		}

		// Reply deleted: drop it locally, decrement the badge as interim
		// display, then refetch the thread fully expanded so the server's
		// view wins.
		m.removeReply(msg.ThreadID, msg.ID)
		m.adjustReplyCount(msg.ThreadID, -1)
		m.notice = "Reply deleted."
		tr := m.repliesFor(msg.ThreadID)
		tr.seq++
		if tr.status == replyCollapsed {
			tr.status = replyLoading
		}
		m.clampCursor()
		return m, m.fetchReplies(msg.ThreadID, tr.seq, true)
	}

	return m, nil
}

// handleConfirmKey consumes keys while the delete confirmation prompt is up.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id, threadID, isReply := m.confirmID, m.confirmThreadID, m.confirmIsReply
		m.confirmID = ""
		// Disable the control before the suspension point; this is the only
		// guard against a second delete racing the first.
		m.inflight[id] = true
		return m, m.submitDelete(id, threadID, isReply)
	case "n", "N", "esc":
		// Declined: no state change, no network call.
		m.confirmID = ""
		return m, nil
	}
	return m, nil
}

func (m *Model) removeThread(id string) {
	for i, t := range m.threads {
		if t.ID == id {
			m.threads = append(m.threads[:i], m.threads[i+1:]...)
			delete(m.byThread, id)
			return
		}
	}
}

func (m *Model) removeReply(threadID, replyID string) {
	tr, ok := m.byThread[threadID]
	if !ok {
		return
	}
	for i, r := range tr.replies {
		if r.ID == replyID {
			tr.replies = append(tr.replies[:i], tr.replies[i+1:]...)
			return
		}
	}
}
