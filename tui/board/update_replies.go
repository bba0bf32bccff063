package board

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"threadline/domain"
)

func (m Model) handleRepliesMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RepliesLoadedMsg:
		tr := m.repliesFor(msg.ThreadID)
		// A response from a superseded fetch is discarded silently, as is a
		// response for a thread that collapsed while the fetch was in flight.
		if msg.Seq != tr.seq {
			return m, nil
		}
		if tr.status == replyCollapsed && !msg.ForceFull {
			return m, nil
		}

		tr.replies = msg.Set.Replies
		if msg.ForceFull || msg.Set.Count <= recentReplyCount {
			tr.status = replyFull
			tr.showAllUsed = true
		} else {
			tr.status = replyPartial
		}
		m.setReplyCount(msg.ThreadID, msg.Set.Count)
		m.clampCursor()
		return m, nil

	case RepliesErrorMsg:
		tr := m.repliesFor(msg.ThreadID)
		if msg.Seq != tr.seq {
			return m, nil
		}
		if errors.Is(msg.Err, domain.ErrSessionExpired) {
			return m, sessionExpired()
		}
		// Roll back to the state the user could reach before the click.
		if tr.status == replyLoading {
			tr.status = replyCollapsed
			tr.showAllUsed = false
		}
		m.notice = "Could not load replies: " + msg.Err.Error()
		m.clampCursor()
		return m, nil

	case CountRefreshedMsg:
		// A failed refresh keeps the last known count on purpose; the
		// collapse already happened and must not block on this.
		if msg.Err != nil {
			return m, nil
		}
		m.setReplyCount(msg.ThreadID, msg.Count)
		return m, nil

	case ReplyCreatedMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrSessionExpired) {
				return m, sessionExpired()
			}
			return m, nil // The root model surfaces the error.
		}
		// A successful creation force-opens the thread fully expanded with a
		// fresh fetch; the bumped badge is interim display only.
		m.adjustReplyCount(msg.ThreadID, +1)
		tr := m.repliesFor(msg.ThreadID)
		tr.seq++
		if tr.status == replyCollapsed {
			tr.status = replyLoading
		}
		return m, m.fetchReplies(msg.ThreadID, tr.seq, true)
	}

	return m, nil
}

// setReplyCount records the latest authoritative count on the owning thread.
func (m *Model) setReplyCount(threadID string, count int) {
	if count < 0 {
		count = 0
	}
	for i := range m.threads {
		if m.threads[i].ID == threadID {
			m.threads[i].ReplyCount = count
			return
		}
	}
}

// adjustReplyCount applies a best-effort local delta, floored at zero. The
// next fetch overwrites it with the server's count.
func (m *Model) adjustReplyCount(threadID string, delta int) {
	for i := range m.threads {
		if m.threads[i].ID == threadID {
			n := m.threads[i].ReplyCount + delta
			if n < 0 {
				n = 0
			}
			m.threads[i].ReplyCount = n
			return
		}
	}
}
