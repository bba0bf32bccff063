package board

import "threadline/domain"

// rowRef addresses one selectable row: a thread, or one of its visible
// replies. replyIdx is -1 for the thread row itself and otherwise indexes
// into visibleReplies of that thread.
type rowRef struct {
	threadIdx int
	replyIdx  int
}

func (r rowRef) isThread() bool { return r.replyIdx < 0 }

// visibleRows flattens the thread list and every expanded reply subtree into
// the navigable row sequence the cursor walks.
func (m Model) visibleRows() []rowRef {
	rows := make([]rowRef, 0, len(m.threads))
	for i, t := range m.threads {
		rows = append(rows, rowRef{threadIdx: i, replyIdx: -1})
		for j := range m.visibleReplies(t.ID) {
			rows = append(rows, rowRef{threadIdx: i, replyIdx: j})
		}
	}
	return rows
}

// visibleReplies returns the replies currently shown for a thread: the last
// recentReplyCount in server order when partially expanded, everything when
// fully expanded, nothing otherwise.
func (m Model) visibleReplies(threadID string) []domain.Reply {
	tr, ok := m.byThread[threadID]
	if !ok {
		return nil
	}
	switch tr.status {
	case replyFull:
		return tr.replies
	case replyPartial:
		if len(tr.replies) <= recentReplyCount {
			return tr.replies
		}
		return tr.replies[len(tr.replies)-recentReplyCount:]
	default:
		return nil
	}
}

func (m Model) currentRow() (rowRef, bool) {
	rows := m.visibleRows()
	if len(rows) == 0 || m.cursor < 0 || m.cursor >= len(rows) {
		return rowRef{}, false
	}
	return rows[m.cursor], true
}

// currentThread returns the thread owning the focused row.
func (m Model) currentThread() (domain.Thread, bool) {
	row, ok := m.currentRow()
	if !ok {
		return domain.Thread{}, false
	}
	return m.threads[row.threadIdx], true
}

// currentReply returns the focused reply, if the cursor is on one.
func (m Model) currentReply() (domain.Reply, domain.Thread, bool) {
	row, ok := m.currentRow()
	if !ok || row.isThread() {
		return domain.Reply{}, domain.Thread{}, false
	}
	t := m.threads[row.threadIdx]
	visible := m.visibleReplies(t.ID)
	if row.replyIdx >= len(visible) {
		return domain.Reply{}, domain.Thread{}, false
	}
	return visible[row.replyIdx], t, true
}

func (m *Model) clampCursor() {
	rows := m.visibleRows()
	if len(rows) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
