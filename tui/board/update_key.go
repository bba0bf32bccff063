package board

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"threadline/app"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	// An active edit session owns the keyboard.
	if m.edit != nil {
		return m.handleEditKey(msg)
	}

	// So does a pending delete confirmation.
	if m.confirmID != "" {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.notice = ""
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.notice = ""
		if m.cursor < len(m.visibleRows())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.seq++
		return m, m.fetchThreads(m.seq)

	case key.Matches(msg, m.keys.Sort):
		return m.cycleSort()

	case key.Matches(msg, m.keys.PrevPage):
		return m.gotoPage(m.page - 1)

	case key.Matches(msg, m.keys.NextPage):
		return m.gotoPage(m.page + 1)

	case key.Matches(msg, m.keys.Toggle):
		return m.toggleReplies()

	case key.Matches(msg, m.keys.ShowAll):
		return m.showAllReplies()

	case key.Matches(msg, m.keys.ReplyEditor):
		return m.requestCompose(false)

	case key.Matches(msg, m.keys.ReplyInline):
		return m.requestCompose(true)

	case key.Matches(msg, m.keys.Edit):
		return m.requestEdit()

	case key.Matches(msg, m.keys.Delete):
		return m.requestDelete()
	}

	return m, nil
}

// cycleSort steps through the four sort combinations. Every change resets to
// page 1, persists the preference, and refetches.
func (m Model) cycleSort() (Model, tea.Cmd) {
	switch m.sortToken() {
	case app.SortCreated + "_" + app.OrderDesc:
		m.sortField, m.sortOrder = app.SortCreated, app.OrderAsc
	case app.SortCreated + "_" + app.OrderAsc:
		m.sortField, m.sortOrder = app.SortUpdated, app.OrderDesc
	case app.SortUpdated + "_" + app.OrderDesc:
		m.sortField, m.sortOrder = app.SortUpdated, app.OrderAsc
	default:
		m.sortField, m.sortOrder = app.SortCreated, app.OrderDesc
	}
	m.page = 1
	m.loading = true
	m.seq++
	return m, tea.Batch(m.fetchThreads(m.seq), m.persistSortPref())
}

// gotoPage moves to the target page; a move to the current page or outside
// the known range is a no-op.
func (m Model) gotoPage(target int) (Model, tea.Cmd) {
	if target == m.page || target < 1 || target > m.totalPages {
		return m, nil
	}
	m.page = target
	m.loading = true
	m.seq++
	return m, m.fetchThreads(m.seq)
}

// toggleReplies is the count-button click: it opens a collapsed thread and
// collapses an expanded one, refreshing the badge on the way down.
func (m Model) toggleReplies() (Model, tea.Cmd) {
	t, ok := m.currentThread()
	if !ok {
		return m, nil
	}
	tr := m.repliesFor(t.ID)

	switch tr.status {
	case replyCollapsed:
		tr.status = replyLoading
		tr.seq++
		return m, m.fetchReplies(t.ID, tr.seq, false)

	case replyLoading:
		return m, nil

	default:
		// Collapse immediately; the fresh count fetch runs behind it and a
		// failure falls back to the last known badge.
		tr.status = replyCollapsed
		tr.replies = nil
		tr.showAllUsed = false
		tr.seq++
		m.clampCursor()
		return m, m.refreshCount(t.ID)
	}
}

// showAllReplies upgrades a partial expansion to the full set with a fresh
// fetch. The affordance is consumed immediately so it cannot double-fetch.
func (m Model) showAllReplies() (Model, tea.Cmd) {
	t, ok := m.currentThread()
	if !ok {
		return m, nil
	}
	tr := m.repliesFor(t.ID)
	if tr.status != replyPartial || tr.showAllUsed {
		return m, nil
	}
	tr.showAllUsed = true
	tr.seq++
	return m, m.fetchReplies(t.ID, tr.seq, true)
}

func (m Model) requestCompose(inline bool) (Model, tea.Cmd) {
	t, ok := m.currentThread()
	if !ok {
		return m, nil
	}
	threadID, title := t.ID, t.Title
	return m, func() tea.Msg {
		return ComposeRequestMsg{ThreadID: threadID, Title: title, UseInline: inline}
	}
}

// requestEdit gates entry to the inline editor behind an owner check and a
// session re-validation.
func (m Model) requestEdit() (Model, tea.Cmd) {
	r, t, ok := m.currentReply()
	if !ok || !r.OwnedBy(m.currentUserID) || m.inflight[r.ID] {
		return m, nil
	}
	if m.edit != nil {
		return m, nil
	}
	return m, m.gateEdit(r.ID, t.ID)
}

// requestDelete gates the confirmation prompt behind an owner check and a
// session re-validation. Threads and replies go through the same path.
func (m Model) requestDelete() (Model, tea.Cmd) {
	row, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	if row.isThread() {
		t := m.threads[row.threadIdx]
		if !t.OwnedBy(m.currentUserID) || m.inflight[t.ID] {
			return m, nil
		}
		return m, m.gateDelete(t.ID, "", false)
	}
	r, t, ok := m.currentReply()
	if !ok || !r.OwnedBy(m.currentUserID) || m.inflight[r.ID] {
		return m, nil
	}
	return m, m.gateDelete(r.ID, t.ID, true)
}
