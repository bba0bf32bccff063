package board

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"threadline/infra/config"
)

func (m Model) fetchThreads(seq int) tea.Cmd {
	board := m.board
	sortField, sortOrder, page := m.sortField, m.sortOrder, m.page
	return func() tea.Msg {
		result, err := board.ListThreads(context.Background(), sortField, sortOrder, page)
		if err != nil {
			return ThreadsErrorMsg{Err: err, Seq: seq}
		}
		return ThreadsLoadedMsg{Page: result, Seq: seq}
	}
}

func (m Model) fetchReplies(threadID string, seq int, forceFull bool) tea.Cmd {
	board := m.board
	return func() tea.Msg {
		set, err := board.ListReplies(context.Background(), threadID)
		if err != nil {
			return RepliesErrorMsg{ThreadID: threadID, Err: err, Seq: seq}
		}
		return RepliesLoadedMsg{ThreadID: threadID, Set: set, Seq: seq, ForceFull: forceFull}
	}
}

// refreshCount re-reads a thread's reply count while it collapses, so the
// badge reflects deletions that happened elsewhere while it was open.
func (m Model) refreshCount(threadID string) tea.Cmd {
	board := m.board
	return func() tea.Msg {
		count, err := board.CountReplies(context.Background(), threadID)
		return CountRefreshedMsg{ThreadID: threadID, Count: count, Err: err}
	}
}

func (m Model) gateEdit(replyID, threadID string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return EditGateMsg{ReplyID: replyID, ThreadID: threadID, Err: session.Check(context.Background())}
	}
}

func (m Model) submitEdit(replyID, threadID, body string) tea.Cmd {
	post := m.post
	return func() tea.Msg {
		sanitized, err := post.EditReply(context.Background(), replyID, body)
		return EditSavedMsg{
			ReplyID:   replyID,
			ThreadID:  threadID,
			Raw:       body,
			Sanitized: sanitized,
			Err:       err,
		}
	}
}

func (m Model) gateDelete(id, threadID string, isReply bool) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return DeleteGateMsg{ID: id, ThreadID: threadID, IsReply: isReply, Err: session.Check(context.Background())}
	}
}

func (m Model) submitDelete(id, threadID string, isReply bool) tea.Cmd {
	post := m.post
	return func() tea.Msg {
		err := post.DeletePost(context.Background(), id)
		return DeleteResultMsg{ID: id, ThreadID: threadID, IsReply: isReply, Err: err}
	}
}

// persistSortPref writes the sort token to the view-state file.
func (m Model) persistSortPref() tea.Cmd {
	path := m.statePath
	token := m.sortToken()
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return PrefsSavedMsg{Err: config.SaveViewState(path, config.ViewState{Sort: token})}
	}
}

func sessionExpired() tea.Cmd {
	return func() tea.Msg { return SessionExpiredMsg{} }
}
