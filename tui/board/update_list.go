package board

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"threadline/domain"
)

func (m Model) handleListMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ThreadsLoadedMsg:
		// Ignore responses from superseded fetches.
		if msg.Seq != m.seq {
			return m, nil
		}
		m.threads = msg.Page.Threads
		m.totalPages = msg.Page.TotalPages
		if m.totalPages < 1 {
			m.totalPages = 1
		}
		if msg.Page.CurrentPage >= 1 {
			m.page = msg.Page.CurrentPage
		}
		if msg.Page.CurrentUserID != "" {
			m.currentUserID = msg.Page.CurrentUserID
		}
		m.loading = false
		m.err = nil
		// A fresh list invalidates every open reply subtree and any edit in
		// progress; the view returns to the collapsed baseline.
		m.byThread = make(map[string]*threadReplies)
		m.edit = nil
		m.confirmID = ""
		m.cursor = 0
		return m, nil

	case ThreadsErrorMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		if errors.Is(msg.Err, domain.ErrSessionExpired) {
			return m, sessionExpired()
		}
		m.loading = false
		m.err = msg.Err
		return m, nil

	case PrefsSavedMsg:
		if msg.Err != nil {
			m.notice = "Could not save sort preference: " + msg.Err.Error()
		}
		return m, nil
	}

	return m, nil
}
