package board

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch msg.(type) {
	case ThreadsLoadedMsg, ThreadsErrorMsg, PrefsSavedMsg:
		return m.handleListMsg(msg)
	case RepliesLoadedMsg, RepliesErrorMsg, CountRefreshedMsg, ReplyCreatedMsg:
		return m.handleRepliesMsg(msg)
	case EditGateMsg, EditSavedMsg:
		return m.handleEditMsg(msg)
	case DeleteGateMsg, DeleteResultMsg:
		return m.handleDeleteMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg.(tea.KeyMsg))
	}

	return m, nil
}
