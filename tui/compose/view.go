package compose

import (
	"strings"

	"threadline/tui/common"
)

// View renders the composer based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		b.WriteString(common.AppTitleStyle.Render("threadline"))
		b.WriteString("  Reply to: " + common.TitleStyle.Render(m.threadTitle) + "\n\n")
		b.WriteString(m.textarea.View())
		b.WriteString("\n\n")
		b.WriteString(common.StatusBarStyle.Render("  ctrl+d: submit • esc: cancel"))
		return b.String()
	}

	return ""
}
