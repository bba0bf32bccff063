package board

import (
	"fmt"
	"strings"
	"time"

	"threadline/domain"
	"threadline/tui/common"
)

const replyIndent = "    "

func (m Model) renderThread(t domain.Thread, selected bool, now time.Time) string {
	var b strings.Builder

	meta := common.AuthorStyle.Render(t.Author) + " " +
		common.TimestampStyle.Render(common.RelativeTime(t.CreatedAt, now))
	if t.WasEdited() {
		meta += " " + common.TimestampStyle.Render("(edited)")
	}
	if t.OwnedBy(m.currentUserID) {
		meta += common.OwnBadgeStyle.Render("(you)")
	}

	b.WriteString(common.TitleStyle.Render(truncateLine(t.Title, contentWidth(m.width))))
	b.WriteString("\n" + meta + "\n")
	b.WriteString(common.ContentStyle.Render(truncateToTwoLines(t.Body, contentWidth(m.width))))
	b.WriteString("\n" + m.renderThreadBadge(t))

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(boxWidth(m.width)).Render(b.String())
}

// renderThreadBadge is the count button plus the per-thread transient labels
// (loading spinner, delete progress, confirmation prompt).
func (m Model) renderThreadBadge(t domain.Thread) string {
	if m.inflight[t.ID] {
		return common.TimestampStyle.Render("deleting…")
	}
	if m.confirmID == t.ID {
		return common.ConfirmStyle.Render("Delete this thread and its replies? (y/n)")
	}

	badge := common.CountBadgeStyle.Render("▸ " + common.CountLabel(t.ReplyCount))
	if tr, ok := m.byThread[t.ID]; ok {
		switch tr.status {
		case replyLoading:
			return fmt.Sprintf("%s %s", m.spinner.View(), common.TimestampStyle.Render("loading replies…"))
		case replyPartial, replyFull:
			badge = common.CountBadgeStyle.Render("▾ " + common.CountLabel(t.ReplyCount))
		}
	}
	return badge
}

// renderReplySection renders the visible reply subtree under a thread.
func (m Model) renderReplySection(t domain.Thread, threadIdx int, now time.Time) string {
	tr, ok := m.byThread[t.ID]
	if !ok || (tr.status != replyPartial && tr.status != replyFull) {
		return ""
	}

	var b strings.Builder
	visible := m.visibleReplies(t.ID)

	if tr.status == replyFull && len(visible) == 0 {
		b.WriteString(replyIndent + common.TimestampStyle.Render("No replies yet.") + "\n")
		return b.String()
	}

	if tr.status == replyPartial {
		header := fmt.Sprintf("showing last %d of %s", len(visible), common.CountLabel(t.ReplyCount))
		b.WriteString(replyIndent + common.TimestampStyle.Render(header) + "\n")
	}

	for j, r := range visible {
		row := rowRef{threadIdx: threadIdx, replyIdx: j}
		b.WriteString(indentBlock(m.renderReply(r, m.isSelected(row), now), replyIndent))
		b.WriteString("\n")
	}

	if tr.status == replyPartial && !tr.showAllUsed {
		b.WriteString(replyIndent + common.CountBadgeStyle.Render("a: show all replies") + "\n")
	}

	return b.String()
}

func (m Model) renderReply(r domain.Reply, selected bool, now time.Time) string {
	var b strings.Builder

	meta := common.AuthorStyle.Render(r.Author) + " " +
		common.TimestampStyle.Render(common.RelativeTime(r.CreatedAt, now))
	if r.Edited {
		meta += " " + common.TimestampStyle.Render("(edited)")
	}
	if r.OwnedBy(m.currentUserID) {
		meta += common.OwnBadgeStyle.Render("(you)")
	}
	b.WriteString(meta + "\n")

	switch {
	case m.edit != nil && m.edit.replyID == r.ID:
		b.WriteString(m.renderEditControl())
	case m.inflight[r.ID]:
		b.WriteString(common.ContentStyle.Render(r.DisplayBody))
		b.WriteString("\n" + common.TimestampStyle.Render("deleting…"))
	case m.confirmID == r.ID:
		b.WriteString(common.ContentStyle.Render(r.DisplayBody))
		b.WriteString("\n" + common.ConfirmStyle.Render("Delete this reply? (y/n)"))
	default:
		b.WriteString(common.ContentStyle.Render(r.DisplayBody))
	}

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(boxWidth(m.width) - len(replyIndent)).Render(b.String())
}

func (m Model) renderEditControl() string {
	var b strings.Builder
	b.WriteString(m.edit.textarea.View())
	if m.edit.saving {
		b.WriteString("\n" + m.spinner.View() + common.TimestampStyle.Render(" saving…"))
	}
	if m.edit.err != "" {
		b.WriteString("\n" + common.ErrorStyle.Render(m.edit.err))
	}
	return b.String()
}
