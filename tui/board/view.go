package board

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"threadline/tui/common"
)

// View renders the board as a string.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("threadline")
	sortBadge := common.SortBadgeStyle.Render("[" + m.sortLabel() + "]")
	b.WriteString(title + " " + sortBadge + "\n\n")

	switch {
	case m.loading && len(m.threads) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading threads...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case len(m.threads) == 0:
		b.WriteString("  No threads yet. Be the first to start one!\n")
	default:
		m.renderThreadList(&b)
	}

	b.WriteString("\n" + m.renderPagination() + "\n")

	if m.notice != "" {
		b.WriteString(common.StatusBarStyle.Render("  " + m.notice))
		b.WriteString("\n")
	}
	b.WriteString(common.StatusBarStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderThreadList(b *strings.Builder) {
	now := time.Now()
	for i, t := range m.threads {
		row := rowRef{threadIdx: i, replyIdx: -1}
		b.WriteString(m.renderThread(t, m.isSelected(row), now))
		b.WriteString("\n")
		b.WriteString(m.renderReplySection(t, i, now))
	}
}

func (m Model) isSelected(want rowRef) bool {
	row, ok := m.currentRow()
	return ok && row == want
}

// renderPagination enumerates every page: a prev control iff there is a
// previous page, each page number with the current one emphasized, and a
// next control iff there is a following page. Linear, not windowed — fine
// for the expected thread volume.
func (m Model) renderPagination() string {
	if m.totalPages <= 1 {
		return ""
	}
	parts := make([]string, 0, m.totalPages+2)
	if m.page > 1 {
		parts = append(parts, common.PageLinkStyle.Render("‹ prev"))
	}
	for p := 1; p <= m.totalPages; p++ {
		label := strconv.Itoa(p)
		if p == m.page {
			parts = append(parts, common.PageCurrentStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, common.PageLinkStyle.Render(label))
		}
	}
	if m.page < m.totalPages {
		parts = append(parts, common.PageLinkStyle.Render("next ›"))
	}
	return "  " + strings.Join(parts, " ")
}

func (m Model) sortLabel() string {
	arrow := "↓"
	if m.sortOrder == "asc" {
		arrow = "↑"
	}
	return m.sortField + " " + arrow
}

func (m Model) helpLine() string {
	if m.edit != nil {
		return "  enter: save • alt+enter: line break • esc: cancel"
	}
	if m.confirmID != "" {
		return "  y: confirm delete • n: keep"
	}
	return "  ↑/↓: move • enter: replies • a: show all • c/C: reply • e: edit • d: delete • s: sort • ←/→: page • r: refresh • q: quit"
}
