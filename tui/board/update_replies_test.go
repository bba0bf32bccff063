package board

import (
	"errors"
	"testing"

	"threadline/app"
	"threadline/domain"
)

func TestToggle_SmallSetOpensFullyExpanded(t *testing.T) {
	m, _, _, _ := newTestModel()
	m = loadThreads(m, []domain.Thread{makeThread("1", 2)}, "3")

	m, _ = m.toggleReplies()
	if m.byThread["1"].status != replyLoading {
		t.Fatalf("toggle must enter the loading state first")
	}

	set := app.ReplySet{Count: 2, Replies: []domain.Reply{
		makeReply("r1", "1", "4"),
		makeReply("r2", "1", "5"),
	}}
	m, _ = m.Update(RepliesLoadedMsg{ThreadID: "1", Set: set, Seq: m.byThread["1"].seq})

	tr := m.byThread["1"]
	if tr.status != replyFull {
		t.Fatalf("count at or below %d must open fully expanded, got status %d", recentReplyCount, tr.status)
	}
	if !tr.showAllUsed {
		t.Fatalf("full expansion must consume the show-all affordance")
	}
	if got := m.visibleReplies("1"); len(got) != 2 {
		t.Fatalf("expected both replies visible, got %d", len(got))
	}
}

func TestToggle_LargeSetShowsLastTwoInServerOrder(t *testing.T) {
	m, _, _, _ := newTestModel()
	m = loadThreads(m, []domain.Thread{makeThread("1", 3)}, "3")

	set := app.ReplySet{Count: 3, Replies: []domain.Reply{
		makeReply("r1", "1", "4"),
		makeReply("r2", "1", "5"),
		makeReply("r3", "1", "6"),
	}}
	m, _ = openThread(m, "1", set)

	tr := m.byThread["1"]
	if tr.status != replyPartial {
		t.Fatalf("count above %d must open partially, got status %d", recentReplyCount, tr.status)
	}
	if tr.showAllUsed {
		t.Fatalf("partial expansion must keep the show-all affordance available")
	}

	visible := m.visibleReplies("1")
	if len(visible) != 2 || visible[0].ID != "r2" || visible[1].ID != "r3" {
		t.Fatalf("expected the last two replies in server order, got %#v", visible)
	}
}

func TestShowAll_FetchesFullSetAndFiresOnce(t *testing.T) {
	m, b, _, _ := newTestModel()
	b.replySet = app.ReplySet{Count: 3, Replies: []domain.Reply{
		makeReply("r1", "1", "4"),
		makeReply("r2", "1", "5"),
		makeReply("r3", "1", "6"),
	}}
	m = loadThreads(m, []domain.Thread{makeThread("1", 3)}, "3")
	m, _ = openThread(m, "1", b.replySet)

	m, cmd := m.Update(keyRune('a'))
	if cmd == nil {
		t.Fatalf("show-all must start a fetch")
	}
	if !m.byThread["1"].showAllUsed {
		t.Fatalf("the affordance must be consumed before the fetch resolves")
	}

	for _, msg := range runCmd(cmd) {
		m, _ = m.Update(msg)
	}
	tr := m.byThread["1"]
	if tr.status != replyFull {
		t.Fatalf("show-all must end fully expanded, got status %d", tr.status)
	}
	if got := m.visibleReplies("1"); len(got) != 3 {
		t.Fatalf("expected all replies visible, got %d", len(got))
	}

	// One-way: once fully expanded, the key does nothing.
	if _, cmd := m.Update(keyRune('a')); cmd != nil {
		t.Fatalf("show-all must not fire again after full expansion")
	}
}

func TestCollapse_RefreshesCountAndReexpandsIdentically(t *testing.T) {
	m, b, _, _ := newTestModel()
	b.count = 7
	m = loadThreads(m, []domain.Thread{makeThread("1", 3)}, "3")

	set := app.ReplySet{Count: 3, Replies: []domain.Reply{
		makeReply("r1", "1", "4"),
		makeReply("r2", "1", "5"),
		makeReply("r3", "1", "6"),
	}}
	m, _ = openThread(m, "1", set)
	firstVisible := m.visibleReplies("1")

	// Collapse is immediate; the count refresh runs behind it.
	m, cmd := m.toggleReplies()
	tr := m.byThread["1"]
	if tr.status != replyCollapsed || tr.replies != nil {
		t.Fatalf("collapse must drop the loaded set immediately: %#v", tr)
	}
	if tr.showAllUsed {
		t.Fatalf("collapse must re-arm the show-all affordance")
	}
	for _, msg := range runCmd(cmd) {
		m, _ = m.Update(msg)
	}
	if m.threads[0].ReplyCount != 7 {
		t.Fatalf("collapse must adopt the refreshed count, got %d", m.threads[0].ReplyCount)
	}

	// Re-expanding with the same server set reproduces the same view.
	m, _ = openThread(m, "1", set)
	second := m.visibleReplies("1")
	if len(second) != len(firstVisible) || second[0].ID != firstVisible[0].ID {
		t.Fatalf("re-expansion must reproduce the previous view: %#v vs %#v", second, firstVisible)
	}
}

func TestCountRefresh_FailureKeepsLastKnownCount(t *testing.T) {
	m, _, _, _ := newTestModel()
	m = loadThreads(m, []domain.Thread{makeThread("1", 4)}, "3")

	m, _ = m.Update(CountRefreshedMsg{ThreadID: "1", Err: errors.New("boom")})
	if m.threads[0].ReplyCount != 4 {
		t.Fatalf("a failed refresh must keep the last count, got %d", m.threads[0].ReplyCount)
	}
	if m.notice != "" {
		t.Fatalf("a failed refresh must stay silent, got %q", m.notice)
	}
}

func TestRepliesLoaded_StaleResponsesDiscarded(t *testing.T) {
	m, _, _, _ := newTestModel()
	m = loadThreads(m, []domain.Thread{makeThread("1", 3)}, "3")

	m, _ = m.toggleReplies()
	stale := m.byThread["1"].seq - 1
	m, _ = m.Update(RepliesLoadedMsg{
		ThreadID: "1",
		Set:      app.ReplySet{Count: 1, Replies: []domain.Reply{makeReply("r1", "1", "4")}},
		Seq:      stale,
	})
	if m.byThread["1"].status != replyLoading {
		t.Fatalf("a superseded response must not change state")
	}
}

func TestRepliesLoaded_CollapsedThreadDropsLateResponse(t *testing.T) {
	m, _, _, _ := newTestModel()
	m = loadThreads(m, []domain.Thread{makeThread("1", 3)}, "3")

	tr := m.repliesFor("1")
	m, _ = m.Update(RepliesLoadedMsg{
		ThreadID: "1",
		Set:      app.ReplySet{Count: 3, Replies: []domain.Reply{makeReply("r1", "1", "4")}},
		Seq:      tr.seq,
	})
	if m.byThread["1"].status != replyCollapsed {
		t.Fatalf("a collapsed thread must ignore non-forced responses")
	}
}

func TestRepliesError_RollsBackToCollapsed(t *testing.T) {
	m, _, _, _ := newTestModel()
	m = loadThreads(m, []domain.Thread{makeThread("1", 3)}, "3")

	m, _ = m.toggleReplies()
	m, _ = m.Update(RepliesErrorMsg{ThreadID: "1", Err: errors.New("timeout"), Seq: m.byThread["1"].seq})

	if m.byThread["1"].status != replyCollapsed {
		t.Fatalf("a failed expansion must roll back to collapsed")
	}
	if m.notice == "" {
		t.Fatalf("a failed expansion must surface an error")
	}
}

func TestReplyCreated_BumpsCountAndForcesFullRefetch(t *testing.T) {
	m, b, _, _ := newTestModel()
	b.replySet = app.ReplySet{Count: 3, Replies: []domain.Reply{
		makeReply("r1", "1", "4"),
		makeReply("r2", "1", "5"),
		makeReply("r3", "1", "3"),
	}}
	m = loadThreads(m, []domain.Thread{makeThread("1", 2)}, "3")

	m, cmd := m.Update(ReplyCreatedMsg{ThreadID: "1", Reply: makeReply("r3", "1", "3")})
	if m.threads[0].ReplyCount != 3 {
		t.Fatalf("creation must bump the badge immediately, got %d", m.threads[0].ReplyCount)
	}
	if m.byThread["1"].status != replyLoading {
		t.Fatalf("a collapsed thread must show loading while the forced fetch runs")
	}
	for _, msg := range runCmd(cmd) {
		m, _ = m.Update(msg)
	}
	if m.byThread["1"].status != replyFull {
		t.Fatalf("creation must end fully expanded, got status %d", m.byThread["1"].status)
	}
	if got := m.visibleReplies("1"); len(got) != 3 {
		t.Fatalf("expected the refetched full set, got %d replies", len(got))
	}
}
