package board

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"threadline/app"
	"threadline/domain"
)

// stubBoard records calls and returns canned pages/sets.
type stubBoard struct {
	mu        sync.Mutex
	listCalls []listCall
	page      app.ThreadPage
	replySet  app.ReplySet
	count     int
	err       error
}

type listCall struct {
	sort  string
	order string
	page  int
}

func (s *stubBoard) ListThreads(_ context.Context, sort, order string, page int) (app.ThreadPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls = append(s.listCalls, listCall{sort: sort, order: order, page: page})
	return s.page, s.err
}

func (s *stubBoard) ListReplies(context.Context, string) (app.ReplySet, error) {
	return s.replySet, s.err
}

func (s *stubBoard) CountReplies(context.Context, string) (int, error) {
	return s.count, s.err
}

type stubPost struct {
	reply     domain.Reply
	sanitized string
	err       error
	edits     []string
	deleted   []string
}

func (s *stubPost) CreateReply(_ context.Context, threadID, body string) (domain.Reply, error) {
	return s.reply, s.err
}

func (s *stubPost) EditReply(_ context.Context, replyID, body string) (string, error) {
	s.edits = append(s.edits, replyID)
	return s.sanitized, s.err
}

func (s *stubPost) DeletePost(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

type stubSession struct {
	err error
}

func (s *stubSession) Check(context.Context) error { return s.err }

func newTestModel() (Model, *stubBoard, *stubPost, *stubSession) {
	b := &stubBoard{}
	p := &stubPost{}
	sess := &stubSession{}
	m := New(b, p, sess, "", "")
	return m, b, p, sess
}

func makeThread(id string, replyCount int) domain.Thread {
	return domain.Thread{
		ID:         id,
		AuthorID:   "author-" + id,
		Author:     "Author " + id,
		Title:      "Thread " + id,
		Body:       "body " + id,
		CreatedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		ReplyCount: replyCount,
	}
}

func makeReply(id, threadID, authorID string) domain.Reply {
	return domain.Reply{
		ID:          id,
		ThreadID:    threadID,
		AuthorID:    authorID,
		Author:      "Replier " + id,
		RawBody:     "reply " + id + "\nsecond line",
		DisplayBody: "reply " + id + "\nsecond line",
		CreatedAt:   time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC),
	}
}

// loadThreads drives the model through a completed list fetch.
func loadThreads(m Model, threads []domain.Thread, userID string) Model {
	m, _ = m.Update(ThreadsLoadedMsg{
		Page: app.ThreadPage{
			Threads:       threads,
			TotalPages:    1,
			CurrentPage:   1,
			CurrentUserID: userID,
		},
		Seq: m.seq,
	})
	return m
}

// openThread expands a thread by toggling it and delivering the reply set.
func openThread(m Model, threadID string, set app.ReplySet) (Model, tea.Cmd) {
	m, _ = m.toggleReplies()
	tr := m.byThread[threadID]
	return m.Update(RepliesLoadedMsg{ThreadID: threadID, Set: set, Seq: tr.seq})
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func keyAltEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter, Alt: true} }

func keyEsc() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEsc} }

// runCmd executes a command and flattens batches into the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
