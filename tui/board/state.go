package board

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"threadline/app"
	"threadline/domain"
	"threadline/tui/common"
)

// recentReplyCount is how many most-recent replies a partially expanded
// thread shows before the user asks for all of them.
const recentReplyCount = 2

// --- Messages ---

// ThreadsLoadedMsg is sent when a thread-list fetch completes successfully.
type ThreadsLoadedMsg struct {
	Page app.ThreadPage
	Seq  int
}

// ThreadsErrorMsg is sent when a thread-list fetch fails.
type ThreadsErrorMsg struct {
	Err error
	Seq int
}

// RepliesLoadedMsg is sent when a reply fetch for one thread completes.
type RepliesLoadedMsg struct {
	ThreadID string
	Set      app.ReplySet
	Seq      int

	// ForceFull opens the thread fully expanded regardless of count,
	// used after a reply is created or deleted and after "show all".
	ForceFull bool
}

// RepliesErrorMsg is sent when a reply fetch for one thread fails.
type RepliesErrorMsg struct {
	ThreadID string
	Err      error
	Seq      int
}

// CountRefreshedMsg carries the fresh reply count fetched while collapsing.
// A failed refresh keeps the last known count; the collapse never blocks.
type CountRefreshedMsg struct {
	ThreadID string
	Count    int
	Err      error
}

// EditGateMsg reports the session re-validation that gates entry to edit mode.
type EditGateMsg struct {
	ReplyID  string
	ThreadID string
	Err      error
}

// EditSavedMsg reports the outcome of an edit submission.
type EditSavedMsg struct {
	ReplyID   string
	ThreadID  string
	Raw       string // The text the user submitted, newline-preserving.
	Sanitized string // Server-sanitized echo, break tags re-expanded.
	Err       error
}

// DeleteGateMsg reports the session re-validation that gates the delete prompt.
type DeleteGateMsg struct {
	ID       string
	ThreadID string // Parent thread when the target is a reply.
	IsReply  bool
	Err      error
}

// DeleteResultMsg reports the outcome of a delete request.
type DeleteResultMsg struct {
	ID       string
	ThreadID string
	IsReply  bool
	Err      error
}

// ReplyCreatedMsg reports the outcome of a reply submission routed through
// the root model's composer flow.
type ReplyCreatedMsg struct {
	ThreadID string
	Reply    domain.Reply
	Err      error
}

// ComposeRequestMsg asks the root model to open the reply composer.
type ComposeRequestMsg struct {
	ThreadID  string
	Title     string
	UseInline bool
}

// SessionExpiredMsg tells the root model the session is gone. Once emitted,
// no continuation of the interrupted operation runs.
type SessionExpiredMsg struct{}

// PrefsSavedMsg reports persistence of the sort preference. Failures are
// shown but never interrupt the flow.
type PrefsSavedMsg struct {
	Err error
}

// --- Per-thread reply visibility ---

type replyViewStatus int

const (
	replyCollapsed replyViewStatus = iota
	replyLoading
	replyPartial
	replyFull
)

// threadReplies tracks the open/closed state of one thread's reply subtree.
type threadReplies struct {
	status      replyViewStatus
	replies     []domain.Reply // Full loaded set, server order (oldest first).
	showAllUsed bool           // The "show all" affordance fires at most once.
	seq         int            // Guards stale async reply responses.
}

// --- Inline edit session ---

// editSession is the one active inline edit. At most one textarea exists at
// a time; re-entry on the same reply is a no-op.
type editSession struct {
	replyID  string
	threadID string
	textarea textarea.Model
	original string // Pre-edit raw text, restored on cancel.
	saving   bool
	err      string
}

// --- Model state groups ---

type modelServices struct {
	board   app.BoardService
	post    app.PostService
	session app.SessionService
}

type listState struct {
	threads       []domain.Thread
	page          int
	totalPages    int
	sortField     string
	sortOrder     string
	currentUserID string
	loading       bool
	err           error
	seq           int
	statePath     string // View-state file for the persisted sort token.
}

type replyState struct {
	byThread map[string]*threadReplies
}

type deleteState struct {
	confirmID       string // Post awaiting y/n confirmation; empty when none.
	confirmThreadID string
	confirmIsReply  bool
	inflight        map[string]bool // Posts with a delete round trip running.
}

type uiState struct {
	keys    common.KeyMap
	spinner spinner.Model
	cursor  int // Index into visibleRows().
	width   int
	height  int
	notice  string // Transient inline status (errors, count updates).
}

// Model holds the state for the board view.
type Model struct {
	modelServices
	listState
	replyState
	deleteState
	uiState
	edit *editSession
}

// New creates a board model with injected dependencies. sortToken is the
// persisted preference (e.g. "updated_at_desc"); empty falls back to newest
// threads first.
func New(board app.BoardService, post app.PostService, session app.SessionService, sortToken, statePath string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A97F"))

	field, order := parseSortToken(sortToken)

	return Model{
		modelServices: modelServices{
			board:   board,
			post:    post,
			session: session,
		},
		listState: listState{
			page:       1,
			totalPages: 1,
			sortField:  field,
			sortOrder:  order,
			loading:    true,
			statePath:  statePath,
		},
		replyState: replyState{
			byThread: make(map[string]*threadReplies),
		},
		deleteState: deleteState{
			inflight: make(map[string]bool),
		},
		uiState: uiState{
			keys:    common.DefaultKeyMap(),
			spinner: s,
		},
	}
}

// Init starts the initial thread-list fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchThreads(m.seq),
		m.spinner.Tick,
	)
}

// Update handles messages for the board view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Editing reports whether an inline edit session is active.
func (m Model) Editing() bool {
	return m.edit != nil
}

// Capturing reports whether the board is consuming all key input: an active
// edit session or a pending delete confirmation.
func (m Model) Capturing() bool {
	return m.edit != nil || m.confirmID != ""
}

// CurrentUserID returns the server-confirmed identity, empty until the first
// list fetch resolves it.
func (m Model) CurrentUserID() string {
	return m.currentUserID
}

// sortToken joins field and order into the persisted single-token form.
func (m Model) sortToken() string {
	return m.sortField + "_" + m.sortOrder
}

// parseSortToken splits a persisted token like "updated_at_desc" into field
// and order, defaulting to newest-created first for anything unrecognized.
func parseSortToken(token string) (field, order string) {
	field, order = app.SortCreated, app.OrderDesc
	token = strings.TrimSpace(token)
	for _, f := range []string{app.SortCreated, app.SortUpdated} {
		for _, o := range []string{app.OrderAsc, app.OrderDesc} {
			if token == f+"_"+o {
				return f, o
			}
		}
	}
	return field, order
}

func (m *Model) repliesFor(threadID string) *threadReplies {
	tr, ok := m.byThread[threadID]
	if !ok {
		tr = &threadReplies{}
		m.byThread[threadID] = tr
	}
	return tr
}

func (m Model) threadByID(id string) (domain.Thread, int, bool) {
	for i, t := range m.threads {
		if t.ID == id {
			return t, i, true
		}
	}
	return domain.Thread{}, 0, false
}
