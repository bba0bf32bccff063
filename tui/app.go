package tui

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"threadline/app"
	"threadline/infra/editor"
	"threadline/tui/board"
	"threadline/tui/common"
	"threadline/tui/compose"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Board     app.BoardService
	Post      app.PostService
	Session   app.SessionService
	Editor    *editor.EnvEditor
	LoginURL  string // Where to send the user when the session expires.
	SortPref  string // Persisted sort token, may be empty.
	StatePath string // View-state file for persisting preferences.
}

type activeView int

const (
	boardView activeView = iota
	composeView
)

// App is the root Bubble Tea model. It routes between sub-views and owns the
// session-expired terminal state: once the session is gone, no in-flight
// operation's continuation runs.
type App struct {
	deps    Deps
	active  activeView
	board   board.Model
	compose compose.Model
	keys    common.KeyMap
	status  string // Transient status message (e.g. "Reply posted!")
	expired bool
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		active: boardView,
		board:  board.New(deps.Board, deps.Post, deps.Session, deps.SortPref, deps.StatePath),
		keys:   common.DefaultKeyMap(),
	}
}

// Init delegates to the board sub-model.
func (a App) Init() tea.Cmd {
	return a.board.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Session expired is terminal: swallow everything except quit.
	if a.expired {
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}

	switch msg := msg.(type) {
	case board.SessionExpiredMsg:
		a.expired = true
		a.status = ""
		return a, openURL(a.deps.LoginURL)

	case tea.KeyMsg:
		if a.active == boardView && key.Matches(msg, a.keys.Quit) && !a.board.Capturing() {
			return a, tea.Quit
		}

	case board.ComposeRequestMsg:
		a.active = composeView
		a.status = ""
		if msg.UseInline {
			a.compose = compose.NewInline(msg.ThreadID, msg.Title)
		} else {
			a.compose = compose.NewEditor(a.deps.Editor, msg.ThreadID, msg.Title)
		}
		return a, a.compose.Init()

	case compose.DoneMsg:
		a.active = boardView
		if msg.Err != nil {
			a.status = "Error: " + msg.Err.Error()
			return a, nil
		}
		if msg.Body == "" {
			a.status = "Cancelled."
			return a, nil
		}
		a.status = "Posting reply..."
		return a, a.createReply(msg.ThreadID, msg.Body)

	case board.ReplyCreatedMsg:
		var cmd tea.Cmd
		a.board, cmd = a.board.Update(msg)
		if msg.Err != nil {
			a.status = "Error: " + msg.Err.Error()
		} else {
			a.status = "Reply posted!"
		}
		return a, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.board, cmd = a.board.Update(msg)
		return a, cmd
	}

	// Delegate to the active sub-model.
	switch a.active {
	case boardView:
		updated, cmd := a.board.Update(msg)
		a.board = updated
		return a, cmd
	case composeView:
		updated, cmd := a.compose.Update(msg)
		a.compose = updated
		return a, cmd
	}

	return a, nil
}

func (a App) createReply(threadID, body string) tea.Cmd {
	post := a.deps.Post
	return func() tea.Msg {
		reply, err := post.CreateReply(context.Background(), threadID, body)
		return board.ReplyCreatedMsg{ThreadID: threadID, Reply: reply, Err: err}
	}
}

// View renders the active sub-model.
func (a App) View() string {
	if a.expired {
		s := common.ErrorStyle.Render("  Session expired.") + "\n\n"
		s += "  Please log in again at " + a.deps.LoginURL + "\n"
		s += common.StatusBarStyle.Render("  q: quit")
		return s
	}

	var s string
	switch a.active {
	case boardView:
		s = a.board.View()
	case composeView:
		s = a.compose.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render("  "+a.status)
	}
	return s
}

// openURL opens the login page in the user's browser, best effort.
func openURL(rawURL string) tea.Cmd {
	if rawURL == "" {
		return nil
	}
	return func() tea.Msg {
		opener := "xdg-open"
		if runtime.GOOS == "darwin" {
			opener = "open"
		}
		_ = exec.Command(opener, rawURL).Start()
		return nil
	}
}
