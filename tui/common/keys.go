package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	Refresh     key.Binding
	Sort        key.Binding // s — cycle sort field/direction
	PrevPage    key.Binding
	NextPage    key.Binding
	Toggle      key.Binding // enter — expand/collapse a thread's replies
	ShowAll     key.Binding // a — load every reply of the focused thread
	ReplyEditor key.Binding // c — reply via $EDITOR
	ReplyInline key.Binding // C — reply via inline textarea
	Edit        key.Binding // e — edit own reply inline
	Delete      key.Binding // d — delete own post
	Up          key.Binding
	Down        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replies"),
		),
		ShowAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "show all"),
		),
		ReplyEditor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "reply ($EDITOR)"),
		),
		ReplyInline: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "reply (inline)"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}
