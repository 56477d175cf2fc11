package cli

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	ToggleView key.Binding
	Search     key.Binding
	Filter     key.Binding
	Toggle     key.Binding
	Add        key.Binding
	Delete     key.Binding
	Status     key.Binding
	Explain    key.Binding
	Quiz       key.Binding
	Code       key.Binding
	Task       key.Binding
	Reveal     key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	ToggleView: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "table/board")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Delete:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	Status:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
	Explain:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "explain")),
	Quiz:       key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "quiz")),
	Code:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "code")),
	Task:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "explain task")),
	Reveal:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reveal")),
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}
