// Package tui implements the terminal user interface using Bubble Tea.
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Escape key.Binding
	Tab    key.Binding

	// Control
	CtrlC  key.Binding
	Logout key.Binding

	// Actions
	Retry   key.Binding
	Approve key.Binding
	Reject  key.Binding
	Help    key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys(KeyUp, "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys(KeyDown, "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys(KeyEnter),
		key.WithHelp("enter", "select"),
	),
	Escape: key.NewBinding(
		key.WithKeys(KeyEsc),
		key.WithHelp("esc", "home"),
	),
	Tab: key.NewBinding(
		key.WithKeys(KeyTab),
		key.WithHelp("tab", "next screen"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys(KeyCtrlC),
		key.WithHelp("ctrl+c", "exit"),
	),
	Logout: key.NewBinding(
		key.WithKeys(KeyCtrlL),
		key.WithHelp("ctrl+l", "log out"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Approve: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "approve"),
	),
	Reject: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "reject"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}
