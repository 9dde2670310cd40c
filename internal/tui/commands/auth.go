// Package commands contains the async operations the TUI triggers. Each
// function returns a tea.Cmd closure; results arrive as typed messages.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atim-dev/atim/internal/tui"
)

// BootstrapCmd resolves the initial session state from any persisted token.
func BootstrapCmd(deps tui.Deps) tea.Cmd {
	return func() tea.Msg {
		snapshot := deps.Sessions.Bootstrap(context.Background())
		return tui.SessionChangedMsg{Session: snapshot}
	}
}

// LoginCmd authenticates with the backend. The session store handles token
// persistence and supersede logic; the command just reports the outcome.
func LoginCmd(deps tui.Deps, email, password string) tea.Cmd {
	return func() tea.Msg {
		ok := deps.Sessions.Login(context.Background(), email, password)
		return tui.LoginResultMsg{OK: ok, Session: deps.Sessions.Snapshot()}
	}
}

// RegisterCmd submits an account request. Success does not authenticate.
func RegisterCmd(deps tui.Deps, email, password string) tea.Cmd {
	return func() tea.Msg {
		ok := deps.Sessions.Register(context.Background(), email, password)
		return tui.RegisterResultMsg{OK: ok, Session: deps.Sessions.Snapshot()}
	}
}

// LogoutCmd clears the session and token.
func LogoutCmd(deps tui.Deps) tea.Cmd {
	return func() tea.Msg {
		deps.Sessions.Logout()
		return tui.SessionChangedMsg{Session: deps.Sessions.Snapshot()}
	}
}
