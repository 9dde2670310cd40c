package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atim-dev/atim/internal/tui"
)

// LoadIssuesCmd fetches the issues list.
func LoadIssuesCmd(deps tui.Deps) tea.Cmd {
	return func() tea.Msg {
		issues, err := deps.API.Issues(context.Background())
		return tui.IssuesLoadedMsg{Issues: issues, Err: err}
	}
}

// LoadPullRequestsCmd fetches the tracked pull requests.
func LoadPullRequestsCmd(deps tui.Deps) tea.Cmd {
	return func() tea.Msg {
		prs, err := deps.API.PullRequests(context.Background())
		return tui.PullRequestsLoadedMsg{PullRequests: prs, Err: err}
	}
}

// LoadKanbanCmd fetches the board items. Empty-result fallback is a view
// concern, so the command delivers exactly what the backend returned.
func LoadKanbanCmd(deps tui.Deps) tea.Cmd {
	return func() tea.Msg {
		items, err := deps.API.KanbanItems(context.Background())
		return tui.KanbanLoadedMsg{Items: items, Err: err}
	}
}
