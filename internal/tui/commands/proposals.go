package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/log"
	"github.com/atim-dev/atim/internal/tui"
)

// LoadProposalsCmd fetches proposals and repository stats. Stats are
// best-effort; a stats failure does not fail the load.
func LoadProposalsCmd(deps tui.Deps) tea.Cmd {
	return func() tea.Msg {
		proposals, err := deps.GitHub.Proposals(context.Background())
		if err != nil {
			return tui.ProposalsLoadedMsg{Err: err}
		}
		stats, statsErr := deps.GitHub.Stats(context.Background())
		if statsErr != nil {
			stats = nil
		}
		return tui.ProposalsLoadedMsg{Proposals: proposals, Stats: stats}
	}
}

// ApproveProposalCmd publishes a proposal as a GitHub issue.
func ApproveProposalCmd(deps tui.Deps, id string) tea.Cmd {
	return func() tea.Msg {
		issueNumber, err := deps.GitHub.ApproveProposal(context.Background(), id)
		if err == nil && deps.Events != nil {
			_ = deps.Events.Append(log.LogEvent{Event: log.EventProposalAction, Target: id, Reason: "approved"})
		}
		return tui.ProposalActionMsg{
			ID:          id,
			Status:      api.ProposalPublished,
			IssueNumber: issueNumber,
			Err:         err,
		}
	}
}

// RejectProposalCmd marks a proposal rejected.
func RejectProposalCmd(deps tui.Deps, id string) tea.Cmd {
	return func() tea.Msg {
		err := deps.GitHub.RejectProposal(context.Background(), id)
		if err == nil && deps.Events != nil {
			_ = deps.Events.Append(log.LogEvent{Event: log.EventProposalAction, Target: id, Reason: "rejected"})
		}
		return tui.ProposalActionMsg{ID: id, Status: api.ProposalRejected, Err: err}
	}
}
