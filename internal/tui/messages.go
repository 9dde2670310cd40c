// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/auth"
)

// ============================================================================
// Session Messages
// ============================================================================

// SessionChangedMsg carries a fresh session snapshot. The app re-runs the
// route guard whenever one arrives.
type SessionChangedMsg struct {
	Session auth.Snapshot
}

// LoginResultMsg signals a completed login attempt.
type LoginResultMsg struct {
	OK      bool
	Session auth.Snapshot
}

// RegisterResultMsg signals a completed registration attempt.
type RegisterResultMsg struct {
	OK      bool
	Session auth.Snapshot
}

// ============================================================================
// Data Load Messages
// ============================================================================

// IssuesLoadedMsg delivers the issues list or the load failure.
type IssuesLoadedMsg struct {
	Issues []api.Issue
	Err    error
}

// PullRequestsLoadedMsg delivers the pull request list or the load failure.
type PullRequestsLoadedMsg struct {
	PullRequests []api.PullRequest
	Err          error
}

// KanbanLoadedMsg delivers the board items or the load failure.
type KanbanLoadedMsg struct {
	Items []api.KanbanItem
	Err   error
}

// ChatHistoryMsg delivers the initial transcript or the load failure.
type ChatHistoryMsg struct {
	Messages []api.ChatMessage
	Err      error
}

// ChatReplyMsg delivers the assistant's reply to a sent message. The reply is
// always present: when the backend fails, a locally synthesized fallback
// stands in so the transcript never loses a turn.
type ChatReplyMsg struct {
	Reply    api.ChatMessage
	Fallback bool
}

// ProposalsLoadedMsg delivers proposals plus repository stats. Stats are
// best-effort and may be nil even on success.
type ProposalsLoadedMsg struct {
	Proposals []api.IssueProposal
	Stats     *api.RepoStats
	Err       error
}

// ProposalActionMsg signals a completed approve or reject call.
type ProposalActionMsg struct {
	ID          string
	Status      string // resulting status on success
	IssueNumber int    // set when an approval published a GitHub issue
	Err         error
}

// ============================================================================
// Utility Messages
// ============================================================================

// CtrlCResetMsg clears the Ctrl+C confirmation state after the timeout.
type CtrlCResetMsg struct{}
