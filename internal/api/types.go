// Package api implements the HTTP client for the Atim backend and the
// GitHub proposals service. All remote records are decoded here and rendered
// verbatim by the TUI; the client never derives secondary copies.
package api

// User is the authenticated account as reported by the backend.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

// Issue severity values.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Issue status values.
const (
	IssueOpen     = "open"
	IssueFixed    = "fixed"
	IssueRejected = "rejected"
)

// Issue is a code issue detected by Atim.
type Issue struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Severity     string `json:"severity"`
	Status       string `json:"status"`
	FilePath     string `json:"file_path"`
	LineNumber   int    `json:"line_number"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	SuggestedFix string `json:"suggested_fix,omitempty"`
}

// PullRequest status values.
const (
	PROpen   = "open"
	PRMerged = "merged"
	PRClosed = "closed"
)

// PullRequest is a pull request tracked by the backend.
type PullRequest struct {
	ID          string     `json:"id"`
	GitHubID    int        `json:"github_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	Diff        string     `json:"diff,omitempty"`
	HTMLURL     string     `json:"html_url"`
	Feedback    []Feedback `json:"feedback,omitempty"`
}

// Feedback is a review comment attached to a pull request.
type Feedback struct {
	ID        string `json:"id"`
	PRID      string `json:"pr_id"`
	Comment   string `json:"comment"`
	Approved  bool   `json:"approved"`
	CreatedAt string `json:"created_at"`
}

// Chat message senders.
const (
	SenderUser = "user"
	SenderAtim = "atim"
)

// Reference types for chat messages scoped to an issue or PR.
const (
	RefIssue = "issue"
	RefPR    = "pr"
)

// MessageMetadata is the optional reasoning annotation the assistant attaches
// to its replies. Purely informational.
type MessageMetadata struct {
	AnalysisID          string  `json:"analysis_id,omitempty"`
	ReasoningType       string  `json:"reasoning_type,omitempty"`
	Confidence          float64 `json:"confidence,omitempty"`
	FormalSpecification string  `json:"formal_specification,omitempty"`
	ProofID             string  `json:"proof_id,omitempty"`
	Theorem             string  `json:"theorem,omitempty"`
}

// ChatMessage is one entry in the assistant conversation.
type ChatMessage struct {
	ID            string           `json:"id"`
	Sender        string           `json:"sender"`
	Content       string           `json:"content"`
	Timestamp     string           `json:"timestamp"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"`
	Metadata      *MessageMetadata `json:"metadata,omitempty"`
}

// Kanban item status values.
const (
	KanbanTodo       = "todo"
	KanbanInProgress = "in-progress"
	KanbanDone       = "done"
)

// KanbanItem is a board card linking to a GitHub issue or PR.
type KanbanItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Type        string `json:"type"` // "issue" or "pr"
	URL         string `json:"url"`
	Number      int    `json:"number"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Issue proposal status values.
const (
	ProposalPending   = "pending"
	ProposalApproved  = "approved"
	ProposalRejected  = "rejected"
	ProposalPublished = "published"
)

// IssueProposal is a candidate GitHub issue awaiting human review.
type IssueProposal struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Severity          string   `json:"severity"`
	Category          string   `json:"category"`
	FilePath          string   `json:"file_path,omitempty"`
	LineNumber        int      `json:"line_number,omitempty"`
	SuggestedFix      string   `json:"suggested_fix,omitempty"`
	Labels            []string `json:"labels"`
	CreatedAt         string   `json:"created_at"`
	Status            string   `json:"status"`
	GitHubIssueNumber int      `json:"github_issue_number,omitempty"`
}

// RepoStats is the repository summary shown on the proposals screen.
type RepoStats struct {
	Name       string `json:"name"`
	OpenIssues int    `json:"open_issues"`
	OpenPulls  int    `json:"open_pulls"`
	Stars      int    `json:"stars"`
	Forks      int    `json:"forks"`
	Language   string `json:"language"`
}
