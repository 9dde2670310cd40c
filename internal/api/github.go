package api

import (
	"context"
	"net/http"
	"net/url"
)

// DefaultGitHubBaseURL is the proposals service default.
const DefaultGitHubBaseURL = "http://localhost:5070"

// GitHubClient talks to the separate GitHub-proposals service. The service
// speaks the same envelope as the main backend but does not require a bearer
// token, so it reuses the envelope plumbing with an empty token source.
type GitHubClient struct {
	inner *Client
}

// noToken is the TokenStore for unauthenticated services.
type noToken struct{}

func (noToken) Token() (string, bool) { return "", false }
func (noToken) Save(string) error     { return nil }
func (noToken) Clear() error          { return nil }

// NewGitHubClient creates a client for the proposals service. baseURL falls
// back to DefaultGitHubBaseURL when empty.
func NewGitHubClient(baseURL string) *GitHubClient {
	if baseURL == "" {
		baseURL = DefaultGitHubBaseURL
	}
	return &GitHubClient{
		inner: &Client{
			baseURL: baseURL,
			http:    &http.Client{Timeout: defaultTimeout},
			tokens:  noToken{},
		},
	}
}

// Proposals fetches all issue proposals awaiting review.
func (c *GitHubClient) Proposals(ctx context.Context) ([]IssueProposal, error) {
	var proposals []IssueProposal
	if err := c.inner.do(ctx, http.MethodGet, "/api/github/proposals", nil, &proposals); err != nil {
		return nil, err
	}
	return proposals, nil
}

// Stats fetches the repository summary.
func (c *GitHubClient) Stats(ctx context.Context) (*RepoStats, error) {
	var stats RepoStats
	if err := c.inner.do(ctx, http.MethodGet, "/api/github/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// approveResult carries the GitHub issue number assigned on publication.
type approveResult struct {
	IssueNumber int `json:"issue_number"`
}

// ApproveProposal publishes a proposal as a GitHub issue and returns the
// created issue number.
func (c *GitHubClient) ApproveProposal(ctx context.Context, id string) (int, error) {
	var result approveResult
	path := "/api/github/proposals/" + url.PathEscape(id) + "/approve"
	if err := c.inner.do(ctx, http.MethodPost, path, nil, &result); err != nil {
		return 0, err
	}
	return result.IssueNumber, nil
}

// RejectProposal marks a proposal rejected.
func (c *GitHubClient) RejectProposal(ctx context.Context, id string) error {
	path := "/api/github/proposals/" + url.PathEscape(id) + "/reject"
	return c.inner.do(ctx, http.MethodPost, path, nil, nil)
}
