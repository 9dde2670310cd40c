package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveProposalReturnsIssueNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/github/proposals/p-1/approve", r.URL.Path)
		writeEnvelope(w, true, map[string]int{"issue_number": 17}, "")
	}))
	defer srv.Close()

	client := NewGitHubClient(srv.URL)
	number, err := client.ApproveProposal(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, 17, number)
}

func TestRejectProposal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/github/proposals/p-2/reject", r.URL.Path)
		writeEnvelope(w, true, nil, "")
	}))
	defer srv.Close()

	client := NewGitHubClient(srv.URL)
	require.NoError(t, client.RejectProposal(context.Background(), "p-2"))
}

func TestProposalsAndStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/github/proposals":
			writeEnvelope(w, true, []IssueProposal{
				{ID: "p-1", Title: "Fix supply bug", Severity: SeverityHigh, Status: ProposalPending},
			}, "")
		case "/api/github/stats":
			writeEnvelope(w, true, RepoStats{Name: "nilotic-network", OpenIssues: 4, Language: "C++"}, "")
		default:
			writeEnvelope(w, false, nil, "not found")
		}
	}))
	defer srv.Close()

	client := NewGitHubClient(srv.URL)

	proposals, err := client.Proposals(context.Background())
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, ProposalPending, proposals[0].Status)

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nilotic-network", stats.Name)
	assert.Equal(t, 4, stats.OpenIssues)
}
