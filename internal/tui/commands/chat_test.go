package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/history"
	"github.com/atim-dev/atim/internal/tui"
)

// memTokens is an in-memory TokenStore for tests.
type memTokens struct {
	token string
}

func (m *memTokens) Token() (string, bool) { return m.token, m.token != "" }
func (m *memTokens) Save(t string) error   { m.token = t; return nil }
func (m *memTokens) Clear() error          { m.token = ""; return nil }

func chatDeps(t *testing.T, handler http.HandlerFunc) tui.Deps {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cache, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	return tui.Deps{
		API:     api.NewClient(srv.URL, &memTokens{}),
		History: cache,
	}
}

func TestSendFailureSynthesizesAnalysisReply(t *testing.T) {
	deps := chatDeps(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "reasoning engine down",
		})
	})

	msg := SendChatCmd(deps, "why did the supply jump?", "", "")()

	reply, ok := msg.(tui.ChatReplyMsg)
	require.True(t, ok)
	assert.True(t, reply.Fallback)
	assert.Equal(t, api.SenderAtim, reply.Reply.Sender)
	assert.Contains(t, reply.Reply.Content, `"why did the supply jump?"`)
	require.NotNil(t, reply.Reply.Metadata)
	assert.Equal(t, "general_analysis", reply.Reply.Metadata.ReasoningType)
	assert.InDelta(t, 0.8, reply.Reply.Metadata.Confidence, 1e-9)
}

func TestSendCachesUserTurnAndReply(t *testing.T) {
	deps := chatDeps(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": api.ChatMessage{
				ID:      "m2",
				Sender:  api.SenderAtim,
				Content: "answer",
			},
		})
	})

	_ = SendChatCmd(deps, "question", "", "")()

	cached, err := deps.History.Messages("", "")
	require.NoError(t, err)
	require.Len(t, cached, 2, "both sides of the exchange are cached")
	assert.Equal(t, api.SenderUser, cached[0].Sender)
	assert.Equal(t, "question", cached[0].Content)
	assert.Equal(t, api.SenderAtim, cached[1].Sender)
	assert.Equal(t, "answer", cached[1].Content)
}

func TestFailedSendCachesUserTurnAndFallback(t *testing.T) {
	deps := chatDeps(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("gateway error"))
	})

	msg := SendChatCmd(deps, "anyone home?", "7", api.RefIssue)()

	reply, ok := msg.(tui.ChatReplyMsg)
	require.True(t, ok)
	assert.True(t, reply.Fallback)

	cached, err := deps.History.Messages("7", api.RefIssue)
	require.NoError(t, err)
	require.NotEmpty(t, cached)
	assert.Equal(t, api.SenderUser, cached[0].Sender)
	assert.Equal(t, "anyone home?", cached[0].Content)
}

func TestEmptyReplyPayloadFallsBack(t *testing.T) {
	deps := chatDeps(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	msg := SendChatCmd(deps, "ping", "", "")()

	reply, ok := msg.(tui.ChatReplyMsg)
	require.True(t, ok)
	assert.True(t, reply.Fallback, "a success envelope without a reply is a failure")
	assert.NotEmpty(t, reply.Reply.Content)
}
