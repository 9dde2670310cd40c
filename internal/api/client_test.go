package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTokens is an in-memory TokenStore for tests.
type memTokens struct {
	token string
}

func (m *memTokens) Token() (string, bool) { return m.token, m.token != "" }
func (m *memTokens) Save(t string) error   { m.token = t; return nil }
func (m *memTokens) Clear() error          { m.token = ""; return nil }

func writeEnvelope(w http.ResponseWriter, success bool, data any, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{"success": success}
	if data != nil {
		resp["data"] = data
	}
	if errMsg != "" {
		resp["error"] = errMsg
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func TestBearerAttachedOnlyWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, true, []Issue{}, "")
	}))
	defer srv.Close()

	tokens := &memTokens{}
	client := NewClient(srv.URL, tokens)

	_, err := client.Issues(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "no Authorization header without a token")

	tokens.token = "tok-123"
	_, err = client.Issues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestLoginPersistsTokenOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])

		writeEnvelope(w, true, LoginResult{
			Token: "T",
			User:  User{ID: "u1", Email: "a@b.com", Verified: true},
		}, "")
	}))
	defer srv.Close()

	tokens := &memTokens{}
	client := NewClient(srv.URL, tokens)

	result, err := client.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "T", result.Token)
	assert.Equal(t, "a@b.com", result.User.Email)
	assert.Equal(t, "T", tokens.token, "token must be persisted before Login returns")
}

func TestLoginFailureDoesNotPersistToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, false, nil, "bad credentials")
	}))
	defer srv.Close()

	tokens := &memTokens{}
	client := NewClient(srv.URL, tokens)

	_, err := client.Login(context.Background(), "a@b.com", "x")
	require.Error(t, err)
	assert.Equal(t, "bad credentials", err.Error())
	assert.Empty(t, tokens.token)
}

func TestLogoutClearsTokenWithoutNetwork(t *testing.T) {
	tokens := &memTokens{token: "tok"}
	// Unreachable base URL proves no network call happens.
	client := NewClient("http://127.0.0.1:1", tokens)

	require.NoError(t, client.Logout())
	assert.Empty(t, tokens.token)

	// Logging out again with no token is still fine.
	require.NoError(t, client.Logout())
}

func TestBackendFailureWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		writeEnvelope(w, false, nil, "")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &memTokens{})
	_, err := client.Issues(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestMalformedResponseBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &memTokens{})
	_, err := client.Issues(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response")
}

func TestTransportFailureBecomesError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", &memTokens{})
	_, err := client.Issues(context.Background())
	require.Error(t, err)
}

func TestChatMessagesReferenceFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeEnvelope(w, true, []ChatMessage{}, "")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &memTokens{})

	_, err := client.ChatMessages(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)

	_, err = client.ChatMessages(context.Background(), "42", RefIssue)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "referenceId=42")
	assert.Contains(t, gotQuery, "referenceType=issue")

	// A half-specified reference is ignored.
	_, err = client.ChatMessages(context.Background(), "42", "")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestSendChatMessageRejectsEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, true, nil, "")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &memTokens{})
	_, err := client.SendChatMessage(context.Background(), "hello", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty reply")
}

func TestSubmitFeedback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/prs/pr-9/feedback", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "looks good", body["comment"])
		assert.Equal(t, true, body["approved"])

		writeEnvelope(w, true, Feedback{ID: "f1", PRID: "pr-9", Comment: "looks good", Approved: true}, "")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &memTokens{})
	fb, err := client.SubmitFeedback(context.Background(), "pr-9", "looks good", true)
	require.NoError(t, err)
	assert.Equal(t, "pr-9", fb.PRID)
}
