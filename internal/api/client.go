package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is used when no configuration overrides it.
const DefaultBaseURL = "http://localhost:5000/api"

const defaultTimeout = 15 * time.Second

// TokenStore persists the single bearer token between runs. Implemented by
// auth.FileTokenStore; faked in tests.
type TokenStore interface {
	// Token returns the persisted token, if any.
	Token() (string, bool)
	// Save replaces the persisted token.
	Save(token string) error
	// Clear removes the persisted token. Clearing an absent token is not an error.
	Clear() error
}

// envelope is the uniform wire wrapper every backend response arrives in.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client talks to the Atim backend. Every method normalizes transport
// failures, malformed responses, and backend-reported failures into a plain
// error; callers only ever see a message, never the cause taxonomy.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// NewClient creates a Client for the given base URL. baseURL falls back to
// DefaultBaseURL when empty.
func NewClient(baseURL string, tokens TokenStore) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
	}
}

// do performs one request and decodes the envelope into out (when non-nil).
// The bearer token is attached when one is persisted; without a token the
// request goes out unauthenticated and the backend decides access.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("unexpected response from server: %w", err)
	}

	if !env.Success {
		if env.Error != "" {
			return errors.New(env.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}

// Register submits a new account request. Success means the request was
// accepted, not that the caller is authenticated.
func (c *Client) Register(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/register", body, nil)
}

// VerifyEmail confirms an account using the emailed verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodGet, "/verify?token="+url.QueryEscape(token), nil, nil)
}

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login authenticates and, on success, persists the returned token before
// returning. This is the only method that writes the token store.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", body, &result); err != nil {
		return nil, err
	}
	if result.Token != "" {
		if err := c.tokens.Save(result.Token); err != nil {
			return nil, fmt.Errorf("persisting token: %w", err)
		}
	}
	return &result, nil
}

// Logout clears the persisted token. No network call is made; the token is
// opaque to the client and simply forgotten.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// CurrentUser validates the persisted token against the backend.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Issues fetches all detected issues.
func (c *Client) Issues(ctx context.Context) ([]Issue, error) {
	var issues []Issue
	if err := c.do(ctx, http.MethodGet, "/demo/issues", nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Issue fetches a single issue by id.
func (c *Client) Issue(ctx context.Context, id string) (*Issue, error) {
	var issue Issue
	if err := c.do(ctx, http.MethodGet, "/issues/"+url.PathEscape(id), nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// PullRequests fetches all tracked pull requests.
func (c *Client) PullRequests(ctx context.Context) ([]PullRequest, error) {
	var prs []PullRequest
	if err := c.do(ctx, http.MethodGet, "/prs", nil, &prs); err != nil {
		return nil, err
	}
	return prs, nil
}

// PullRequest fetches a single pull request by id.
func (c *Client) PullRequest(ctx context.Context, id string) (*PullRequest, error) {
	var pr PullRequest
	if err := c.do(ctx, http.MethodGet, "/prs/"+url.PathEscape(id), nil, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// SubmitFeedback posts a review comment on a pull request.
func (c *Client) SubmitFeedback(ctx context.Context, prID, comment string, approved bool) (*Feedback, error) {
	body := map[string]any{"comment": comment, "approved": approved}
	var fb Feedback
	if err := c.do(ctx, http.MethodPost, "/prs/"+url.PathEscape(prID)+"/feedback", body, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// KanbanItems fetches all board cards.
func (c *Client) KanbanItems(ctx context.Context) ([]KanbanItem, error) {
	var items []KanbanItem
	if err := c.do(ctx, http.MethodGet, "/kanban", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ChatMessages fetches the conversation, optionally filtered to an issue or
// PR reference. Both referenceID and referenceType must be set for the filter
// to apply; otherwise the full transcript is returned.
func (c *Client) ChatMessages(ctx context.Context, referenceID, referenceType string) ([]ChatMessage, error) {
	path := "/demo/chat"
	if referenceID != "" && referenceType != "" {
		q := url.Values{}
		q.Set("referenceId", referenceID)
		q.Set("referenceType", referenceType)
		path += "?" + q.Encode()
	}
	var messages []ChatMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendChatMessage posts a user message and returns the assistant's reply.
// A success envelope without a reply payload is treated as a failure; the
// transcript must never gain an empty assistant message.
func (c *Client) SendChatMessage(ctx context.Context, content, referenceID, referenceType string) (*ChatMessage, error) {
	body := map[string]string{"content": content}
	if referenceID != "" && referenceType != "" {
		body["referenceId"] = referenceID
		body["referenceType"] = referenceType
	}
	var msg ChatMessage
	if err := c.do(ctx, http.MethodPost, "/demo/chat", body, &msg); err != nil {
		return nil, err
	}
	if msg.Content == "" {
		return nil, errors.New("empty reply from server")
	}
	return &msg, nil
}
