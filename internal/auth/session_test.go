package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atim-dev/atim/internal/api"
)

// memTokens is an in-memory token store for tests.
type memTokens struct {
	mu    sync.Mutex
	token string
}

func (m *memTokens) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *memTokens) Save(t string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = t
	return nil
}

func (m *memTokens) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func envelope(success bool, data any, errMsg string) []byte {
	resp := map[string]any{"success": success}
	if data != nil {
		resp["data"] = data
	}
	if errMsg != "" {
		resp["error"] = errMsg
	}
	b, _ := json.Marshal(resp)
	return b
}

func TestNewStoreStartsBootstrapping(t *testing.T) {
	store := NewStore(api.NewClient("http://127.0.0.1:1", &memTokens{}), &memTokens{}, nil)
	snap := store.Snapshot()
	assert.Equal(t, StateBootstrapping, snap.State)
	assert.True(t, snap.Loading)
	assert.False(t, snap.IsAuthenticated())
}

func TestBootstrapWithoutToken(t *testing.T) {
	tokens := &memTokens{}
	store := NewStore(api.NewClient("http://127.0.0.1:1", tokens), tokens, nil)

	snap := store.Bootstrap(context.Background())
	assert.Equal(t, StateAnonymous, snap.State)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Err, "missing token is not an error")
}

func TestBootstrapValidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer stale-but-valid", r.Header.Get("Authorization"))
		_, _ = w.Write(envelope(true, api.User{ID: "u1", Email: "a@b.com", Verified: true}, ""))
	}))
	defer srv.Close()

	tokens := &memTokens{token: "stale-but-valid"}
	store := NewStore(api.NewClient(srv.URL, tokens), tokens, nil)

	snap := store.Bootstrap(context.Background())
	assert.Equal(t, StateAuthenticated, snap.State)
	require.True(t, snap.IsAuthenticated())
	assert.Equal(t, "a@b.com", snap.User.Email)
}

func TestBootstrapRejectedTokenErasedSilently(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write(envelope(false, nil, "token expired"))
	}))
	defer srv.Close()

	tokens := &memTokens{token: "expired"}
	store := NewStore(api.NewClient(srv.URL, tokens), tokens, nil)

	snap := store.Bootstrap(context.Background())
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Empty(t, snap.Err, "bootstrap failures are not surfaced")
	_, ok := tokens.Token()
	assert.False(t, ok, "rejected token must be erased")
}

func TestLoginFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(envelope(false, nil, "bad credentials"))
	}))
	defer srv.Close()

	tokens := &memTokens{}
	store := NewStore(api.NewClient(srv.URL, tokens), tokens, nil)
	store.Bootstrap(context.Background())

	ok := store.Login(context.Background(), "a@b.com", "x")
	assert.False(t, ok)

	snap := store.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Equal(t, "bad credentials", snap.Err)
	assert.False(t, snap.Loading)
	_, hasToken := tokens.Token()
	assert.False(t, hasToken, "failed login must not persist a token")
}

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(envelope(true, api.LoginResult{
			Token: "T",
			User:  api.User{ID: "u1", Email: "a@b.com", Verified: true},
		}, ""))
	}))
	defer srv.Close()

	tokens := &memTokens{}
	store := NewStore(api.NewClient(srv.URL, tokens), tokens, nil)
	store.Bootstrap(context.Background())

	ok := store.Login(context.Background(), "a@b.com", "x")
	assert.True(t, ok)

	snap := store.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "a@b.com", snap.User.Email)
	assert.False(t, snap.Loading)

	token, hasToken := tokens.Token()
	require.True(t, hasToken)
	assert.Equal(t, "T", token)
}

func TestSupersededLoginIsDiscarded(t *testing.T) {
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch body["email"] {
		case "slow@b.com":
			close(slowStarted)
			<-releaseSlow
			_, _ = w.Write(envelope(true, api.LoginResult{
				Token: "SLOW",
				User:  api.User{ID: "u-slow", Email: "slow@b.com"},
			}, ""))
		default:
			_, _ = w.Write(envelope(true, api.LoginResult{
				Token: "FAST",
				User:  api.User{ID: "u-fast", Email: "fast@b.com"},
			}, ""))
		}
	}))
	defer srv.Close()

	tokens := &memTokens{}
	store := NewStore(api.NewClient(srv.URL, tokens), tokens, nil)
	store.Bootstrap(context.Background())

	var wg sync.WaitGroup
	var slowResult bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowResult = store.Login(context.Background(), "slow@b.com", "x")
	}()

	<-slowStarted
	fastResult := store.Login(context.Background(), "fast@b.com", "x")
	close(releaseSlow)
	wg.Wait()

	assert.True(t, fastResult)
	assert.False(t, slowResult, "the superseded login must report failure")

	snap := store.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, "fast@b.com", snap.User.Email, "the newest login wins")

	token, hasToken := tokens.Token()
	require.True(t, hasToken)
	assert.Equal(t, "FAST", token, "a stale response must not leave its token behind")
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(envelope(true, map[string]string{"message": "check your email"}, ""))
	}))
	defer srv.Close()

	tokens := &memTokens{}
	store := NewStore(api.NewClient(srv.URL, tokens), tokens, nil)
	store.Bootstrap(context.Background())

	ok := store.Register(context.Background(), "new@b.com", "pw")
	assert.True(t, ok)

	snap := store.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State, "register must not authenticate")
	assert.False(t, snap.Loading)
	_, hasToken := tokens.Token()
	assert.False(t, hasToken)
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	tokens := &memTokens{token: "tok"}
	store := NewStore(api.NewClient("http://127.0.0.1:1", tokens), tokens, nil)
	store.Bootstrap(context.Background()) // rejects the token already, but exercise Logout anyway

	store.Logout()
	snap := store.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	_, hasToken := tokens.Token()
	assert.False(t, hasToken)

	// Logout with nothing persisted is still fine.
	store.Logout()
	assert.Equal(t, StateAnonymous, store.Snapshot().State)
}

func TestClearError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(envelope(false, nil, "bad credentials"))
	}))
	defer srv.Close()

	tokens := &memTokens{}
	store := NewStore(api.NewClient(srv.URL, tokens), tokens, nil)
	store.Bootstrap(context.Background())
	store.Login(context.Background(), "a@b.com", "x")

	require.Equal(t, "bad credentials", store.Snapshot().Err)
	store.ClearError()

	snap := store.Snapshot()
	assert.Empty(t, snap.Err)
	assert.Equal(t, StateAnonymous, snap.State, "ClearError must not change state")
}
