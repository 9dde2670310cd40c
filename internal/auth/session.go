package auth

import (
	"context"
	"sync"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/log"
)

// State is the session lifecycle state.
type State int

const (
	// StateBootstrapping is the initial state while any persisted token is
	// being validated against the backend.
	StateBootstrapping State = iota
	// StateAnonymous means no validated user is present.
	StateAnonymous
	// StateAuthenticated means a token was validated and a user is cached.
	StateAuthenticated
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the session handed to routing and views.
type Snapshot struct {
	State   State
	User    *api.User
	Loading bool
	Err     string
}

// IsAuthenticated reports whether a validated user is present. It is derived
// from the snapshot, never stored independently.
func (s Snapshot) IsAuthenticated() bool {
	return s.User != nil
}

// Store owns the process-wide session state. Commands run in goroutines, so
// all mutation goes through the mutex; views only ever see Snapshots.
type Store struct {
	client *api.Client
	tokens api.TokenStore
	events *log.Logger

	mu       sync.Mutex
	state    State
	user     *api.User
	loading  bool
	err      string
	loginSeq uint64

	// activeToken mirrors the token belonging to the current user so a
	// stale login response cannot leave the wrong token on disk.
	activeToken string
}

// NewStore creates a Store in the Bootstrapping state. events may be nil.
func NewStore(client *api.Client, tokens api.TokenStore, events *log.Logger) *Store {
	return &Store{
		client:  client,
		tokens:  tokens,
		events:  events,
		state:   StateBootstrapping,
		loading: true,
	}
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, User: s.user, Loading: s.loading, Err: s.err}
}

// Bootstrap resolves the initial state exactly once per process: without a
// persisted token it transitions straight to Anonymous; with one it validates
// against the backend. A rejected or unreachable token is an expected
// condition, so the failure is logged but never surfaced as an error.
func (s *Store) Bootstrap(ctx context.Context) Snapshot {
	token, ok := s.tokens.Token()
	if !ok {
		s.mu.Lock()
		s.state = StateAnonymous
		s.loading = false
		s.mu.Unlock()
		return s.Snapshot()
	}

	user, err := s.client.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		_ = s.tokens.Clear()
		s.state = StateAnonymous
		s.user = nil
		s.logEvent(log.LogEvent{Event: log.EventBootstrapRejected, Reason: err.Error()})
		return Snapshot{State: s.state, Loading: s.loading}
	}

	s.state = StateAuthenticated
	s.user = user
	s.activeToken = token
	s.logEvent(log.LogEvent{Event: log.EventBootstrapped, Email: user.Email})
	return Snapshot{State: s.state, User: s.user, Loading: s.loading}
}

// Login authenticates with the backend. On success the token has already been
// persisted by the API client and the session becomes Authenticated. On
// failure the error message is stored and the session stays Anonymous.
// If another Login starts while this one is in flight, the older result is
// discarded so the newest attempt always wins.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	s.mu.Lock()
	s.loginSeq++
	seq := s.loginSeq
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	result, err := s.client.Login(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.loginSeq {
		// A newer login superseded this one while it was in flight. If the
		// stale attempt succeeded, the API client already wrote its token;
		// put the winner's token back.
		if err == nil {
			if s.activeToken != "" {
				_ = s.tokens.Save(s.activeToken)
			} else {
				_ = s.tokens.Clear()
			}
		}
		s.logEvent(log.LogEvent{Event: log.EventLoginSuperseded, Email: email})
		return false
	}
	s.loading = false

	if err != nil {
		s.err = err.Error()
		s.state = StateAnonymous
		s.user = nil
		s.logEvent(log.LogEvent{Event: log.EventLoginFailed, Email: email, Error: err.Error()})
		return false
	}

	s.state = StateAuthenticated
	s.user = &result.User
	s.activeToken = result.Token
	s.logEvent(log.LogEvent{Event: log.EventLogin, Email: result.User.Email})
	return true
}

// Register submits an account request. Success does not authenticate; it only
// means the request was accepted and a verification email is on its way.
func (s *Store) Register(ctx context.Context, email, password string) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	err := s.client.Register(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.err = err.Error()
		return false
	}

	s.logEvent(log.LogEvent{Event: log.EventRegister, Email: email})
	return true
}

// Logout erases the token and transitions to Anonymous unconditionally.
// It always succeeds, even when no token was persisted.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.client.Logout()
	s.state = StateAnonymous
	s.user = nil
	s.err = ""
	s.loading = false
	s.activeToken = ""
	s.logEvent(log.LogEvent{Event: log.EventLogout})
}

// ClearError clears only the error field.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// logEvent appends to the event log when one is configured. Callers hold s.mu.
func (s *Store) logEvent(event log.LogEvent) {
	if s.events != nil {
		_ = s.events.Append(event)
	}
}
