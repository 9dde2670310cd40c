package tui

import (
	"testing"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/auth"
)

func anonymous() auth.Snapshot {
	return auth.Snapshot{State: auth.StateAnonymous}
}

func authenticated() auth.Snapshot {
	return auth.Snapshot{
		State: auth.StateAuthenticated,
		User:  &api.User{ID: "u1", Email: "a@b.com", Verified: true},
	}
}

func TestGuard(t *testing.T) {
	bootstrapping := auth.Snapshot{State: auth.StateBootstrapping, Loading: true}

	tests := []struct {
		name         string
		route        Route
		session      auth.Snapshot
		wantDecision Decision
		wantRoute    Route
	}{
		{"bootstrapping holds protected route", RouteDashboard, bootstrapping, DecisionLoading, RouteDashboard},
		{"bootstrapping holds public route", RouteKanban, bootstrapping, DecisionLoading, RouteKanban},

		{"anonymous renders landing", RouteLanding, anonymous(), DecisionRender, RouteLanding},
		{"anonymous renders kanban", RouteKanban, anonymous(), DecisionRender, RouteKanban},
		{"anonymous renders login", RouteLogin, anonymous(), DecisionRender, RouteLogin},
		{"anonymous renders register", RouteRegister, anonymous(), DecisionRender, RouteRegister},
		{"anonymous redirected from dashboard", RouteDashboard, anonymous(), DecisionRedirect, RouteLogin},
		{"anonymous redirected from issues", RouteIssues, anonymous(), DecisionRedirect, RouteLogin},
		{"anonymous redirected from chat", RouteChat, anonymous(), DecisionRedirect, RouteLogin},
		{"anonymous redirected from proposals", RouteProposals, anonymous(), DecisionRedirect, RouteLogin},

		{"authenticated renders dashboard", RouteDashboard, authenticated(), DecisionRender, RouteDashboard},
		{"authenticated renders chat", RouteChat, authenticated(), DecisionRender, RouteChat},
		{"authenticated redirected from login", RouteLogin, authenticated(), DecisionRedirect, RouteDashboard},
		{"authenticated redirected from register", RouteRegister, authenticated(), DecisionRedirect, RouteDashboard},

		{"unmatched route falls back to landing", Route("/nope"), anonymous(), DecisionRender, RouteLanding},
		{"unmatched route still guarded while bootstrapping", Route("/nope"), bootstrapping, DecisionLoading, RouteLanding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, route := Guard(tt.route, tt.session)
			if decision != tt.wantDecision {
				t.Errorf("Guard(%q) decision = %v, want %v", tt.route, decision, tt.wantDecision)
			}
			if route != tt.wantRoute {
				t.Errorf("Guard(%q) route = %q, want %q", tt.route, route, tt.wantRoute)
			}
		})
	}
}

func TestRequiresAuth(t *testing.T) {
	protected := map[Route]bool{
		RouteLanding:   false,
		RouteLogin:     false,
		RouteRegister:  false,
		RouteKanban:    false,
		RouteDashboard: true,
		RouteIssues:    true,
		RouteChat:      true,
		RouteProposals: true,
	}
	for route, want := range protected {
		if got := RequiresAuth(route); got != want {
			t.Errorf("RequiresAuth(%q) = %v, want %v", route, got, want)
		}
	}
}
