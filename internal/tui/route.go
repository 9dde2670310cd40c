// Package tui implements the terminal user interface using Bubble Tea.
package tui

import "github.com/atim-dev/atim/internal/auth"

// Route identifies a screen. Values mirror the web client's paths so deep
// links and log lines read the same across both frontends.
type Route string

const (
	RouteLanding   Route = "/"
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteKanban    Route = "/kanban"
	RouteDashboard Route = "/dashboard"
	RouteIssues    Route = "/issues"
	RouteChat      Route = "/chat"
	RouteProposals Route = "/github-proposals"
)

// Routes returns all screens in navigation-bar order.
func Routes() []Route {
	return []Route{
		RouteLanding,
		RouteKanban,
		RouteDashboard,
		RouteIssues,
		RouteChat,
		RouteProposals,
		RouteLogin,
		RouteRegister,
	}
}

// Title returns the navigation label for a route.
func (r Route) Title() string {
	switch r {
	case RouteLanding:
		return "Home"
	case RouteLogin:
		return "Login"
	case RouteRegister:
		return "Register"
	case RouteKanban:
		return "Board"
	case RouteDashboard:
		return "Dashboard"
	case RouteIssues:
		return "Issues"
	case RouteChat:
		return "Chat"
	case RouteProposals:
		return "Proposals"
	default:
		return string(r)
	}
}

// RequiresAuth reports whether a route needs an authenticated session.
func RequiresAuth(r Route) bool {
	switch r {
	case RouteDashboard, RouteIssues, RouteChat, RouteProposals:
		return true
	default:
		return false
	}
}

// Normalize maps unmatched routes to the landing screen.
func Normalize(r Route) Route {
	switch r {
	case RouteLanding, RouteLogin, RouteRegister, RouteKanban,
		RouteDashboard, RouteIssues, RouteChat, RouteProposals:
		return r
	default:
		return RouteLanding
	}
}

// Decision is the route guard's verdict for one navigation.
type Decision int

const (
	// DecisionLoading renders a neutral loading screen; the session is
	// still bootstrapping and no redirect may happen yet.
	DecisionLoading Decision = iota
	// DecisionRender shows the requested route.
	DecisionRender
	// DecisionRedirect sends the user to the returned route instead.
	DecisionRedirect
)

// Guard decides whether a route may render given the current session. It is
// a pure function and is re-evaluated on every session change, not just when
// a screen is first entered.
func Guard(r Route, session auth.Snapshot) (Decision, Route) {
	r = Normalize(r)

	if session.State == auth.StateBootstrapping {
		return DecisionLoading, r
	}
	if RequiresAuth(r) && !session.IsAuthenticated() {
		return DecisionRedirect, RouteLogin
	}
	// Authenticated users have no business on the login/register screens.
	if (r == RouteLogin || r == RouteRegister) && session.IsAuthenticated() {
		return DecisionRedirect, RouteDashboard
	}
	return DecisionRender, r
}
