// Package app provides the main TUI application that wires all screens together.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/auth"
	"github.com/atim-dev/atim/internal/tui"
	"github.com/atim-dev/atim/internal/tui/commands"
	"github.com/atim-dev/atim/internal/tui/views"
)

// App is the main TUI application. It owns the shared model, the active view,
// and the navigation shell. Every session change re-runs the route guard.
type App struct {
	model *tui.Model

	// View models
	landingView   views.LandingModel
	loginView     views.LoginModel
	registerView  views.RegisterModel
	kanbanView    views.KanbanModel
	dashboardView views.DashboardModel
	issuesView    views.IssuesModel
	chatView      views.ChatModel
	proposalsView views.ProposalsModel
}

// New creates a new App with the given dependencies.
func New(deps tui.Deps) *App {
	model := tui.NewModel(deps)

	app := &App{model: model}
	app.landingView = views.NewLandingModel(model.Session, app.backendURL(), model.Width, model.Height)
	return app
}

// backendURL reports the API endpoint from the loaded config.
func (a *App) backendURL() string {
	if a.model.Cfg != nil && a.model.Cfg.APIBaseURL != "" {
		return a.model.Cfg.APIBaseURL
	}
	return api.DefaultBaseURL
}

// Init resolves the persisted token before anything renders.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		commands.BootstrapCmd(a.model.Deps),
		a.model.Spinner.Tick,
	)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		return a, a.updateActiveView(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, tui.DefaultKeyMap.CtrlC):
			if a.model.CtrlCPending {
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})

		case key.Matches(msg, tui.DefaultKeyMap.Tab):
			return a, a.cycleRoute()

		case key.Matches(msg, tui.DefaultKeyMap.Logout):
			if a.model.Session.IsAuthenticated() {
				return a, commands.LogoutCmd(a.model.Deps)
			}
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case spinner.TickMsg:
		if a.model.Session.State == auth.StateBootstrapping {
			var cmd tea.Cmd
			a.model.Spinner, cmd = a.model.Spinner.Update(msg)
			return a, cmd
		}

	case tui.SessionChangedMsg:
		a.model.Session = msg.Session
		return a, a.navigate(a.model.Route)

	case views.NavigateMsg:
		return a, a.navigate(msg.Route)
	}

	return a, a.updateActiveView(msg)
}

// updateActiveView forwards a message to the view owning the current route.
func (a *App) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.model.Route {
	case tui.RouteLanding:
		a.landingView, cmd = a.landingView.Update(msg)
	case tui.RouteLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case tui.RouteRegister:
		a.registerView, cmd = a.registerView.Update(msg)
	case tui.RouteKanban:
		a.kanbanView, cmd = a.kanbanView.Update(msg)
	case tui.RouteDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	case tui.RouteIssues:
		a.issuesView, cmd = a.issuesView.Update(msg)
	case tui.RouteChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case tui.RouteProposals:
		a.proposalsView, cmd = a.proposalsView.Update(msg)
	}

	return cmd
}

// navigate applies the route guard, constructs the target view, and returns
// its Init command.
func (a *App) navigate(route tui.Route) tea.Cmd {
	decision, target := tui.Guard(route, a.model.Session)

	switch decision {
	case tui.DecisionLoading:
		// Keep the requested route; the bootstrap result re-navigates.
		a.model.Route = tui.Normalize(route)
		return nil
	case tui.DecisionRedirect:
		return a.navigate(target)
	}

	a.model.Route = target
	w, h := a.model.Width, a.model.Height

	switch target {
	case tui.RouteLanding:
		a.landingView = views.NewLandingModel(a.model.Session, a.backendURL(), w, h)
		return a.landingView.Init()
	case tui.RouteLogin:
		a.loginView = views.NewLoginModel(a.model.Deps, w, h)
		return a.loginView.Init()
	case tui.RouteRegister:
		a.registerView = views.NewRegisterModel(a.model.Deps, w, h)
		return a.registerView.Init()
	case tui.RouteKanban:
		a.kanbanView = views.NewKanbanModel(a.model.Deps, w, h)
		return a.kanbanView.Init()
	case tui.RouteDashboard:
		a.dashboardView = views.NewDashboardModel(a.model.Deps, w, h)
		return a.dashboardView.Init()
	case tui.RouteIssues:
		a.issuesView = views.NewIssuesModel(a.model.Deps, w, h)
		return a.issuesView.Init()
	case tui.RouteChat:
		a.chatView = views.NewChatModel(a.model.Deps, "", "", w, h)
		return a.chatView.Init()
	case tui.RouteProposals:
		a.proposalsView = views.NewProposalsModel(a.model.Deps, w, h)
		return a.proposalsView.Init()
	}
	return nil
}

// cycleRoute advances to the next screen the current session may visit.
func (a *App) cycleRoute() tea.Cmd {
	routes := a.visibleRoutes()
	current := 0
	for i, r := range routes {
		if r == a.model.Route {
			current = i
			break
		}
	}
	next := routes[(current+1)%len(routes)]
	return a.navigate(next)
}

// visibleRoutes returns the navigation tabs for the current session.
func (a *App) visibleRoutes() []tui.Route {
	var routes []tui.Route
	for _, r := range tui.Routes() {
		if tui.RequiresAuth(r) && !a.model.Session.IsAuthenticated() {
			continue
		}
		if (r == tui.RouteLogin || r == tui.RouteRegister) && a.model.Session.IsAuthenticated() {
			continue
		}
		routes = append(routes, r)
	}
	return routes
}

// View renders the navigation shell plus the active screen.
func (a *App) View() string {
	if a.model.Session.State == auth.StateBootstrapping {
		content := fmt.Sprintf("%s Restoring session...", a.model.Spinner.View())
		return lipgloss.Place(a.model.Width, a.model.Height, lipgloss.Center, lipgloss.Center, content)
	}

	var content string
	switch a.model.Route {
	case tui.RouteLanding:
		content = a.landingView.View()
	case tui.RouteLogin:
		content = a.loginView.View()
	case tui.RouteRegister:
		content = a.registerView.View()
	case tui.RouteKanban:
		content = a.kanbanView.View()
	case tui.RouteDashboard:
		content = a.dashboardView.View()
	case tui.RouteIssues:
		content = a.issuesView.View()
	case tui.RouteChat:
		content = a.chatView.View()
	case tui.RouteProposals:
		content = a.proposalsView.View()
	default:
		content = "Unknown screen"
	}

	shell := lipgloss.JoinVertical(lipgloss.Left, a.renderNavBar(), content)

	if a.model.CtrlCPending {
		hint := tui.WarningStyle.Render("Press Ctrl+C again to exit")
		shell = lipgloss.JoinVertical(lipgloss.Left, shell, hint)
	}

	return shell
}

// renderNavBar renders the tab bar with the active route highlighted, plus
// the session identity on the right.
func (a *App) renderNavBar() string {
	var rendered []string
	for _, r := range a.visibleRoutes() {
		if r == a.model.Route {
			rendered = append(rendered, tui.ActiveTabStyle.Render(r.Title()))
		} else {
			rendered = append(rendered, tui.InactiveTabStyle.Render(r.Title()))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	identity := "anonymous"
	if a.model.Session.IsAuthenticated() {
		identity = a.model.Session.User.Email
	}
	who := tui.DimStyle.Render(" " + identity)

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs, who)
}
