// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/auth"
	"github.com/atim-dev/atim/internal/config"
	"github.com/atim-dev/atim/internal/history"
	"github.com/atim-dev/atim/internal/log"
)

// Deps bundles the shared services every screen may need. History and Events
// are optional; a nil value disables the local cache or event log.
type Deps struct {
	Cfg      *config.Config
	API      *api.Client
	GitHub   *api.GitHubClient
	Sessions *auth.Store
	History  *history.Store
	Events   *log.Logger
}

// Model is the main TUI model that holds all application state shared
// across screens. Per-screen state lives in the view models.
type Model struct {
	Deps

	// Session is the last observed snapshot; the route guard re-reads it
	// on every session change.
	Session auth.Snapshot

	// Route is the screen currently requested (pre-guard).
	Route Route

	Spinner spinner.Model

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool // True when waiting for second Ctrl+C press
}

// NewModel creates a new Model with the given dependencies.
func NewModel(deps Deps) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(primaryColor))

	return &Model{
		Deps:    deps,
		Session: deps.Sessions.Snapshot(),
		Route:   RouteLanding,
		Spinner: sp,

		// Default dimensions (updated on WindowSizeMsg)
		Width:  80,
		Height: 24,
	}
}
