// Package views provides the TUI screens for the Atim dashboard.
package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atim-dev/atim/internal/auth"
	"github.com/atim-dev/atim/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// NavigateMsg asks the app to switch to another screen.
type NavigateMsg struct {
	Route tui.Route
}

// ============================================================================
// LandingModel
// ============================================================================

// LandingModel is the view model for the landing screen.
type LandingModel struct {
	session    auth.Snapshot
	backendURL string
	width      int
	height     int
}

// NewLandingModel creates a new LandingModel. backendURL is the configured
// API endpoint, shown so users can tell which backend they are pointed at.
func NewLandingModel(session auth.Snapshot, backendURL string, width, height int) LandingModel {
	return LandingModel{
		session:    session,
		backendURL: backendURL,
		width:      width,
		height:     height,
	}
}

// Init returns the initial command for the landing view.
func (m LandingModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the landing view.
func (m LandingModel) Update(msg tea.Msg) (LandingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEnter:
			target := tui.RouteLogin
			if m.session.IsAuthenticated() {
				target = tui.RouteDashboard
			}
			return m, func() tea.Msg {
				return NavigateMsg{Route: target}
			}
		case "b", "B":
			return m, func() tea.Msg {
				return NavigateMsg{Route: tui.RouteKanban}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// View renders the landing view.
func (m LandingModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Atim - Nilotic Network Development Assistant")
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString("Atim watches the Nilotic Network codebase, detects issues,")
	b.WriteString("\n")
	b.WriteString("opens fix pull requests, and answers questions about the chain.")
	b.WriteString("\n\n")

	if m.session.IsAuthenticated() {
		b.WriteString(tui.SuccessStyle.Render("Signed in as " + m.session.User.Email))
		b.WriteString("\n\n")
		b.WriteString("Press Enter to open the dashboard.")
	} else {
		b.WriteString("Press Enter to sign in, or 'b' to browse the public board.")
	}
	b.WriteString("\n\n")

	if m.backendURL != "" {
		b.WriteString(tui.DimStyle.Render("Backend: " + m.backendURL))
		b.WriteString("\n")
	}
	footer := tui.DimStyle.Render("Tab: Switch screens       Ctrl+C: Exit")
	b.WriteString(footer)

	content := b.String()
	boxed := tui.BoxStyle.
		Width(m.width - 4).
		Render(content)

	contentHeight := lipgloss.Height(boxed)
	if m.height > contentHeight {
		padding := (m.height - contentHeight) / 3
		if padding > 0 {
			boxed = strings.Repeat("\n", padding) + boxed
		}
	}

	return boxed
}
