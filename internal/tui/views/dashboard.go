// Package views provides the TUI screens for the Atim dashboard.
package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/tui"
	"github.com/atim-dev/atim/internal/tui/commands"
)

// BlockchainStats is the network summary block. The figures are placeholders
// until the chain exposes a metrics endpoint; do not wire them to the fetched
// board data.
type BlockchainStats struct {
	TotalBlocks   int
	CurrentSupply int
	TotalStakers  int
	NetworkStatus string
	LastBlockTime string
}

// AtimActivity is the assistant activity block, also placeholder figures.
type AtimActivity struct {
	IssuesDetected int
	PRsCreated     int
	FixesApplied   int
	LastActivity   string
}

// PlaceholderStats returns the fixed network summary.
func PlaceholderStats() BlockchainStats {
	return BlockchainStats{
		TotalBlocks:   1247,
		CurrentSupply: 194250000 + 1247*5, // Premined + block rewards
		TotalStakers:  23,
		NetworkStatus: "online",
		LastBlockTime: time.Now().Format(time.RFC1123),
	}
}

// PlaceholderActivity returns the fixed assistant activity summary.
func PlaceholderActivity() AtimActivity {
	return AtimActivity{
		IssuesDetected: 8,
		PRsCreated:     5,
		FixesApplied:   3,
		LastActivity:   time.Now().Format(time.RFC1123),
	}
}

// ============================================================================
// DashboardModel
// ============================================================================

// DashboardModel is the view model for the dashboard screen. It combines the
// fetched board items with the two placeholder stat blocks.
type DashboardModel struct {
	deps     tui.Deps
	items    []api.KanbanItem
	stats    BlockchainStats
	activity AtimActivity
	loading  bool
	errMsg   string
	spinner  spinner.Model
	width    int
	height   int
}

// NewDashboardModel creates a new DashboardModel.
func NewDashboardModel(deps tui.Deps, width, height int) DashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return DashboardModel{
		deps:     deps,
		stats:    PlaceholderStats(),
		activity: PlaceholderActivity(),
		loading:  true,
		spinner:  sp,
		width:    width,
		height:   height,
	}
}

// Init starts the board load.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(commands.LoadKanbanCmd(m.deps), m.spinner.Tick)
}

// Update handles messages for the dashboard view.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" && !m.loading {
			m.loading = true
			m.errMsg = ""
			return m, tea.Batch(commands.LoadKanbanCmd(m.deps), m.spinner.Tick)
		}

	case tui.KanbanLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.Items
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// View renders the dashboard view.
func (m DashboardModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Dashboard")
	b.WriteString(header)
	b.WriteString("\n\n")

	colWidth := (m.width - 12) / 2
	if colWidth < 28 {
		colWidth = 28
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		renderStatsBlock(m.stats, colWidth),
		renderActivityBlock(m.activity, colWidth),
	))
	b.WriteString("\n\n")

	b.WriteString(tui.SelectedStyle.Render("Recent work"))
	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading...")
	case m.errMsg != "":
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("r: Retry"))
	case len(m.items) == 0:
		b.WriteString(tui.DimStyle.Render("No tracked items yet."))
	default:
		board := Buckets(m.items)
		b.WriteString(fmt.Sprintf("%d to do · %d in progress · %d done\n",
			len(board.Todo), len(board.InProgress), len(board.Done)))
		limit := 5
		for i, item := range m.items {
			if i == limit {
				b.WriteString(tui.DimStyle.Render(fmt.Sprintf("... and %d more", len(m.items)-limit)))
				break
			}
			badge := tui.StatusStyle(item.Status).Render(item.Status)
			b.WriteString(fmt.Sprintf("%s %s\n", badge, item.Title))
		}
	}

	b.WriteString("\n\n")
	footer := tui.DimStyle.Render("r: Refresh · Tab: Switch screens · Ctrl+L: Log out")
	b.WriteString(footer)

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}

func renderStatsBlock(stats BlockchainStats, width int) string {
	var b strings.Builder
	b.WriteString(tui.SelectedStyle.Render("Nilotic Network"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Total blocks:   %d\n", stats.TotalBlocks))
	b.WriteString(fmt.Sprintf("Current supply: %d SLW\n", stats.CurrentSupply))
	b.WriteString(fmt.Sprintf("Stakers:        %d\n", stats.TotalStakers))
	b.WriteString("Status:         ")
	b.WriteString(tui.StatusStyle("done").Render(stats.NetworkStatus))
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Last block: " + stats.LastBlockTime))
	return tui.ColumnStyle.Width(width).Render(b.String())
}

func renderActivityBlock(activity AtimActivity, width int) string {
	var b strings.Builder
	b.WriteString(tui.SelectedStyle.Render("Atim activity"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Issues detected: %d\n", activity.IssuesDetected))
	b.WriteString(fmt.Sprintf("PRs created:     %d\n", activity.PRsCreated))
	b.WriteString(fmt.Sprintf("Fixes applied:   %d\n", activity.FixesApplied))
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Last activity: " + activity.LastActivity))
	return tui.ColumnStyle.Width(width).Render(b.String())
}
