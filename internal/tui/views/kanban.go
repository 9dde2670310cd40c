// Package views provides the TUI screens for the Atim dashboard.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/tui"
	"github.com/atim-dev/atim/internal/tui/commands"
)

// Board is the kanban items partitioned into the three fixed columns.
type Board struct {
	Todo       []api.KanbanItem
	InProgress []api.KanbanItem
	Done       []api.KanbanItem
}

// Buckets partitions items by status. Unknown statuses land in Todo so no
// card ever disappears from the board.
func Buckets(items []api.KanbanItem) Board {
	var board Board
	for _, item := range items {
		switch item.Status {
		case api.KanbanInProgress:
			board.InProgress = append(board.InProgress, item)
		case api.KanbanDone:
			board.Done = append(board.Done, item)
		default:
			board.Todo = append(board.Todo, item)
		}
	}
	return board
}

// SampleItems is the demonstration board shown when the backend has no cards.
// It must never overwrite a non-empty backend result.
func SampleItems() []api.KanbanItem {
	return []api.KanbanItem{
		{
			ID:          "1",
			Title:       "Fix supply calculation bug in /chain endpoint",
			Description: "Currently using chain.size() * 10.0 instead of currentSupply",
			Status:      api.KanbanTodo,
			Type:        "issue",
			URL:         "https://github.com/Emmanuel-Odero/nilotic-network/issues/1",
			Number:      1,
			CreatedAt:   "2023-12-15T12:00:00Z",
			UpdatedAt:   "2023-12-15T12:00:00Z",
		},
		{
			ID:          "2",
			Title:       "Add getCurrentSupply() method to Blockchain class",
			Description: "Needed to accurately report the circulating supply of SLW tokens",
			Status:      api.KanbanInProgress,
			Type:        "pr",
			URL:         "https://github.com/Emmanuel-Odero/nilotic-network/pull/2",
			Number:      2,
			CreatedAt:   "2023-12-16T12:00:00Z",
			UpdatedAt:   "2023-12-16T14:00:00Z",
		},
		{
			ID:          "3",
			Title:       "Fix race condition in multi-threaded staking",
			Description: "Adding a mutex to prevent concurrent modifications",
			Status:      api.KanbanDone,
			Type:        "pr",
			URL:         "https://github.com/Emmanuel-Odero/nilotic-network/pull/3",
			Number:      3,
			CreatedAt:   "2023-12-10T10:00:00Z",
			UpdatedAt:   "2023-12-11T16:00:00Z",
		},
		{
			ID:          "4",
			Title:       "Improve validation for staking amounts",
			Description: "Add minimum stake amount and better error messages",
			Status:      api.KanbanInProgress,
			Type:        "issue",
			URL:         "https://github.com/Emmanuel-Odero/nilotic-network/issues/4",
			Number:      4,
			CreatedAt:   "2023-12-17T09:00:00Z",
			UpdatedAt:   "2023-12-17T09:00:00Z",
		},
	}
}

// ============================================================================
// KanbanModel
// ============================================================================

// KanbanModel is the view model for the board screen.
type KanbanModel struct {
	deps    tui.Deps
	board   Board
	sample  bool
	loading bool
	errMsg  string
	spinner spinner.Model
	width   int
	height  int
}

// NewKanbanModel creates a new KanbanModel.
func NewKanbanModel(deps tui.Deps, width, height int) KanbanModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return KanbanModel{
		deps:    deps,
		loading: true,
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Init starts the board load.
func (m KanbanModel) Init() tea.Cmd {
	return tea.Batch(commands.LoadKanbanCmd(m.deps), m.spinner.Tick)
}

// Update handles messages for the board view.
func (m KanbanModel) Update(msg tea.Msg) (KanbanModel, tea.Cmd) {
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
		items := msg.Items
		m.sample = len(items) == 0
		if m.sample {
			items = SampleItems()
		}
		m.board = Buckets(items)
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

// View renders the board view.
func (m KanbanModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Board")
	b.WriteString(header)
	if m.sample {
		b.WriteString("  ")
		b.WriteString(tui.DimStyle.Render("(sample data)"))
	}
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading board...")
	case m.errMsg != "":
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("r: Retry"))
	default:
		colWidth := (m.width - 12) / 3
		if colWidth < 20 {
			colWidth = 20
		}
		columns := []string{
			renderColumn("To Do", m.board.Todo, colWidth),
			renderColumn("In Progress", m.board.InProgress, colWidth),
			renderColumn("Done", m.board.Done, colWidth),
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	}

	b.WriteString("\n\n")
	footer := tui.DimStyle.Render("r: Refresh · Tab: Switch screens")
	b.WriteString(footer)

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}

// renderColumn renders one bucket with its card count.
func renderColumn(title string, items []api.KanbanItem, width int) string {
	var b strings.Builder

	b.WriteString(tui.SelectedStyle.Render(fmt.Sprintf("%s (%d)", title, len(items))))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(tui.DimStyle.Render("empty"))
	}
	for i, item := range items {
		badge := tui.StatusStyle(item.Status).Render(item.Type)
		b.WriteString(fmt.Sprintf("%s #%d\n%s", badge, item.Number, item.Title))
		if i < len(items)-1 {
			b.WriteString("\n\n")
		}
	}

	return tui.ColumnStyle.Width(width).Render(b.String())
}
