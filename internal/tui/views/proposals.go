// Package views provides the TUI screens for the Atim dashboard.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/tui"
	"github.com/atim-dev/atim/internal/tui/commands"
)

// ============================================================================
// ProposalsModel
// ============================================================================

// ProposalsModel is the view model for the GitHub proposal review screen.
// Approve/reject update the affected proposal in place; no refetch. While a
// proposal's request is outstanding its id is held in processingID and both
// actions are disabled for it.
type ProposalsModel struct {
	deps         tui.Deps
	proposals    []api.IssueProposal
	stats        *api.RepoStats
	selected     int
	processingID string
	loading      bool
	errMsg       string
	actionErr    string
	spinner      spinner.Model
	width        int
	height       int
}

// NewProposalsModel creates a new ProposalsModel.
func NewProposalsModel(deps tui.Deps, width, height int) ProposalsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return ProposalsModel{
		deps:    deps,
		loading: true,
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Proposals returns the current proposal list.
func (m ProposalsModel) Proposals() []api.IssueProposal {
	return m.proposals
}

// Init starts the proposals load.
func (m ProposalsModel) Init() tea.Cmd {
	return tea.Batch(commands.LoadProposalsCmd(m.deps), m.spinner.Tick)
}

// Update handles messages for the proposals view.
func (m ProposalsModel) Update(msg tea.Msg) (ProposalsModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if !m.loading && m.processingID == "" {
				m.loading = true
				m.errMsg = ""
				return m, tea.Batch(commands.LoadProposalsCmd(m.deps), m.spinner.Tick)
			}
		case tui.KeyUp, "k":
			if m.selected > 0 {
				m.selected--
			}
		case tui.KeyDown, "j":
			if m.selected < len(m.proposals)-1 {
				m.selected++
			}
		case "a":
			if p, ok := m.actionable(); ok {
				m.processingID = p.ID
				m.actionErr = ""
				return m, tea.Batch(commands.ApproveProposalCmd(m.deps, p.ID), m.spinner.Tick)
			}
		case "x":
			if p, ok := m.actionable(); ok {
				m.processingID = p.ID
				m.actionErr = ""
				return m, tea.Batch(commands.RejectProposalCmd(m.deps, p.ID), m.spinner.Tick)
			}
		}

	case tui.ProposalsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.proposals = msg.Proposals
		m.stats = msg.Stats
		if m.selected >= len(m.proposals) {
			m.selected = 0
		}
		return m, nil

	case tui.ProposalActionMsg:
		if msg.ID == m.processingID {
			m.processingID = ""
		}
		if msg.Err != nil {
			m.actionErr = msg.Err.Error()
			return m, nil
		}
		m.applyAction(msg)
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.processingID != "" {
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

// actionable returns the selected proposal when an action may target it.
func (m ProposalsModel) actionable() (api.IssueProposal, bool) {
	if m.loading || m.processingID != "" || len(m.proposals) == 0 {
		return api.IssueProposal{}, false
	}
	p := m.proposals[m.selected]
	if p.Status != api.ProposalPending {
		return api.IssueProposal{}, false
	}
	return p, true
}

// applyAction updates only the affected proposal in place.
func (m *ProposalsModel) applyAction(msg tui.ProposalActionMsg) {
	for i := range m.proposals {
		if m.proposals[i].ID == msg.ID {
			m.proposals[i].Status = msg.Status
			if msg.IssueNumber != 0 {
				m.proposals[i].GitHubIssueNumber = msg.IssueNumber
			}
			return
		}
	}
}

// View renders the proposals view.
func (m ProposalsModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("GitHub Issue Proposals")
	b.WriteString(header)
	b.WriteString("\n")
	if m.stats != nil {
		b.WriteString(tui.DimStyle.Render(fmt.Sprintf(
			"%s · %d open issues · %d open PRs · %d stars · %s",
			m.stats.Name, m.stats.OpenIssues, m.stats.OpenPulls, m.stats.Stars, m.stats.Language,
		)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading proposals...")
	case m.errMsg != "":
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("r: Retry"))
	case len(m.proposals) == 0:
		b.WriteString(tui.DimStyle.Render("No proposals waiting for review."))
	default:
		for i, p := range m.proposals {
			cursor := "  "
			if i == m.selected {
				cursor = tui.SelectedStyle.Render("> ")
			}
			severity := tui.SeverityStyle(p.Severity).Render(p.Severity)
			status := tui.StatusStyle(p.Status).Render(p.Status)
			line := fmt.Sprintf("%s[%s] [%s] %s", cursor, severity, status, p.Title)
			if p.Status == api.ProposalPublished && p.GitHubIssueNumber != 0 {
				line += tui.SuccessStyle.Render(fmt.Sprintf("  #%d", p.GitHubIssueNumber))
			}
			if p.ID == m.processingID {
				line += fmt.Sprintf("  %s", m.spinner.View())
			}
			b.WriteString(line)
			b.WriteString("\n")

			if i == m.selected {
				b.WriteString(tui.DimStyle.Render("    " + p.Description))
				b.WriteString("\n")
			}
		}
		if m.actionErr != "" {
			b.WriteString("\n")
			b.WriteString(tui.ErrorStyle.Render(m.actionErr))
		}
	}

	b.WriteString("\n\n")
	footer := tui.DimStyle.Render("↑/↓: Navigate · a: Approve · x: Reject · r: Refresh · Tab: Switch screens")
	b.WriteString(footer)

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
