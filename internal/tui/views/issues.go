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
// IssuesModel
// ============================================================================

// IssuesModel is the view model for the work screen. It shows the detected
// issues by default; 'p' toggles to Atim's pull requests.
type IssuesModel struct {
	deps     tui.Deps
	issues   []api.Issue
	prs      []api.PullRequest
	showPRs  bool
	selected int
	expanded bool
	loading  bool
	errMsg   string
	spinner  spinner.Model
	width    int
	height   int
}

// NewIssuesModel creates a new IssuesModel.
func NewIssuesModel(deps tui.Deps, width, height int) IssuesModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return IssuesModel{
		deps:    deps,
		loading: true,
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Init starts the issues load.
func (m IssuesModel) Init() tea.Cmd {
	return tea.Batch(commands.LoadIssuesCmd(m.deps), m.spinner.Tick)
}

// reload re-issues the read for the active list.
func (m *IssuesModel) reload() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	m.selected = 0
	m.expanded = false
	if m.showPRs {
		return tea.Batch(commands.LoadPullRequestsCmd(m.deps), m.spinner.Tick)
	}
	return tea.Batch(commands.LoadIssuesCmd(m.deps), m.spinner.Tick)
}

func (m IssuesModel) listLen() int {
	if m.showPRs {
		return len(m.prs)
	}
	return len(m.issues)
}

// Update handles messages for the issues view.
func (m IssuesModel) Update(msg tea.Msg) (IssuesModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if !m.loading {
				return m, m.reload()
			}
		case "p":
			if !m.loading {
				m.showPRs = !m.showPRs
				return m, m.reload()
			}
		case tui.KeyUp, "k":
			if m.selected > 0 {
				m.selected--
				m.expanded = false
			}
		case tui.KeyDown, "j":
			if m.selected < m.listLen()-1 {
				m.selected++
				m.expanded = false
			}
		case tui.KeyEnter:
			if m.listLen() > 0 {
				m.expanded = !m.expanded
			}
		}

	case tui.IssuesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.issues = msg.Issues
		if m.selected >= len(m.issues) {
			m.selected = 0
		}
		return m, nil

	case tui.PullRequestsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.prs = msg.PullRequests
		if m.selected >= len(m.prs) {
			m.selected = 0
		}
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

// View renders the issues view.
func (m IssuesModel) View() string {
	var b strings.Builder

	title := "Detected Issues"
	if m.showPRs {
		title = "Pull Requests"
	}
	b.WriteString(tui.TitleStyle.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading...")
	case m.errMsg != "":
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("r: Retry"))
	case m.showPRs:
		b.WriteString(m.renderPRs())
	default:
		b.WriteString(m.renderIssues())
	}

	b.WriteString("\n\n")
	footer := tui.DimStyle.Render("↑/↓: Navigate · Enter: Expand · p: Issues/PRs · r: Refresh · Tab: Switch screens")
	b.WriteString(footer)

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}

func (m IssuesModel) renderIssues() string {
	if len(m.issues) == 0 {
		return tui.DimStyle.Render("No issues detected.")
	}

	var b strings.Builder
	open, fixed, high := issueCounts(m.issues)
	b.WriteString(fmt.Sprintf("%d open · %d fixed · %d high severity\n\n", open, fixed, high))

	for i, issue := range m.issues {
		cursor := "  "
		if i == m.selected {
			cursor = tui.SelectedStyle.Render("> ")
		}
		severity := tui.SeverityStyle(issue.Severity).Render(issue.Severity)
		status := tui.StatusStyle(issue.Status).Render(issue.Status)
		b.WriteString(fmt.Sprintf("%s[%s] [%s] %s\n", cursor, severity, status, issue.Title))

		if i == m.selected && m.expanded {
			b.WriteString("\n")
			b.WriteString(tui.DimStyle.Render(fmt.Sprintf("    %s:%d", issue.FilePath, issue.LineNumber)))
			b.WriteString("\n    ")
			b.WriteString(issue.Description)
			if issue.SuggestedFix != "" {
				b.WriteString("\n    ")
				b.WriteString(tui.SuccessStyle.Render("Suggested fix: "))
				b.WriteString(issue.SuggestedFix)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m IssuesModel) renderPRs() string {
	if len(m.prs) == 0 {
		return tui.DimStyle.Render("No pull requests yet.")
	}

	var b strings.Builder
	for i, pr := range m.prs {
		cursor := "  "
		if i == m.selected {
			cursor = tui.SelectedStyle.Render("> ")
		}
		status := tui.StatusStyle(pr.Status).Render(pr.Status)
		b.WriteString(fmt.Sprintf("%s[%s] #%d %s\n", cursor, status, pr.GitHubID, pr.Title))

		if i == m.selected && m.expanded {
			b.WriteString("\n    ")
			b.WriteString(pr.Description)
			b.WriteString("\n")
			b.WriteString(tui.DimStyle.Render("    " + pr.HTMLURL))
			for _, fb := range pr.Feedback {
				verdict := tui.WarningStyle.Render("changes requested")
				if fb.Approved {
					verdict = tui.SuccessStyle.Render("approved")
				}
				b.WriteString(fmt.Sprintf("\n    [%s] %s", verdict, fb.Comment))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// issueCounts returns the summary-line counters.
func issueCounts(issues []api.Issue) (open, fixed, high int) {
	for _, issue := range issues {
		switch issue.Status {
		case api.IssueOpen:
			open++
		case api.IssueFixed:
			fixed++
		}
		if issue.Severity == api.SeverityHigh || issue.Severity == api.SeverityCritical {
			high++
		}
	}
	return open, fixed, high
}
