package tui

import "github.com/charmbracelet/lipgloss"

// Color constants matching the Atim web dashboard aesthetic.
const (
	primaryColor   = "#3B82F6" // Blue
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// SelectedStyle highlights selected items in primary color.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// ActiveTabStyle renders the active navigation tab.
	ActiveTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(primaryColor)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 2)

	// InactiveTabStyle renders inactive navigation tabs.
	InactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#374151")).
				Foreground(lipgloss.Color("#9CA3AF")).
				Padding(0, 2)

	// ColumnStyle frames one kanban column.
	ColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(dimColor)).
			Padding(0, 1)
)

// SeverityStyle returns the badge style for an issue/proposal severity.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "critical", "high":
		return ErrorStyle
	case "medium":
		return WarningStyle
	default:
		return DimStyle
	}
}

// StatusStyle returns the badge style for a record status.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "open", "pending", "todo":
		return WarningStyle
	case "fixed", "merged", "done", "published", "approved":
		return SuccessStyle
	case "rejected", "closed":
		return ErrorStyle
	case "in-progress":
		return SelectedStyle
	default:
		return DimStyle
	}
}
