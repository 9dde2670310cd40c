// Package views provides the TUI screens for the Atim dashboard.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/tui"
	"github.com/atim-dev/atim/internal/tui/commands"
)

// ============================================================================
// ChatModel
// ============================================================================

// ChatModel is the view model for the assistant chat screen. Sending is
// optimistic: the user's message joins the transcript immediately and the
// reply (real or fallback) always follows, so each send grows the transcript
// by exactly two entries.
type ChatModel struct {
	deps          tui.Deps
	messages      []api.ChatMessage
	textarea      textarea.Model
	viewport      viewport.Model
	referenceID   string
	referenceType string
	isLoading     bool
	sending       bool
	errMsg        string
	spinner       spinner.Model
	width         int
	height        int
}

// NewChatModel creates a new ChatModel. referenceID/referenceType scope the
// conversation to one issue or PR; empty values mean the full transcript.
func NewChatModel(deps tui.Deps, referenceID, referenceType string, width, height int) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Ask Atim about the Nilotic Network... (Enter to send)"
	ta.CharLimit = 5000
	ta.SetWidth(width - 8)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vpHeight := height - 14
	if vpHeight < 5 {
		vpHeight = 5
	}
	vpWidth := width - 8
	if vpWidth < 20 {
		vpWidth = 20
	}
	vp := viewport.New(vpWidth, vpHeight)

	return ChatModel{
		deps:          deps,
		textarea:      ta,
		viewport:      vp,
		referenceID:   referenceID,
		referenceType: referenceType,
		isLoading:     true,
		spinner:       sp,
		width:         width,
		height:        height,
	}
}

// Messages returns the current transcript.
func (m ChatModel) Messages() []api.ChatMessage {
	return m.messages
}

// Init loads the transcript.
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(
		commands.LoadChatCmd(m.deps, m.referenceID, m.referenceType),
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages for the chat view.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == tui.KeyEnter && !m.sending {
			content := strings.TrimSpace(m.textarea.Value())
			if content == "" {
				return m, nil
			}

			// Optimistic append: the user's message is part of the
			// transcript before the backend has seen it.
			m.messages = append(m.messages, api.ChatMessage{
				Sender:        api.SenderUser,
				Content:       content,
				ReferenceID:   m.referenceID,
				ReferenceType: m.referenceType,
			})
			m.refreshViewport()
			m.textarea.Reset()
			m.sending = true

			return m, tea.Batch(
				commands.SendChatCmd(m.deps, content, m.referenceID, m.referenceType),
				m.spinner.Tick,
			)
		}

	case tui.ChatHistoryMsg:
		m.isLoading = false
		if msg.Err != nil && len(msg.Messages) == 0 {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.messages = msg.Messages
		m.refreshViewport()
		return m, nil

	case tui.ChatReplyMsg:
		// A reply always arrives, synthesized locally when the backend
		// failed. The transcript never loses a turn.
		m.messages = append(m.messages, msg.Reply)
		m.refreshViewport()
		m.sending = false
		return m, nil

	case spinner.TickMsg:
		if m.isLoading || m.sending {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := msg.Height - 14
		if vpHeight < 5 {
			vpHeight = 5
		}
		vpWidth := msg.Width - 8
		if vpWidth < 20 {
			vpWidth = 20
		}
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
		m.textarea.SetWidth(vpWidth)
		m.refreshViewport()
		return m, nil
	}

	if !m.sending {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *ChatModel) refreshViewport() {
	m.viewport.SetContent(formatTranscript(m.messages))
	m.viewport.GotoBottom()
}

// View renders the chat view.
func (m ChatModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Chat with Atim")
	if m.referenceID != "" {
		header += tui.DimStyle.Render(fmt.Sprintf("  (%s %s)", m.referenceType, m.referenceID))
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	switch {
	case m.isLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading conversation...")
		b.WriteString("\n\n")
	case m.errMsg != "":
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
	default:
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
	}

	if m.sending {
		b.WriteString(fmt.Sprintf("%s Atim is thinking...", m.spinner.View()))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render(m.textarea.View()))
	} else {
		b.WriteString(m.textarea.View())
	}

	b.WriteString("\n\n")
	footer := tui.DimStyle.Render("Enter: Send · Tab: Switch screens")
	b.WriteString(footer)

	content := b.String()
	return tui.BoxStyle.Width(m.width - 4).Render(content)
}

// formatTranscript formats the conversation for the viewport.
func formatTranscript(messages []api.ChatMessage) string {
	if len(messages) == 0 {
		return tui.DimStyle.Render("No messages yet. Ask Atim anything about the chain.")
	}

	userStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)
	atimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Bold(true)

	var b strings.Builder
	for i, msg := range messages {
		switch msg.Sender {
		case api.SenderUser:
			b.WriteString(userStyle.Render("You: "))
		case api.SenderAtim:
			b.WriteString(atimStyle.Render("Atim: "))
		default:
			b.WriteString(tui.DimStyle.Render(msg.Sender + ": "))
		}
		b.WriteString(msg.Content)

		if msg.Metadata != nil && msg.Metadata.ReasoningType != "" {
			annotation := fmt.Sprintf("\nMeTTa %s", strings.ReplaceAll(msg.Metadata.ReasoningType, "_", " "))
			if msg.Metadata.Confidence > 0 {
				annotation += fmt.Sprintf(" · %.0f%% confidence", msg.Metadata.Confidence*100)
			}
			b.WriteString(tui.DimStyle.Render(annotation))
		}

		if i < len(messages)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
