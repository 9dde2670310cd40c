// Package views provides the TUI screens for the Atim dashboard.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atim-dev/atim/internal/tui"
	"github.com/atim-dev/atim/internal/tui/commands"
)

const (
	fieldEmail = iota
	fieldPassword
)

// ============================================================================
// LoginModel
// ============================================================================

// LoginModel is the view model for the login screen.
type LoginModel struct {
	deps     tui.Deps
	email    textinput.Model
	password textinput.Model
	focus    int
	loading  bool
	errMsg   string
	spinner  spinner.Model
	width    int
	height   int
}

// NewLoginModel creates a new LoginModel.
func NewLoginModel(deps tui.Deps, width, height int) LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 256
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return LoginModel{
		deps:     deps,
		email:    email,
		password: password,
		spinner:  sp,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the login view.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login view.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case tui.KeyEnter:
			if m.focus == fieldEmail {
				return m.setFocus(fieldPassword), nil
			}
			email := strings.TrimSpace(m.email.Value())
			password := m.password.Value()
			if email == "" || password == "" {
				m.errMsg = "email and password are required"
				return m, nil
			}
			m.loading = true
			m.errMsg = ""
			return m, tea.Batch(
				commands.LoginCmd(m.deps, email, password),
				m.spinner.Tick,
			)
		case tui.KeyUp:
			return m.setFocus(fieldEmail), nil
		case tui.KeyDown:
			return m.setFocus(fieldPassword), nil
		}

	case tui.LoginResultMsg:
		m.loading = false
		if !msg.OK {
			m.errMsg = msg.Session.Err
			return m, nil
		}
		// Successful login; the app re-runs the guard on the session change.
		return m, func() tea.Msg {
			return tui.SessionChangedMsg{Session: msg.Session}
		}

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m LoginModel) setFocus(field int) LoginModel {
	m.focus = field
	if field == fieldEmail {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.email.Blur()
		m.password.Focus()
	}
	return m
}

// View renders the login view.
func (m LoginModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Sign in")
	b.WriteString(header)
	b.WriteString("\n\n")

	b.WriteString(m.email.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Signing in...")
		b.WriteString("\n\n")
	} else if m.errMsg != "" {
		b.WriteString(tui.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
	}

	footer := tui.DimStyle.Render("Enter: Submit · ↑/↓: Switch field · Tab: Switch screens")
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
