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

// ============================================================================
// RegisterModel
// ============================================================================

// RegisterModel is the view model for the account registration screen.
type RegisterModel struct {
	deps      tui.Deps
	email     textinput.Model
	password  textinput.Model
	focus     int
	loading   bool
	submitted bool
	errMsg    string
	spinner   spinner.Model
	width     int
	height    int
}

// NewRegisterModel creates a new RegisterModel.
func NewRegisterModel(deps tui.Deps, width, height int) RegisterModel {
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

	return RegisterModel{
		deps:     deps,
		email:    email,
		password: password,
		spinner:  sp,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the register view.
func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the register view.
func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case tui.KeyEnter:
			if m.submitted {
				return m, func() tea.Msg {
					return NavigateMsg{Route: tui.RouteLogin}
				}
			}
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
				commands.RegisterCmd(m.deps, email, password),
				m.spinner.Tick,
			)
		case tui.KeyUp:
			return m.setFocus(fieldEmail), nil
		case tui.KeyDown:
			return m.setFocus(fieldPassword), nil
		}

	case tui.RegisterResultMsg:
		m.loading = false
		if !msg.OK {
			m.errMsg = msg.Session.Err
			return m, nil
		}
		// Registration accepted. The user still has to verify by email and
		// log in, so stay here and show the instructions.
		m.submitted = true
		return m, nil

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

func (m RegisterModel) setFocus(field int) RegisterModel {
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

// View renders the register view.
func (m RegisterModel) View() string {
	var b strings.Builder

	header := tui.TitleStyle.Render("Create account")
	b.WriteString(header)
	b.WriteString("\n\n")

	if m.submitted {
		b.WriteString(tui.SuccessStyle.Render("Account requested."))
		b.WriteString("\n\n")
		b.WriteString("Check your email for the verification link, then sign in.")
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Enter: Go to sign in"))
	} else {
		b.WriteString(m.email.View())
		b.WriteString("\n")
		b.WriteString(m.password.View())
		b.WriteString("\n\n")

		if m.loading {
			b.WriteString(m.spinner.View())
			b.WriteString(" Submitting...")
			b.WriteString("\n\n")
		} else if m.errMsg != "" {
			b.WriteString(tui.ErrorStyle.Render(m.errMsg))
			b.WriteString("\n\n")
		}

		footer := tui.DimStyle.Render("Enter: Submit · ↑/↓: Switch field · Tab: Switch screens")
		b.WriteString(footer)
	}

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
