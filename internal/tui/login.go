package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tsystem/trackdesk/internal/nav"
)

type loginModel struct {
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 200
	password.Width = 40

	return loginModel{email: email, password: password}
}

func (m *loginModel) focusCmd() tea.Cmd {
	m.focus = 0
	m.password.Blur()
	return m.email.Focus()
}

func (a App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			a.login.focus = (a.login.focus + 1) % 2
			if a.login.focus == 0 {
				a.login.password.Blur()
				return a, a.login.email.Focus()
			}
			a.login.email.Blur()
			return a, a.login.password.Focus()

		case "enter":
			if a.login.submitting {
				return a, nil
			}
			email := strings.TrimSpace(a.login.email.Value())
			password := a.login.password.Value()
			if email == "" || password == "" {
				a.lastErr = "Email and password are required"
				return a, nil
			}
			a.login.submitting = true
			a.lastErr = ""
			deps := a.deps
			return a, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
				defer cancel()
				id, err := deps.Session.Login(ctx, email, password)
				return loginResultMsg{identity: id, err: err}
			}

		case "ctrl+r":
			return a, a.navigate(nav.RouteRegister)
		}
	}

	if res, ok := msg.(loginResultMsg); ok {
		a.login.submitting = false
		if res.err != nil {
			a.lastErr = res.err.Error()
			return a, nil
		}
		a.status = "Signed in as " + res.identity.Email
		return a, a.navigate(nav.RouteProjects)
	}

	var cmd tea.Cmd
	if a.login.focus == 0 {
		a.login.email, cmd = a.login.email.Update(msg)
	} else {
		a.login.password, cmd = a.login.password.Update(msg)
	}
	return a, cmd
}

func (m loginModel) view() string {
	rows := []string{
		labelStyle.Render("Sign in"),
		"",
		m.email.View(),
		m.password.View(),
		"",
	}
	if m.submitting {
		rows = append(rows, statusStyle.Render("Signing in..."))
	}
	rows = append(rows, helpStyle.Render("enter sign in · tab switch field · ctrl+r register · ctrl+c quit"))
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
