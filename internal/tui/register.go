package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tsystem/trackdesk/internal/dialog"
	"github.com/tsystem/trackdesk/internal/nav"
)

type registerModel struct {
	inputs     [4]textinput.Model // email, name, surname, password
	focus      int
	submitting bool
	fieldErrs  dialog.FieldErrors
}

func newRegisterModel() registerModel {
	var m registerModel
	placeholders := [4]string{"email", "name", "surname", "password"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[3].EchoMode = textinput.EchoPassword
	return m
}

func (m *registerModel) focusCmd() tea.Cmd {
	m.focus = 0
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m.inputs[0].Focus()
}

func (m *registerModel) form() *dialog.RegisterForm {
	return &dialog.RegisterForm{
		Email:    m.inputs[0].Value(),
		Name:     m.inputs[1].Value(),
		Surname:  m.inputs[2].Value(),
		Password: m.inputs[3].Value(),
	}
}

func (a App) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return a, a.register.moveFocus(1)
		case "shift+tab", "up":
			return a, a.register.moveFocus(-1)

		case "esc":
			return a, a.navigate(nav.RouteLogin)

		case "enter":
			if a.register.submitting {
				return a, nil
			}
			// Client-side validation gates the network call.
			payload, err := a.register.form().Payload()
			if err != nil {
				a.register.fieldErrs, _ = err.(dialog.FieldErrors)
				return a, nil
			}
			a.register.fieldErrs = nil
			a.register.submitting = true
			deps := a.deps
			return a, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
				defer cancel()
				return registerResultMsg{err: deps.Auth.Register(ctx, payload)}
			}
		}
	}

	if res, ok := msg.(registerResultMsg); ok {
		a.register.submitting = false
		if res.err != nil {
			a.lastErr = res.err.Error()
			return a, nil
		}
		a.status = "Account created, please sign in"
		return a, a.navigate(nav.RouteLogin)
	}

	var cmd tea.Cmd
	i := a.register.focus
	a.register.inputs[i], cmd = a.register.inputs[i].Update(msg)
	return a, cmd
}

func (m *registerModel) moveFocus(dir int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + dir + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m registerModel) view() string {
	rows := []string{labelStyle.Render("Create account"), ""}
	fields := [4]string{"email", "name", "surname", "password"}
	for i, in := range m.inputs {
		rows = append(rows, in.View())
		if msg, ok := m.fieldErrs[fields[i]]; ok {
			rows = append(rows, fieldErrStyle.Render(fields[i]+" "+msg))
		}
	}
	rows = append(rows, "")
	if m.submitting {
		rows = append(rows, statusStyle.Render("Creating account..."))
	}
	rows = append(rows, helpStyle.Render("enter submit · tab next field · esc back to login"))
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
