package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tsystem/trackdesk/internal/dialog"
	"github.com/tsystem/trackdesk/internal/model"
	"github.com/tsystem/trackdesk/internal/nav"
)

// usersModel is the admin-only user management screen.
type usersModel struct {
	tbl       table.Model
	rows      []model.User
	query     textinput.Model
	filtering bool
	confirmID string
}

func newUsersModel() usersModel {
	ti := textinput.New()
	ti.Placeholder = "filter by email or name"
	ti.CharLimit = 255

	tbl := table.New(
		table.WithColumns(userColumns(0)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return usersModel{tbl: tbl, query: ti}
}

func userColumns(w int) []table.Column {
	email := 28
	if w > 84 {
		email = w - 56
	}
	return []table.Column{
		{Title: "Email", Width: email},
		{Title: "Name", Width: 16},
		{Title: "Surname", Width: 16},
		{Title: "Role", Width: 16},
		{Title: "Blocked", Width: 7},
	}
}

func (m *usersModel) resize(w, h int) {
	if h > 8 {
		m.tbl.SetHeight(h - 8)
	}
	m.tbl.SetColumns(userColumns(w))
}

func (m *usersModel) setRows(items []model.User) {
	m.rows = items
	rows := make([]table.Row, len(items))
	for i, u := range items {
		blocked := ""
		if u.Blocked {
			blocked = "yes"
		}
		rows[i] = table.Row{u.Email, u.Name, u.Surname, string(u.Role), blocked}
	}
	m.tbl.SetRows(rows)
	if m.tbl.Cursor() >= len(rows) && len(rows) > 0 {
		m.tbl.SetCursor(len(rows) - 1)
	}
}

func (m *usersModel) selected() (model.User, bool) {
	i := m.tbl.Cursor()
	if i < 0 || i >= len(m.rows) {
		return model.User{}, false
	}
	return m.rows[i], true
}

func (m usersModel) view() string {
	head := labelStyle.Render("users")
	if m.filtering || m.query.Value() != "" {
		head += "  " + m.query.View()
	}
	help := helpStyle.Render("n new  e edit  d delete  b block/unblock  / filter  esc back  ctrl+l logout")
	if m.confirmID != "" {
		help = errorStyle.Render("delete user? y/n")
	}
	return head + "\n" + m.tbl.View() + "\n" + help
}

func (a App) updateUsers(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)

	if a.users.filtering && isKey {
		switch key.String() {
		case "enter", "esc":
			a.users.filtering = false
			a.users.query.Blur()
			if key.String() == "esc" {
				a.users.query.SetValue("")
			}
			a.applyUserFilter()
			return a, nil
		default:
			var cmd tea.Cmd
			a.users.query, cmd = a.users.query.Update(msg)
			a.applyUserFilter()
			return a, cmd
		}
	}

	if a.users.confirmID != "" && isKey {
		id := a.users.confirmID
		a.users.confirmID = ""
		if key.String() == "y" {
			deps := a.deps
			return a, a.mutateCmd(nav.RouteUsers, "User deleted", func(ctx context.Context) error {
				return deps.Users.Delete(ctx, id)
			})
		}
		return a, nil
	}

	if isKey {
		switch key.String() {
		case "n":
			a.openUserDialog(dialog.NewUserForm())
			return a, a.overlay.form.Init()
		case "e":
			u, ok := a.users.selected()
			if !ok {
				return a, nil
			}
			a.openUserDialog(dialog.EditUserForm(u))
			return a, a.overlay.form.Init()
		case "d":
			if u, ok := a.users.selected(); ok {
				a.users.confirmID = u.ID
			}
			return a, nil
		case "b":
			u, ok := a.users.selected()
			if !ok {
				return a, nil
			}
			deps := a.deps
			if u.Blocked {
				return a, a.mutateCmd(nav.RouteUsers, "User unblocked", func(ctx context.Context) error {
					return deps.Users.Unblock(ctx, u.ID)
				})
			}
			return a, a.mutateCmd(nav.RouteUsers, "User blocked", func(ctx context.Context) error {
				return deps.Users.Block(ctx, u.ID)
			})
		case "/":
			a.users.filtering = true
			return a, a.users.query.Focus()
		case "r":
			return a, a.loadCmd(nav.RouteUsers)
		case "esc":
			return a, a.navigate(nav.RouteProjects)
		case "ctrl+l":
			return a, a.logout()
		}
	}

	var cmd tea.Cmd
	a.users.tbl, cmd = a.users.tbl.Update(msg)
	return a, cmd
}

func (a *App) applyUserFilter() {
	a.deps.Users.SetQuery(a.users.query.Value())
	a.users.setRows(a.deps.Users.Items())
}

func (a *App) openUserDialog(f *dialog.UserForm) {
	title := "New user"
	status := "User created"
	if f.Mode == dialog.ModeEdit {
		title = "Edit user"
		status = "User updated"
	}
	deps := a.deps
	a.overlay = newDialog(title,
		func() *huh.Form { return userFormFields(f) },
		func() (tea.Cmd, dialog.FieldErrors) {
			req, err := f.Payload()
			if err != nil {
				return nil, asFieldErrors(err)
			}
			if f.Mode == dialog.ModeEdit {
				id := f.UserID
				return a.mutateCmd(nav.RouteUsers, status, func(ctx context.Context) error {
					return deps.Users.Update(ctx, id, req)
				}), nil
			}
			return a.mutateCmd(nav.RouteUsers, status, func(ctx context.Context) error {
				return deps.Users.Create(ctx, req)
			}), nil
		})
}
