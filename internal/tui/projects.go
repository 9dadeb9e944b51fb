package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tsystem/trackdesk/internal/controller"
	"github.com/tsystem/trackdesk/internal/dialog"
	"github.com/tsystem/trackdesk/internal/model"
	"github.com/tsystem/trackdesk/internal/nav"
)

// projectsModel is the projects list: a table over the controller's
// filtered snapshot, a free-text name filter and a status cycle.
type projectsModel struct {
	tbl       table.Model
	rows      []model.Project
	filter    textinput.Model
	filtering bool
	status    model.ProjectStatus
	confirmID string
}

func newProjectsModel() projectsModel {
	ti := textinput.New()
	ti.Placeholder = "filter by name"
	ti.CharLimit = 255

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 32},
			{Title: "Status", Width: 10},
			{Title: "Created", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return projectsModel{tbl: tbl, filter: ti}
}

func (m *projectsModel) resize(w, h int) {
	if h > 8 {
		m.tbl.SetHeight(h - 8)
	}
	if w > 40 {
		m.tbl.SetColumns([]table.Column{
			{Title: "Name", Width: w - 34},
			{Title: "Status", Width: 10},
			{Title: "Created", Width: 16},
		})
	}
}

func (m *projectsModel) setRows(items []model.Project) {
	m.rows = items
	rows := make([]table.Row, len(items))
	for i, p := range items {
		rows[i] = table.Row{p.Name, string(p.Status), p.CreatedAt.Format("2006-01-02 15:04")}
	}
	m.tbl.SetRows(rows)
	if m.tbl.Cursor() >= len(rows) && len(rows) > 0 {
		m.tbl.SetCursor(len(rows) - 1)
	}
}

func (m *projectsModel) selected() (model.Project, bool) {
	i := m.tbl.Cursor()
	if i < 0 || i >= len(m.rows) {
		return model.Project{}, false
	}
	return m.rows[i], true
}

// cycleStatus walks any -> ACTIVE -> ARCHIVED -> any.
func (m *projectsModel) cycleStatus() {
	switch m.status {
	case "":
		m.status = model.ProjectStatusActive
	case model.ProjectStatusActive:
		m.status = model.ProjectStatusArchived
	default:
		m.status = ""
	}
}

func (m projectsModel) view() string {
	head := m.filterLine()
	body := m.tbl.View()
	help := helpStyle.Render("enter open  n new  e edit  d delete  / filter  s status  u users  ctrl+l logout")
	if m.confirmID != "" {
		help = errorStyle.Render("delete project? y/n")
	}
	return head + "\n" + body + "\n" + help
}

func (m projectsModel) filterLine() string {
	status := "any"
	if m.status != "" {
		status = string(m.status)
	}
	line := labelStyle.Render("status: ") + status
	if m.filtering || m.filter.Value() != "" {
		line += "  " + labelStyle.Render("name: ") + m.filter.View()
	}
	return line
}

func (a App) updateProjects(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)

	// Text filter takes all keys while active.
	if a.projects.filtering && isKey {
		switch key.String() {
		case "enter", "esc":
			a.projects.filtering = false
			a.projects.filter.Blur()
			if key.String() == "esc" {
				a.projects.filter.SetValue("")
			}
			a.applyProjectFilter()
			return a, nil
		default:
			var cmd tea.Cmd
			a.projects.filter, cmd = a.projects.filter.Update(msg)
			a.applyProjectFilter()
			return a, cmd
		}
	}

	if a.projects.confirmID != "" && isKey {
		id := a.projects.confirmID
		a.projects.confirmID = ""
		if key.String() == "y" {
			deps := a.deps
			return a, a.mutateCmd(nav.RouteProjects, "Project deleted", func(ctx context.Context) error {
				return deps.Projects.Delete(ctx, id)
			})
		}
		return a, nil
	}

	if isKey {
		switch key.String() {
		case "enter":
			p, ok := a.projects.selected()
			if !ok {
				return a, nil
			}
			a.deps.Tickets.SetProject(p.ID)
			return a, a.navigate(nav.RouteTickets)
		case "n":
			a.openProjectDialog(dialog.NewProjectForm())
			return a, a.overlay.form.Init()
		case "e":
			p, ok := a.projects.selected()
			if !ok {
				return a, nil
			}
			a.openProjectDialog(dialog.EditProjectForm(p))
			return a, a.overlay.form.Init()
		case "d":
			if p, ok := a.projects.selected(); ok {
				a.projects.confirmID = p.ID
			}
			return a, nil
		case "/":
			a.projects.filtering = true
			return a, a.projects.filter.Focus()
		case "s":
			a.projects.cycleStatus()
			a.applyProjectFilter()
			return a, nil
		case "r":
			return a, a.loadCmd(nav.RouteProjects)
		case "u":
			return a, a.navigate(nav.RouteUsers)
		case "ctrl+l":
			return a, a.logout()
		}
	}

	var cmd tea.Cmd
	a.projects.tbl, cmd = a.projects.tbl.Update(msg)
	return a, cmd
}

// applyProjectFilter pushes the view's filter state into the
// controller and re-reads the filtered snapshot. Purely local.
func (a *App) applyProjectFilter() {
	a.deps.Projects.SetFilter(controller.ProjectFilter{
		Name:   a.projects.filter.Value(),
		Status: a.projects.status,
	})
	a.projects.setRows(a.deps.Projects.Items())
}

func (a *App) openProjectDialog(f *dialog.ProjectForm) {
	title := "New project"
	status := "Project created"
	if f.Mode == dialog.ModeEdit {
		title = "Edit project"
		status = "Project updated"
	}
	deps := a.deps
	a.overlay = newDialog(title,
		func() *huh.Form { return projectFormFields(f) },
		func() (tea.Cmd, dialog.FieldErrors) {
			req, err := f.Payload()
			if err != nil {
				return nil, asFieldErrors(err)
			}
			if f.Mode == dialog.ModeEdit {
				id := f.ProjectID
				return a.mutateCmd(nav.RouteProjects, status, func(ctx context.Context) error {
					return deps.Projects.Update(ctx, id, req)
				}), nil
			}
			return a.mutateCmd(nav.RouteProjects, status, func(ctx context.Context) error {
				return deps.Projects.Create(ctx, req)
			}), nil
		})
}

// asFieldErrors narrows a payload error back to field messages.
func asFieldErrors(err error) dialog.FieldErrors {
	var fe dialog.FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return dialog.FieldErrors{"form": err.Error()}
}
