package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tsystem/trackdesk/internal/controller"
	"github.com/tsystem/trackdesk/internal/dialog"
	"github.com/tsystem/trackdesk/internal/model"
	"github.com/tsystem/trackdesk/internal/nav"
)

// ticketsModel is the ticket list of the currently opened project.
// The categorical filters cycle through their enum values plus "any";
// the query input matches id and name.
type ticketsModel struct {
	tbl       table.Model
	rows      []model.Ticket
	query     textinput.Model
	filtering bool
	ftype     model.TicketType
	fprio     model.TicketPriority
	fstate    model.TicketState
	confirmID string
}

func newTicketsModel() ticketsModel {
	ti := textinput.New()
	ti.Placeholder = "filter by id or name"
	ti.CharLimit = 255

	tbl := table.New(
		table.WithColumns(ticketColumns(0)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return ticketsModel{tbl: tbl, query: ti}
}

func ticketColumns(w int) []table.Column {
	name := 30
	if w > 76 {
		name = w - 46
	}
	return []table.Column{
		{Title: "Name", Width: name},
		{Title: "Type", Width: 8},
		{Title: "Priority", Width: 8},
		{Title: "State", Width: 12},
		{Title: "Assignee", Width: 12},
	}
}

func (m *ticketsModel) resize(w, h int) {
	if h > 8 {
		m.tbl.SetHeight(h - 8)
	}
	m.tbl.SetColumns(ticketColumns(w))
}

func (m *ticketsModel) setRows(items []model.Ticket) {
	m.rows = items
	rows := make([]table.Row, len(items))
	for i, t := range items {
		rows[i] = table.Row{t.Name, string(t.Type), string(t.Priority), string(t.State), t.AssigneeID}
	}
	m.tbl.SetRows(rows)
	if m.tbl.Cursor() >= len(rows) && len(rows) > 0 {
		m.tbl.SetCursor(len(rows) - 1)
	}
}

func (m *ticketsModel) selected() (model.Ticket, bool) {
	i := m.tbl.Cursor()
	if i < 0 || i >= len(m.rows) {
		return model.Ticket{}, false
	}
	return m.rows[i], true
}

func (m *ticketsModel) cycleType() {
	switch m.ftype {
	case "":
		m.ftype = model.TicketTypeBug
	case model.TicketTypeBug:
		m.ftype = model.TicketTypeFeature
	case model.TicketTypeFeature:
		m.ftype = model.TicketTypeTask
	default:
		m.ftype = ""
	}
}

func (m *ticketsModel) cyclePriority() {
	switch m.fprio {
	case "":
		m.fprio = model.TicketPriorityLow
	case model.TicketPriorityLow:
		m.fprio = model.TicketPriorityMedium
	case model.TicketPriorityMedium:
		m.fprio = model.TicketPriorityHigh
	default:
		m.fprio = ""
	}
}

func (m *ticketsModel) cycleState() {
	switch m.fstate {
	case "":
		m.fstate = model.TicketStateOpen
	case model.TicketStateOpen:
		m.fstate = model.TicketStateInProgress
	case model.TicketStateInProgress:
		m.fstate = model.TicketStateDone
	default:
		m.fstate = ""
	}
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

func (m ticketsModel) view(projectName string) string {
	head := labelStyle.Render("project: ") + projectName +
		"  " + labelStyle.Render("type: ") + orAny(string(m.ftype)) +
		"  " + labelStyle.Render("priority: ") + orAny(string(m.fprio)) +
		"  " + labelStyle.Render("state: ") + orAny(string(m.fstate))
	if m.filtering || m.query.Value() != "" {
		head += "  " + m.query.View()
	}
	help := helpStyle.Render("enter open  n new  e edit  d delete  / filter  t type  p priority  s state  esc back")
	if m.confirmID != "" {
		help = errorStyle.Render("delete ticket? y/n")
	}
	return head + "\n" + m.tbl.View() + "\n" + help
}

func (a App) updateTickets(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)

	if a.tickets.filtering && isKey {
		switch key.String() {
		case "enter", "esc":
			a.tickets.filtering = false
			a.tickets.query.Blur()
			if key.String() == "esc" {
				a.tickets.query.SetValue("")
			}
			a.applyTicketFilter()
			return a, nil
		default:
			var cmd tea.Cmd
			a.tickets.query, cmd = a.tickets.query.Update(msg)
			a.applyTicketFilter()
			return a, cmd
		}
	}

	if a.tickets.confirmID != "" && isKey {
		id := a.tickets.confirmID
		a.tickets.confirmID = ""
		if key.String() == "y" {
			deps := a.deps
			return a, a.mutateCmd(nav.RouteTickets, "Ticket deleted", func(ctx context.Context) error {
				return deps.Tickets.Delete(ctx, id)
			})
		}
		return a, nil
	}

	if isKey {
		switch key.String() {
		case "enter":
			t, ok := a.tickets.selected()
			if !ok {
				return a, nil
			}
			a.deps.Comments.SetTicket(t.ProjectID, t.ID)
			a.detail.setTicket(t)
			return a, a.navigate(nav.RouteTicketDetail)
		case "n":
			a.openTicketDialog(dialog.NewTicketForm())
			return a, a.overlay.form.Init()
		case "e":
			t, ok := a.tickets.selected()
			if !ok {
				return a, nil
			}
			a.openTicketDialog(dialog.EditTicketForm(t))
			return a, a.overlay.form.Init()
		case "d":
			if t, ok := a.tickets.selected(); ok {
				a.tickets.confirmID = t.ID
			}
			return a, nil
		case "/":
			a.tickets.filtering = true
			return a, a.tickets.query.Focus()
		case "t":
			a.tickets.cycleType()
			a.applyTicketFilter()
			return a, nil
		case "p":
			a.tickets.cyclePriority()
			a.applyTicketFilter()
			return a, nil
		case "s":
			a.tickets.cycleState()
			a.applyTicketFilter()
			return a, nil
		case "r":
			return a, a.loadCmd(nav.RouteTickets)
		case "esc":
			return a, a.navigate(nav.RouteProjects)
		case "ctrl+l":
			return a, a.logout()
		}
	}

	var cmd tea.Cmd
	a.tickets.tbl, cmd = a.tickets.tbl.Update(msg)
	return a, cmd
}

func (a *App) applyTicketFilter() {
	a.deps.Tickets.SetFilter(controller.TicketFilter{
		Query:    a.tickets.query.Value(),
		Type:     a.tickets.ftype,
		Priority: a.tickets.fprio,
		State:    a.tickets.fstate,
	})
	a.tickets.setRows(a.deps.Tickets.Items())
}

func (a *App) openTicketDialog(f *dialog.TicketForm) {
	title := "New ticket"
	status := "Ticket created"
	if f.Mode == dialog.ModeEdit {
		title = "Edit ticket"
		status = "Ticket updated"
	}
	deps := a.deps
	a.overlay = newDialog(title,
		func() *huh.Form { return ticketFormFields(f) },
		func() (tea.Cmd, dialog.FieldErrors) {
			if f.Mode == dialog.ModeEdit {
				req, err := f.UpdatePayload()
				if err != nil {
					return nil, asFieldErrors(err)
				}
				id := f.TicketID
				return a.mutateCmd(nav.RouteTickets, status, func(ctx context.Context) error {
					return deps.Tickets.Update(ctx, id, req)
				}), nil
			}
			req, err := f.CreatePayload()
			if err != nil {
				return nil, asFieldErrors(err)
			}
			return a.mutateCmd(nav.RouteTickets, status, func(ctx context.Context) error {
				return deps.Tickets.Create(ctx, req)
			}), nil
		})
}
