package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tsystem/trackdesk/internal/model"
	"github.com/tsystem/trackdesk/internal/nav"
)

// detailModel is the ticket detail view: the ticket header, its
// comment thread and the change history side by side. The cursor
// walks the comment list; history is read-only.
type detailModel struct {
	ticket   model.Ticket
	comments []model.Comment
	history  []model.HistoryEntry

	cursor  int
	width   int
	height  int
	input   textinput.Model
	editing string // comment id being edited, "" = composing new
	typing  bool
	confirm string // comment id pending delete confirmation
}

func newDetailModel() detailModel {
	ti := textinput.New()
	ti.Placeholder = "comment text"
	ti.CharLimit = 4000
	return detailModel{input: ti}
}

func (m *detailModel) setTicket(t model.Ticket) {
	m.ticket = t
	m.comments = nil
	m.history = nil
	m.cursor = 0
	m.typing = false
	m.confirm = ""
}

func (m *detailModel) setData(comments []model.Comment, history []model.HistoryEntry) {
	m.comments = comments
	m.history = history
	if m.cursor >= len(comments) {
		m.cursor = 0
	}
}

func (m *detailModel) resize(w, h int) {
	m.width = w
	m.height = h
}

func (m *detailModel) selected() (model.Comment, bool) {
	if m.cursor < 0 || m.cursor >= len(m.comments) {
		return model.Comment{}, false
	}
	return m.comments[m.cursor], true
}

func (m detailModel) view() string {
	var b strings.Builder

	t := m.ticket
	fmt.Fprintf(&b, "%s  %s\n", labelStyle.Render(t.Name),
		crumbStyle.Render(fmt.Sprintf("%s · %s · %s", t.Type, t.Priority, t.State)))
	if t.Description != "" {
		b.WriteString(t.Description + "\n")
	}

	b.WriteString("\n" + labelStyle.Render("Comments") + "\n")
	if len(m.comments) == 0 {
		b.WriteString(helpStyle.Render("no comments yet") + "\n")
	}
	for i, c := range m.comments {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		author := c.AuthorName
		if author == "" {
			author = c.AuthorID
		}
		fmt.Fprintf(&b, "%s%s %s: %s\n", prefix,
			crumbStyle.Render(c.CreatedAt.Format("2006-01-02 15:04")), author, c.Text)
	}

	if m.typing {
		b.WriteString("\n" + m.input.View() + "\n")
	}

	b.WriteString("\n" + labelStyle.Render("History") + "\n")
	for _, h := range m.history {
		line := string(h.Action)
		if h.Field != "" {
			line += " " + h.Field
			if h.OldValue != "" || h.NewValue != "" {
				line += fmt.Sprintf(" %q -> %q", h.OldValue, h.NewValue)
			}
		}
		fmt.Fprintf(&b, "  %s %s\n", crumbStyle.Render(h.CreatedAt.Format("2006-01-02 15:04")), line)
	}

	help := helpStyle.Render("c comment  e edit  x delete  j/k move  esc back")
	if m.confirm != "" {
		help = errorStyle.Render("delete comment? y/n")
	}
	if m.typing {
		help = helpStyle.Render("enter submit  esc cancel")
	}
	b.WriteString("\n" + help)
	return b.String()
}

func (a App) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return a, nil
	}

	if a.detail.typing {
		switch key.String() {
		case "enter":
			text := strings.TrimSpace(a.detail.input.Value())
			if text == "" {
				return a, nil
			}
			editing := a.detail.editing
			a.detail.typing = false
			a.detail.input.SetValue("")
			a.detail.input.Blur()
			deps := a.deps
			if editing != "" {
				return a, a.mutateCmd(nav.RouteTicketDetail, "Comment updated", func(ctx context.Context) error {
					return deps.Comments.Update(ctx, editing, text)
				})
			}
			return a, a.mutateCmd(nav.RouteTicketDetail, "Comment added", func(ctx context.Context) error {
				return deps.Comments.Create(ctx, text)
			})
		case "esc":
			a.detail.typing = false
			a.detail.input.SetValue("")
			a.detail.input.Blur()
			return a, nil
		default:
			var cmd tea.Cmd
			a.detail.input, cmd = a.detail.input.Update(msg)
			return a, cmd
		}
	}

	if a.detail.confirm != "" {
		id := a.detail.confirm
		a.detail.confirm = ""
		if key.String() == "y" {
			deps := a.deps
			return a, a.mutateCmd(nav.RouteTicketDetail, "Comment deleted", func(ctx context.Context) error {
				return deps.Comments.Delete(ctx, id)
			})
		}
		return a, nil
	}

	switch key.String() {
	case "j", "down":
		if a.detail.cursor < len(a.detail.comments)-1 {
			a.detail.cursor++
		}
	case "k", "up":
		if a.detail.cursor > 0 {
			a.detail.cursor--
		}
	case "c":
		a.detail.typing = true
		a.detail.editing = ""
		return a, a.detail.input.Focus()
	case "e":
		if c, ok := a.detail.selected(); ok {
			a.detail.typing = true
			a.detail.editing = c.ID
			a.detail.input.SetValue(c.Text)
			return a, a.detail.input.Focus()
		}
	case "x":
		if c, ok := a.detail.selected(); ok {
			a.detail.confirm = c.ID
		}
	case "r":
		return a, a.loadCmd(nav.RouteTicketDetail)
	case "esc":
		return a, a.navigate(nav.RouteTickets)
	case "ctrl+l":
		return a, a.logout()
	}
	return a, nil
}
