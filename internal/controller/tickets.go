package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/tsystem/trackdesk/internal/api"
	"github.com/tsystem/trackdesk/internal/errs"
	"github.com/tsystem/trackdesk/internal/model"
)

// TicketFilter is the tickets page filter state: free-text query over
// id and name, exact matches on the categorical fields ("" = any).
type TicketFilter struct {
	Query    string
	Type     model.TicketType
	Priority model.TicketPriority
	State    model.TicketState
}

// Tickets drives the tickets page for one project at a time. Changing
// the project drops the old snapshot; a view of tickets without a
// project scope does not exist in the API.
type Tickets struct {
	client *api.TicketsClient
	list   *List[model.Ticket]

	// mu guards the scope and filter state; loads and mutations run
	// off the UI goroutine while SetProject runs on it.
	mu        sync.Mutex
	projectID string
	filter    TicketFilter
}

func NewTickets(client *api.TicketsClient) *Tickets {
	c := &Tickets{client: client}
	c.list = NewList(c.loader(""))
	return c
}

func (c *Tickets) loader(projectID string) Loader[model.Ticket] {
	return func(ctx context.Context) ([]model.Ticket, error) {
		if projectID == "" {
			return nil, errs.ErrNotFound
		}
		return c.client.List(ctx, projectID)
	}
}

// SetProject rescopes the controller. The filter state survives; the
// snapshot does not.
func (c *Tickets) SetProject(projectID string) {
	c.mu.Lock()
	c.projectID = projectID
	c.mu.Unlock()
	c.list.SetLoader(c.loader(projectID))
}

func (c *Tickets) ProjectID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectID
}

func (c *Tickets) Load(ctx context.Context) error { return c.list.Load(ctx) }

func (c *Tickets) Items() []model.Ticket { return c.list.Items() }

func (c *Tickets) All() []model.Ticket { return c.list.All() }

func (c *Tickets) SetFilter(f TicketFilter) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" && f.Type == "" && f.Priority == "" && f.State == "" {
		c.list.SetFilter(nil)
		return
	}
	c.list.SetFilter(func(t model.Ticket) bool {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.ID), q) {
			return false
		}
		if f.Type != "" && t.Type != f.Type {
			return false
		}
		if f.Priority != "" && t.Priority != f.Priority {
			return false
		}
		return f.State == "" || t.State == f.State
	})
}

func (c *Tickets) Filter() TicketFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Tickets) Create(ctx context.Context, req model.TicketCreateRequest) error {
	projectID := c.ProjectID()
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		_, err := c.client.Create(ctx, projectID, req)
		return err
	})
}

func (c *Tickets) Update(ctx context.Context, ticketID string, req model.TicketUpdateRequest) error {
	projectID := c.ProjectID()
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		_, err := c.client.Update(ctx, projectID, ticketID, req)
		return err
	})
}

func (c *Tickets) Delete(ctx context.Context, ticketID string) error {
	projectID := c.ProjectID()
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		return c.client.Delete(ctx, projectID, ticketID)
	})
}
