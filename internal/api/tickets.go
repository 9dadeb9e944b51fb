package api

import (
	"context"
	"fmt"

	"github.com/tsystem/trackdesk/internal/model"
)

// TicketsClient wraps the ticket collection nested under a project.
type TicketsClient struct {
	gw *Gateway
}

func NewTicketsClient(gw *Gateway) *TicketsClient { return &TicketsClient{gw: gw} }

func ticketsPath(projectID string) string {
	return projectPath(projectID) + "/tickets"
}

func ticketPath(projectID, ticketID string) string {
	return fmt.Sprintf("%s/tickets/%s", projectPath(projectID), ticketID)
}

func (c *TicketsClient) List(ctx context.Context, projectID string) ([]model.Ticket, error) {
	var out []model.Ticket
	if err := c.gw.get(ctx, ticketsPath(projectID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TicketsClient) Get(ctx context.Context, projectID, ticketID string) (*model.Ticket, error) {
	var out model.Ticket
	if err := c.gw.get(ctx, ticketPath(projectID, ticketID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *TicketsClient) Create(ctx context.Context, projectID string, req model.TicketCreateRequest) (*model.Ticket, error) {
	var out model.Ticket
	if err := c.gw.post(ctx, ticketsPath(projectID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *TicketsClient) Update(ctx context.Context, projectID, ticketID string, req model.TicketUpdateRequest) (*model.Ticket, error) {
	var out model.Ticket
	if err := c.gw.put(ctx, ticketPath(projectID, ticketID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *TicketsClient) Delete(ctx context.Context, projectID, ticketID string) error {
	return c.gw.delete(ctx, ticketPath(projectID, ticketID))
}
