package api

import (
	"context"

	"github.com/tsystem/trackdesk/internal/model"
)

// HistoryClient lists a ticket's change log. History is append-only on
// the server, so List is the whole surface.
type HistoryClient struct {
	gw *Gateway
}

func NewHistoryClient(gw *Gateway) *HistoryClient { return &HistoryClient{gw: gw} }

func (c *HistoryClient) List(ctx context.Context, projectID, ticketID string) ([]model.HistoryEntry, error) {
	var out []model.HistoryEntry
	if err := c.gw.get(ctx, ticketPath(projectID, ticketID)+"/history", &out); err != nil {
		return nil, err
	}
	return out, nil
}
