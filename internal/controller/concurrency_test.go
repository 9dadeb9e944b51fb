package controller

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsystem/trackdesk/internal/api"
	"github.com/tsystem/trackdesk/internal/model"
)

// The update loop rescopes controllers while loads and mutations run
// on their own goroutines. These tests hammer that interleaving and
// rely on the race detector to catch unsynchronized scope access.

func TestComments_RescopeDuringReload(t *testing.T) {
	gw := jsonServer(t, map[string]any{
		"/api/projects/p-1/tickets/t-1/comments":     []model.Comment{{ID: "c-1", TicketID: "t-1"}},
		"/api/projects/p-1/tickets/t-1/comments/c-1": model.Comment{ID: "c-1", TicketID: "t-1"},
		"/api/projects/p-1/tickets/t-1/history":      []model.HistoryEntry{},
		"/api/projects/p-2/tickets/t-2/comments":     []model.Comment{{ID: "c-1", TicketID: "t-2"}},
		"/api/projects/p-2/tickets/t-2/comments/c-1": model.Comment{ID: "c-1", TicketID: "t-2"},
		"/api/projects/p-2/tickets/t-2/history":      []model.HistoryEntry{},
	})
	c := NewComments(api.NewCommentsClient(gw), api.NewHistoryClient(gw))
	c.SetTicket("p-1", "t-1")
	require.NoError(t, c.Load(context.Background()))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		ctx := context.Background()
		for i := 0; i < 100; i++ {
			assert.NoError(t, c.Load(ctx))
			assert.NoError(t, c.Update(ctx, "c-1", "edited"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			if i%2 == 0 {
				c.SetTicket("p-2", "t-2")
			} else {
				c.SetTicket("p-1", "t-1")
			}
		}
	}()
	wg.Wait()
}

func TestTickets_RescopeDuringMutation(t *testing.T) {
	gw := jsonServer(t, map[string]any{
		"/api/projects/p-1/tickets":     []model.Ticket{{ID: "t-1", ProjectID: "p-1", Name: "one"}},
		"/api/projects/p-1/tickets/t-1": struct{}{},
		"/api/projects/p-2/tickets":     []model.Ticket{{ID: "t-1", ProjectID: "p-2", Name: "two"}},
		"/api/projects/p-2/tickets/t-1": struct{}{},
	})
	c := NewTickets(api.NewTicketsClient(gw))
	c.SetProject("p-1")
	require.NoError(t, c.Load(context.Background()))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		ctx := context.Background()
		for i := 0; i < 100; i++ {
			assert.NoError(t, c.Load(ctx))
			assert.NoError(t, c.Delete(ctx, "t-1"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			if i%2 == 0 {
				c.SetProject("p-2")
			} else {
				c.SetProject("p-1")
			}
			c.SetFilter(TicketFilter{Query: "t-1"})
			_ = c.Filter()
			_ = c.ProjectID()
		}
	}()
	wg.Wait()
}
