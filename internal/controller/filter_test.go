package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsystem/trackdesk/internal/api"
	"github.com/tsystem/trackdesk/internal/errs"
	"github.com/tsystem/trackdesk/internal/model"
	"github.com/tsystem/trackdesk/pkg/logger"
)

// jsonServer serves a fixed payload per path, enough to drive the
// controllers through a real gateway.
func jsonServer(t *testing.T, payloads map[string]any) *api.Gateway {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := payloads[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return api.NewGateway(srv.URL, nil, 5*time.Second, logger.NewWriter(io.Discard, "error"))
}

func TestProjects_FilterByNameAndStatus(t *testing.T) {
	now := time.Now()
	gw := jsonServer(t, map[string]any{
		"/api/projects": []model.Project{
			{ID: "1", Name: "Payments", Status: model.ProjectStatusActive, CreatedAt: now},
			{ID: "2", Name: "Payroll", Status: model.ProjectStatusArchived, CreatedAt: now.Add(time.Minute)},
			{ID: "3", Name: "Billing", Status: model.ProjectStatusActive, CreatedAt: now.Add(2 * time.Minute)},
		},
	})
	c := NewProjects(api.NewProjectsClient(gw))
	require.NoError(t, c.Load(context.Background()))

	assert.Len(t, c.Items(), 3)
	assert.Equal(t, "Billing", c.Items()[0].Name, "newest first")

	c.SetFilter(ProjectFilter{Name: "pay"})
	names := projectNames(c.Items())
	assert.Equal(t, []string{"Payroll", "Payments"}, names, "case-insensitive substring")

	c.SetFilter(ProjectFilter{Name: "pay", Status: model.ProjectStatusActive})
	assert.Equal(t, []string{"Payments"}, projectNames(c.Items()))

	c.SetFilter(ProjectFilter{})
	assert.Len(t, c.Items(), 3, "clearing the filter restores the full snapshot")
}

func projectNames(items []model.Project) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Name
	}
	return out
}

func TestTickets_FilterQueryMatchesIDAndName(t *testing.T) {
	gw := jsonServer(t, map[string]any{
		"/api/projects/p-1/tickets": []model.Ticket{
			{ID: "t-100", ProjectID: "p-1", Name: "Login crash", Type: model.TicketTypeBug, Priority: model.TicketPriorityHigh, State: model.TicketStateOpen},
			{ID: "t-200", ProjectID: "p-1", Name: "Dark mode", Type: model.TicketTypeFeature, Priority: model.TicketPriorityLow, State: model.TicketStateOpen},
			{ID: "t-300", ProjectID: "p-1", Name: "Crash on save", Type: model.TicketTypeBug, Priority: model.TicketPriorityMedium, State: model.TicketStateDone},
		},
	})
	c := NewTickets(api.NewTicketsClient(gw))
	c.SetProject("p-1")
	require.NoError(t, c.Load(context.Background()))

	c.SetFilter(TicketFilter{Query: "crash"})
	assert.Len(t, c.Items(), 2, "name substring, case-insensitive")

	c.SetFilter(TicketFilter{Query: "t-200"})
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "Dark mode", c.Items()[0].Name, "id substring matches too")

	c.SetFilter(TicketFilter{Type: model.TicketTypeBug, State: model.TicketStateDone})
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "t-300", c.Items()[0].ID, "categorical filters are exact and combined")

	c.SetFilter(TicketFilter{})
	assert.Len(t, c.Items(), 3)
}

func TestTickets_NoProjectScope(t *testing.T) {
	gw := jsonServer(t, map[string]any{})
	c := NewTickets(api.NewTicketsClient(gw))

	err := c.Load(context.Background())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTickets_SetProjectDropsSnapshot(t *testing.T) {
	gw := jsonServer(t, map[string]any{
		"/api/projects/p-1/tickets": []model.Ticket{{ID: "t-1", Name: "one"}},
		"/api/projects/p-2/tickets": []model.Ticket{{ID: "t-2", Name: "two"}},
	})
	c := NewTickets(api.NewTicketsClient(gw))
	c.SetProject("p-1")
	require.NoError(t, c.Load(context.Background()))
	require.Len(t, c.Items(), 1)

	c.SetProject("p-2")
	assert.Empty(t, c.Items(), "stale snapshot from the old project is gone")
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, "t-2", c.Items()[0].ID)
}

func TestUsers_QueryFilter(t *testing.T) {
	gw := jsonServer(t, map[string]any{
		"/api/users": []model.User{
			{ID: "1", Email: "ada@example.com", Name: "Ada", Surname: "Lovelace", Role: model.RoleAdmin},
			{ID: "2", Email: "bob@example.com", Name: "Bob", Surname: "Byrne", Role: model.RoleUser},
		},
	})
	c := NewUsers(api.NewUsersClient(gw))
	require.NoError(t, c.Load(context.Background()))

	c.SetQuery("lovelace")
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "ada@example.com", c.Items()[0].Email)

	c.SetQuery("bob@")
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "Bob", c.Items()[0].Name)

	c.SetQuery("")
	assert.Len(t, c.Items(), 2)
}
