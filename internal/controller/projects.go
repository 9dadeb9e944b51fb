package controller

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tsystem/trackdesk/internal/api"
	"github.com/tsystem/trackdesk/internal/model"
)

// ProjectFilter is the projects page filter state: free-text name
// match plus an exact status match ("" shows all).
type ProjectFilter struct {
	Name   string
	Status model.ProjectStatus
}

// Projects drives the projects page: newest-first list, local filter,
// reload after every mutation.
type Projects struct {
	client *api.ProjectsClient
	list   *List[model.Project]

	mu     sync.Mutex
	filter ProjectFilter
}

func NewProjects(client *api.ProjectsClient) *Projects {
	c := &Projects{client: client}
	c.list = NewList(func(ctx context.Context) ([]model.Project, error) {
		items, err := client.List(ctx)
		if err != nil {
			return nil, err
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
		return items, nil
	})
	return c
}

func (c *Projects) Load(ctx context.Context) error { return c.list.Load(ctx) }

func (c *Projects) Items() []model.Project { return c.list.Items() }

func (c *Projects) All() []model.Project { return c.list.All() }

func (c *Projects) SetFilter(f ProjectFilter) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
	name := strings.ToLower(strings.TrimSpace(f.Name))
	if name == "" && f.Status == "" {
		c.list.SetFilter(nil)
		return
	}
	c.list.SetFilter(func(p model.Project) bool {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			return false
		}
		return f.Status == "" || p.Status == f.Status
	})
}

func (c *Projects) Filter() ProjectFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Projects) Create(ctx context.Context, req model.ProjectRequest) error {
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		_, err := c.client.Create(ctx, req)
		return err
	})
}

func (c *Projects) Update(ctx context.Context, id string, req model.ProjectRequest) error {
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		_, err := c.client.Update(ctx, id, req)
		return err
	})
}

func (c *Projects) Delete(ctx context.Context, id string) error {
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		return c.client.Delete(ctx, id)
	})
}
