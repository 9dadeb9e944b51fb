package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/tsystem/trackdesk/internal/api"
	"github.com/tsystem/trackdesk/internal/model"
)

// Users drives the admin users page.
type Users struct {
	client *api.UsersClient
	list   *List[model.User]

	mu    sync.Mutex
	query string
}

func NewUsers(client *api.UsersClient) *Users {
	c := &Users{client: client}
	c.list = NewList(func(ctx context.Context) ([]model.User, error) {
		return client.List(ctx)
	})
	return c
}

func (c *Users) Load(ctx context.Context) error { return c.list.Load(ctx) }

func (c *Users) Items() []model.User { return c.list.Items() }

// SetQuery filters by email, name or surname substring.
func (c *Users) SetQuery(query string) {
	c.mu.Lock()
	c.query = query
	c.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		c.list.SetFilter(nil)
		return
	}
	c.list.SetFilter(func(u model.User) bool {
		return strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Surname), q)
	})
}

func (c *Users) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *Users) Create(ctx context.Context, req model.UserRequest) error {
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		_, err := c.client.Create(ctx, req)
		return err
	})
}

func (c *Users) Update(ctx context.Context, id string, req model.UserRequest) error {
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		_, err := c.client.Update(ctx, id, req)
		return err
	})
}

func (c *Users) Delete(ctx context.Context, id string) error {
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		return c.client.Delete(ctx, id)
	})
}

func (c *Users) Block(ctx context.Context, id string) error {
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		return c.client.Block(ctx, id)
	})
}

func (c *Users) Unblock(ctx context.Context, id string) error {
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		return c.client.Unblock(ctx, id)
	})
}
