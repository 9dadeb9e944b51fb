package api

import (
	"context"

	"github.com/tsystem/trackdesk/internal/model"
)

// UsersClient wraps the admin-only /api/users collection.
type UsersClient struct {
	gw *Gateway
}

func NewUsersClient(gw *Gateway) *UsersClient { return &UsersClient{gw: gw} }

func (c *UsersClient) List(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.gw.get(ctx, "/api/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *UsersClient) Get(ctx context.Context, id string) (*model.User, error) {
	var out model.User
	if err := c.gw.get(ctx, "/api/users/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *UsersClient) Create(ctx context.Context, req model.UserRequest) (*model.User, error) {
	var out model.User
	if err := c.gw.post(ctx, "/api/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *UsersClient) Update(ctx context.Context, id string, req model.UserRequest) (*model.User, error) {
	var out model.User
	if err := c.gw.put(ctx, "/api/users/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *UsersClient) Delete(ctx context.Context, id string) error {
	return c.gw.delete(ctx, "/api/users/"+id)
}

// Block disables a user's login; their existing tokens are refused by
// the server as well.
func (c *UsersClient) Block(ctx context.Context, id string) error {
	return c.gw.post(ctx, "/api/users/"+id+"/block", nil, nil)
}

func (c *UsersClient) Unblock(ctx context.Context, id string) error {
	return c.gw.post(ctx, "/api/users/"+id+"/unblock", nil, nil)
}
