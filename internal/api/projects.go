package api

import (
	"context"
	"fmt"

	"github.com/tsystem/trackdesk/internal/model"
)

// ProjectsClient wraps the /api/projects collection.
type ProjectsClient struct {
	gw *Gateway
}

func NewProjectsClient(gw *Gateway) *ProjectsClient { return &ProjectsClient{gw: gw} }

func (c *ProjectsClient) List(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := c.gw.get(ctx, "/api/projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ProjectsClient) Get(ctx context.Context, id string) (*model.Project, error) {
	var out model.Project
	if err := c.gw.get(ctx, "/api/projects/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ProjectsClient) Create(ctx context.Context, req model.ProjectRequest) (*model.Project, error) {
	var out model.Project
	if err := c.gw.post(ctx, "/api/projects", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ProjectsClient) Update(ctx context.Context, id string, req model.ProjectRequest) (*model.Project, error) {
	var out model.Project
	if err := c.gw.put(ctx, "/api/projects/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ProjectsClient) Delete(ctx context.Context, id string) error {
	return c.gw.delete(ctx, "/api/projects/"+id)
}

func projectPath(projectID string) string {
	return fmt.Sprintf("/api/projects/%s", projectID)
}
