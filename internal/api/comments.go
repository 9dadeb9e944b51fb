package api

import (
	"context"

	"github.com/tsystem/trackdesk/internal/model"
)

// CommentsClient wraps the comment collection nested under a ticket.
type CommentsClient struct {
	gw *Gateway
}

func NewCommentsClient(gw *Gateway) *CommentsClient { return &CommentsClient{gw: gw} }

func commentsPath(projectID, ticketID string) string {
	return ticketPath(projectID, ticketID) + "/comments"
}

func (c *CommentsClient) List(ctx context.Context, projectID, ticketID string) ([]model.Comment, error) {
	var out []model.Comment
	if err := c.gw.get(ctx, commentsPath(projectID, ticketID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CommentsClient) Create(ctx context.Context, projectID, ticketID string, req model.CommentRequest) (*model.Comment, error) {
	var out model.Comment
	if err := c.gw.post(ctx, commentsPath(projectID, ticketID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CommentsClient) Update(ctx context.Context, projectID, ticketID, commentID string, req model.CommentRequest) (*model.Comment, error) {
	var out model.Comment
	if err := c.gw.put(ctx, commentsPath(projectID, ticketID)+"/"+commentID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CommentsClient) Delete(ctx context.Context, projectID, ticketID, commentID string) error {
	return c.gw.delete(ctx, commentsPath(projectID, ticketID)+"/"+commentID)
}
