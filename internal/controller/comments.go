package controller

import (
	"context"
	"sync"

	"github.com/tsystem/trackdesk/internal/api"
	"github.com/tsystem/trackdesk/internal/errs"
	"github.com/tsystem/trackdesk/internal/model"
)

// Comments drives the comment thread of one ticket. History rides
// along because the detail view always shows both.
type Comments struct {
	comments *api.CommentsClient
	history  *api.HistoryClient

	list     *List[model.Comment]
	histList *List[model.HistoryEntry]

	// mu guards the scope; loads and mutations run off the UI
	// goroutine while SetTicket runs on it.
	mu        sync.Mutex
	projectID string
	ticketID  string
}

func NewComments(comments *api.CommentsClient, history *api.HistoryClient) *Comments {
	c := &Comments{comments: comments, history: history}
	c.list = NewList(c.commentLoader("", ""))
	c.histList = NewList(c.historyLoader("", ""))
	return c
}

func (c *Comments) commentLoader(projectID, ticketID string) Loader[model.Comment] {
	return func(ctx context.Context) ([]model.Comment, error) {
		if ticketID == "" {
			return nil, errs.ErrNotFound
		}
		return c.comments.List(ctx, projectID, ticketID)
	}
}

func (c *Comments) historyLoader(projectID, ticketID string) Loader[model.HistoryEntry] {
	return func(ctx context.Context) ([]model.HistoryEntry, error) {
		if ticketID == "" {
			return nil, errs.ErrNotFound
		}
		return c.history.List(ctx, projectID, ticketID)
	}
}

// SetTicket rescopes the controller to one ticket.
func (c *Comments) SetTicket(projectID, ticketID string) {
	c.mu.Lock()
	c.projectID = projectID
	c.ticketID = ticketID
	c.mu.Unlock()
	c.list.SetLoader(c.commentLoader(projectID, ticketID))
	c.histList.SetLoader(c.historyLoader(projectID, ticketID))
}

func (c *Comments) scope() (projectID, ticketID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectID, c.ticketID
}

func (c *Comments) Load(ctx context.Context) error {
	if err := c.list.Load(ctx); err != nil {
		return err
	}
	return c.histList.Load(ctx)
}

func (c *Comments) Items() []model.Comment { return c.list.Items() }

func (c *Comments) History() []model.HistoryEntry { return c.histList.Items() }

func (c *Comments) Create(ctx context.Context, text string) error {
	projectID, ticketID := c.scope()
	err := c.list.Mutate(ctx, func(ctx context.Context) error {
		_, err := c.comments.Create(ctx, projectID, ticketID, model.CommentRequest{Text: text})
		return err
	})
	if err != nil {
		return err
	}
	return c.histList.Load(ctx)
}

func (c *Comments) Update(ctx context.Context, commentID, text string) error {
	projectID, ticketID := c.scope()
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		_, err := c.comments.Update(ctx, projectID, ticketID, commentID, model.CommentRequest{Text: text})
		return err
	})
}

func (c *Comments) Delete(ctx context.Context, commentID string) error {
	projectID, ticketID := c.scope()
	return c.list.Mutate(ctx, func(ctx context.Context) error {
		return c.comments.Delete(ctx, projectID, ticketID, commentID)
	})
}
