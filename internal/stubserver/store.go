package stubserver

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tsystem/trackdesk/internal/errs"
	"github.com/tsystem/trackdesk/internal/model"
)

// user extends the wire model with the password hash, which never
// leaves the store.
type user struct {
	model.User
	passwordHash string
}

// store is the in-memory state behind the stub API. All access goes
// through the mutex; the maps hold the authoritative copies and every
// read hands out values, not pointers.
type store struct {
	mu       sync.Mutex
	users    map[string]user
	projects map[string]model.Project
	tickets  map[string]model.Ticket
	comments map[string]model.Comment
	history  map[string][]model.HistoryEntry // keyed by ticket id
}

func newStore() *store {
	return &store{
		users:    make(map[string]user),
		projects: make(map[string]model.Project),
		tickets:  make(map[string]model.Ticket),
		comments: make(map[string]model.Comment),
		history:  make(map[string][]model.HistoryEntry),
	}
}

const hashCost = 10 // dev store; favor startup time over work factor

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), hashCost)
	return string(b), err
}

func checkPassword(hashed, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

func (s *store) createUser(req model.UserRequest, role model.Role) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == req.Email {
			return model.User{}, errs.ErrConflict
		}
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}
	u := user{
		User: model.User{
			ID:      uuid.NewString(),
			Email:   req.Email,
			Name:    req.Name,
			Surname: req.Surname,
			Role:    role,
		},
		passwordHash: hash,
	}
	s.users[u.ID] = u
	return u.User, nil
}

// authenticate resolves login (email) + password to a user. Blocked
// accounts fail exactly like bad credentials so the login form leaks
// nothing about account state.
func (s *store) authenticate(login, password string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == login {
			if u.Blocked || !checkPassword(u.passwordHash, password) {
				return model.User{}, errs.ErrForbidden
			}
			return u.User, nil
		}
	}
	return model.User{}, errs.ErrForbidden
}

func (s *store) getUser(id string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u.User, ok
}

func (s *store) listUsers() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

func (s *store) updateUser(id string, req model.UserRequest) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, errs.ErrNotFound
	}
	for otherID, other := range s.users {
		if otherID != id && other.Email == req.Email {
			return model.User{}, errs.ErrConflict
		}
	}
	u.Email = req.Email
	u.Name = req.Name
	u.Surname = req.Surname
	u.Role = req.Role
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return model.User{}, err
		}
		u.passwordHash = hash
	}
	s.users[id] = u
	return u.User, nil
}

func (s *store) deleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *store) setBlocked(id string, blocked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return errs.ErrNotFound
	}
	u.Blocked = blocked
	s.users[id] = u
	return nil
}

func (s *store) createProject(ownerID string, req model.ProjectRequest) model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := req.Status
	if status == "" {
		status = model.ProjectStatusActive
	}
	p := model.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	}
	s.projects[p.ID] = p
	return p
}

func (s *store) getProject(id string) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	return p, ok
}

func (s *store) listProjects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *store) updateProject(id string, req model.ProjectRequest) (model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return model.Project{}, errs.ErrNotFound
	}
	p.Name = req.Name
	p.Description = req.Description
	if req.Status != "" {
		p.Status = req.Status
	}
	s.projects[id] = p
	return p, nil
}

// deleteProject cascades to the project's tickets, their comments and
// their history, matching the relational backend's FK behavior.
func (s *store) deleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.projects, id)
	for tid, t := range s.tickets {
		if t.ProjectID != id {
			continue
		}
		delete(s.tickets, tid)
		delete(s.history, tid)
		for cid, c := range s.comments {
			if c.TicketID == tid {
				delete(s.comments, cid)
			}
		}
	}
	return nil
}

func (s *store) createTicket(projectID, authorID string, req model.TicketCreateRequest) (model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[projectID]; !ok {
		return model.Ticket{}, errs.ErrNotFound
	}
	t := model.Ticket{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Priority:    req.Priority,
		State:       model.TicketStateOpen,
		AssigneeID:  req.AssigneeID,
		CreatedAt:   time.Now().UTC(),
	}
	s.tickets[t.ID] = t
	s.appendHistory(t.ID, model.HistoryEntry{
		AuthorID: authorID,
		Action:   model.HistoryActionCreated,
	})
	return t, nil
}

func (s *store) getTicket(projectID, ticketID string) (model.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[ticketID]
	if !ok || t.ProjectID != projectID {
		return model.Ticket{}, false
	}
	return t, true
}

func (s *store) listTickets(projectID string) ([]model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[projectID]; !ok {
		return nil, errs.ErrNotFound
	}
	out := make([]model.Ticket, 0)
	for _, t := range s.tickets {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// updateTicket applies the full update payload and appends one UPDATED
// history entry per field that actually changed.
func (s *store) updateTicket(projectID, ticketID, authorID string, req model.TicketUpdateRequest) (model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[ticketID]
	if !ok || t.ProjectID != projectID {
		return model.Ticket{}, errs.ErrNotFound
	}

	changes := []struct {
		field    string
		old, new string
	}{
		{"name", t.Name, req.Name},
		{"type", string(t.Type), string(req.Type)},
		{"priority", string(t.Priority), string(req.Priority)},
		{"state", string(t.State), string(req.State)},
		{"description", t.Description, req.Description},
		{"assignee", t.AssigneeID, req.AssigneeID},
	}
	for _, ch := range changes {
		if ch.old != ch.new {
			s.appendHistory(ticketID, model.HistoryEntry{
				AuthorID: authorID,
				Action:   model.HistoryActionUpdated,
				Field:    ch.field,
				OldValue: ch.old,
				NewValue: ch.new,
			})
		}
	}

	t.Name = req.Name
	t.Type = req.Type
	t.Priority = req.Priority
	t.State = req.State
	t.Description = req.Description
	t.AssigneeID = req.AssigneeID
	s.tickets[ticketID] = t
	return t, nil
}

func (s *store) deleteTicket(projectID, ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[ticketID]
	if !ok || t.ProjectID != projectID {
		return errs.ErrNotFound
	}
	delete(s.tickets, ticketID)
	delete(s.history, ticketID)
	for cid, c := range s.comments {
		if c.TicketID == ticketID {
			delete(s.comments, cid)
		}
	}
	return nil
}

func (s *store) createComment(ticketID, authorID, authorName, text string) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[ticketID]; !ok {
		return model.Comment{}, errs.ErrNotFound
	}
	c := model.Comment{
		ID:         uuid.NewString(),
		TicketID:   ticketID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	}
	s.comments[c.ID] = c
	return c, nil
}

func (s *store) listComments(ticketID string) []model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Comment, 0)
	for _, c := range s.comments {
		if c.TicketID == ticketID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *store) updateComment(ticketID, commentID, text string) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[commentID]
	if !ok || c.TicketID != ticketID {
		return model.Comment{}, errs.ErrNotFound
	}
	c.Text = text
	s.comments[commentID] = c
	return c, nil
}

func (s *store) deleteComment(ticketID, commentID, authorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[commentID]
	if !ok || c.TicketID != ticketID {
		return errs.ErrNotFound
	}
	delete(s.comments, commentID)
	s.appendHistory(ticketID, model.HistoryEntry{
		AuthorID: authorID,
		Action:   model.HistoryActionDeleted,
		Field:    "comment",
		OldValue: c.Text,
	})
	return nil
}

func (s *store) listHistory(ticketID string) []model.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.history[ticketID]
	out := make([]model.HistoryEntry, len(entries))
	copy(out, entries)
	return out
}

// appendHistory must be called with the lock held.
func (s *store) appendHistory(ticketID string, e model.HistoryEntry) {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	s.history[ticketID] = append(s.history[ticketID], e)
}
