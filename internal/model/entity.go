package model

import "time"

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "ACTIVE"
	ProjectStatusArchived ProjectStatus = "ARCHIVED"
)

type TicketType string

const (
	TicketTypeBug     TicketType = "BUG"
	TicketTypeFeature TicketType = "FEATURE"
	TicketTypeTask    TicketType = "TASK"
)

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
)

type TicketState string

const (
	TicketStateOpen       TicketState = "OPEN"
	TicketStateInProgress TicketState = "IN_PROGRESS"
	TicketStateDone       TicketState = "DONE"
)

type HistoryAction string

const (
	HistoryActionCreated HistoryAction = "CREATED"
	HistoryActionUpdated HistoryAction = "UPDATED"
	HistoryActionDeleted HistoryAction = "DELETED"
)

type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleUser           Role = "USER"
	RoleProjectManager Role = "PROJECT_MANAGER"
)

// Project is the server-owned project snapshot. The client never holds
// authoritative state beyond the last fetched copy.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	OwnerID     string        `json:"ownerId,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Ticket belongs to exactly one project, referenced by id.
type Ticket struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"projectId"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Type        TicketType     `json:"type"`
	Priority    TicketPriority `json:"priority"`
	State       TicketState    `json:"state"`
	AssigneeID  string         `json:"assigneeId,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type Comment struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticketId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HistoryEntry is append-only on the server; the client only lists it.
type HistoryEntry struct {
	ID        string        `json:"id"`
	AuthorID  string        `json:"authorId"`
	Action    HistoryAction `json:"action"`
	Field     string        `json:"field,omitempty"`
	OldValue  string        `json:"oldValue,omitempty"`
	NewValue  string        `json:"newValue,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Role    Role   `json:"role"`
	Blocked bool   `json:"blocked"`
}

// ProjectRequest is the create/update payload for a project.
type ProjectRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status,omitempty"`
}

// TicketCreateRequest is the create payload. State is server-assigned
// (OPEN) on create; updates carry it explicitly.
type TicketCreateRequest struct {
	Name        string         `json:"name"`
	Type        TicketType     `json:"type"`
	Priority    TicketPriority `json:"priority"`
	Description string         `json:"description,omitempty"`
	AssigneeID  string         `json:"assigneeId,omitempty"`
}

type TicketUpdateRequest struct {
	Name        string         `json:"name"`
	Type        TicketType     `json:"type"`
	Priority    TicketPriority `json:"priority"`
	State       TicketState    `json:"state"`
	Description string         `json:"description,omitempty"`
	AssigneeID  string         `json:"assigneeId,omitempty"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

// RegisterRequest is the self-service signup payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password"`
}

// UserRequest is the admin create/update payload. Password is optional
// on update (empty keeps the current one).
type UserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
}

// ValidTicketType reports whether s is one of the known ticket types.
func ValidTicketType(s string) bool {
	switch TicketType(s) {
	case TicketTypeBug, TicketTypeFeature, TicketTypeTask:
		return true
	}
	return false
}

func ValidTicketPriority(s string) bool {
	switch TicketPriority(s) {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

func ValidTicketState(s string) bool {
	switch TicketState(s) {
	case TicketStateOpen, TicketStateInProgress, TicketStateDone:
		return true
	}
	return false
}

func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleProjectManager:
		return true
	}
	return false
}
