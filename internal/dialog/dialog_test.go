package dialog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsystem/trackdesk/internal/model"
)

func TestProjectForm_Valid(t *testing.T) {
	f := NewProjectForm()
	f.Name = "  Payments  "
	f.Description = "Money things"

	req, err := f.Payload()
	require.NoError(t, err)
	assert.Equal(t, "Payments", req.Name, "name is trimmed")
	assert.Equal(t, model.ProjectStatusActive, req.Status, "create defaults to ACTIVE")
}

func TestProjectForm_NameRequired(t *testing.T) {
	f := NewProjectForm()
	f.Name = "   "

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "name")
	assert.ErrorIs(t, errs, ErrInvalid)
}

func TestProjectForm_NameTooLong(t *testing.T) {
	f := NewProjectForm()
	f.Name = strings.Repeat("x", 256)

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "name")
}

func TestProjectForm_BadStatus(t *testing.T) {
	f := NewProjectForm()
	f.Name = "P"
	f.Status = "PAUSED"

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "status")
}

func TestProjectForm_EditKeepsValues(t *testing.T) {
	f := EditProjectForm(model.Project{
		ID: "p-1", Name: "P1", Description: "d", Status: model.ProjectStatusArchived,
	})
	assert.Equal(t, ModeEdit, f.Mode)
	assert.Equal(t, "p-1", f.ProjectID)

	req, err := f.Payload()
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusArchived, req.Status)
}

func TestTicketForm_CreateDefaults(t *testing.T) {
	f := NewTicketForm()
	f.Name = "Crash on save"

	req, err := f.CreatePayload()
	require.NoError(t, err)
	assert.Equal(t, model.TicketTypeTask, req.Type)
	assert.Equal(t, model.TicketPriorityMedium, req.Priority)
}

func TestTicketForm_InvalidEnum(t *testing.T) {
	f := NewTicketForm()
	f.Name = "T"
	f.Type = "EPIC"

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "type")
	assert.Contains(t, errs["type"], "BUG")
}

func TestTicketForm_EditRequiresState(t *testing.T) {
	f := EditTicketForm(model.Ticket{
		ID: "t-1", Name: "T", Type: model.TicketTypeBug, Priority: model.TicketPriorityHigh,
		State: model.TicketStateOpen,
	})
	f.State = ""

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "state")

	f.State = string(model.TicketStateDone)
	req, err := f.UpdatePayload()
	require.NoError(t, err)
	assert.Equal(t, model.TicketStateDone, req.State)
}

func TestUserForm_PasswordRequiredOnCreate(t *testing.T) {
	f := NewUserForm()
	f.Email = "ada@example.com"
	f.Name = "Ada"
	f.Surname = "Lovelace"

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "password")
}

func TestUserForm_PasswordOptionalOnEdit(t *testing.T) {
	f := EditUserForm(model.User{
		ID: "u-1", Email: "ada@example.com", Name: "Ada", Surname: "Lovelace", Role: model.RoleAdmin,
	})

	req, err := f.Payload()
	require.NoError(t, err)
	assert.Empty(t, req.Password, "empty password keeps the current one")
	assert.Equal(t, model.RoleAdmin, req.Role)
}

func TestUserForm_ShortPassword(t *testing.T) {
	f := NewUserForm()
	f.Email = "ada@example.com"
	f.Name = "Ada"
	f.Surname = "Lovelace"
	f.Password = "12345"

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs["password"], "at least 6")
}

func TestUserForm_BadEmail(t *testing.T) {
	f := NewUserForm()
	f.Email = "not-an-email"
	f.Name = "Ada"
	f.Surname = "Lovelace"
	f.Password = "secret"

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "email")
}

func TestUserForm_BadRole(t *testing.T) {
	f := NewUserForm()
	f.Email = "ada@example.com"
	f.Name = "Ada"
	f.Surname = "Lovelace"
	f.Password = "secret"
	f.Role = "OWNER"

	errs := f.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "role")
}

func TestRegisterForm_Valid(t *testing.T) {
	f := &RegisterForm{
		Email:    " ada@example.com ",
		Name:     "Ada",
		Surname:  "Lovelace",
		Password: "secret",
	}

	req, err := f.Payload()
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", req.Email)
}

func TestRegisterForm_AllFieldsRequired(t *testing.T) {
	f := &RegisterForm{}

	errs := f.Validate()
	require.NotNil(t, errs)
	for _, field := range []string{"email", "name", "surname", "password"} {
		assert.Contains(t, errs, field)
	}
}

func TestFieldErrors_MessageIsStable(t *testing.T) {
	errs := FieldErrors{"b": "is bad", "a": "is bad"}
	assert.Equal(t, "a: is bad; b: is bad", errs.Error(), "sorted by field")
}
