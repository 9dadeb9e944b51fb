package dialog

import (
	"strings"

	"github.com/tsystem/trackdesk/internal/model"
)

// TicketForm collects a ticket create/edit payload. State is only part
// of the form in edit mode; new tickets open as OPEN on the server.
type TicketForm struct {
	Mode     Mode
	TicketID string

	Name        string `validate:"required,max=255"`
	Type        string `validate:"required,oneof=BUG FEATURE TASK"`
	Priority    string `validate:"required,oneof=LOW MEDIUM HIGH"`
	State       string `validate:"omitempty,oneof=OPEN IN_PROGRESS DONE"`
	Description string `validate:"max=4000"`
	AssigneeID  string
}

func NewTicketForm() *TicketForm {
	return &TicketForm{
		Mode:     ModeCreate,
		Type:     string(model.TicketTypeTask),
		Priority: string(model.TicketPriorityMedium),
	}
}

func EditTicketForm(t model.Ticket) *TicketForm {
	return &TicketForm{
		Mode:        ModeEdit,
		TicketID:    t.ID,
		Name:        t.Name,
		Type:        string(t.Type),
		Priority:    string(t.Priority),
		State:       string(t.State),
		Description: t.Description,
		AssigneeID:  t.AssigneeID,
	}
}

func (f *TicketForm) Validate() FieldErrors {
	f.Name = strings.TrimSpace(f.Name)
	errs := check(f)
	if f.Mode == ModeEdit && f.State == "" {
		if errs == nil {
			errs = FieldErrors{}
		}
		errs["state"] = "is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (f *TicketForm) CreatePayload() (model.TicketCreateRequest, error) {
	if errs := f.Validate(); errs != nil {
		return model.TicketCreateRequest{}, errs
	}
	return model.TicketCreateRequest{
		Name:        f.Name,
		Type:        model.TicketType(f.Type),
		Priority:    model.TicketPriority(f.Priority),
		Description: strings.TrimSpace(f.Description),
		AssigneeID:  f.AssigneeID,
	}, nil
}

func (f *TicketForm) UpdatePayload() (model.TicketUpdateRequest, error) {
	if errs := f.Validate(); errs != nil {
		return model.TicketUpdateRequest{}, errs
	}
	return model.TicketUpdateRequest{
		Name:        f.Name,
		Type:        model.TicketType(f.Type),
		Priority:    model.TicketPriority(f.Priority),
		State:       model.TicketState(f.State),
		Description: strings.TrimSpace(f.Description),
		AssigneeID:  f.AssigneeID,
	}, nil
}
