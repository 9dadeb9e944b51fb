package dialog

import (
	"strings"

	"github.com/tsystem/trackdesk/internal/model"
)

// ProjectForm collects a project create/edit payload.
type ProjectForm struct {
	Mode      Mode
	ProjectID string

	Name        string `validate:"required,max=255"`
	Description string `validate:"max=4000"`
	Status      string `validate:"omitempty,oneof=ACTIVE ARCHIVED"`
}

// NewProjectForm starts from defaults (create mode).
func NewProjectForm() *ProjectForm {
	return &ProjectForm{Mode: ModeCreate, Status: string(model.ProjectStatusActive)}
}

// EditProjectForm pre-populates from an existing project.
func EditProjectForm(p model.Project) *ProjectForm {
	return &ProjectForm{
		Mode:        ModeEdit,
		ProjectID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
	}
}

// Validate returns nil when the form may be submitted.
func (f *ProjectForm) Validate() FieldErrors {
	f.Name = strings.TrimSpace(f.Name)
	return check(f)
}

// Payload returns the validated request, or the field errors.
func (f *ProjectForm) Payload() (model.ProjectRequest, error) {
	if errs := f.Validate(); errs != nil {
		return model.ProjectRequest{}, errs
	}
	return model.ProjectRequest{
		Name:        f.Name,
		Description: strings.TrimSpace(f.Description),
		Status:      model.ProjectStatus(f.Status),
	}, nil
}
