package dialog

import (
	"strings"

	"github.com/tsystem/trackdesk/internal/model"
)

// UserForm collects the admin user create/edit payload. Password is
// required on create; on edit an empty password keeps the current one.
type UserForm struct {
	Mode   Mode
	UserID string

	Email    string `validate:"required,email"`
	Name     string `validate:"required,max=120"`
	Surname  string `validate:"required,max=120"`
	Password string `validate:"omitempty,min=6,max=200"`
	Role     string `validate:"required,oneof=ADMIN USER PROJECT_MANAGER"`
}

func NewUserForm() *UserForm {
	return &UserForm{Mode: ModeCreate, Role: string(model.RoleUser)}
}

func EditUserForm(u model.User) *UserForm {
	return &UserForm{
		Mode:    ModeEdit,
		UserID:  u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Surname: u.Surname,
		Role:    string(u.Role),
	}
}

func (f *UserForm) Validate() FieldErrors {
	f.Email = strings.TrimSpace(f.Email)
	f.Name = strings.TrimSpace(f.Name)
	f.Surname = strings.TrimSpace(f.Surname)
	errs := check(f)
	if f.Mode == ModeCreate && f.Password == "" {
		if errs == nil {
			errs = FieldErrors{}
		}
		errs["password"] = "is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (f *UserForm) Payload() (model.UserRequest, error) {
	if errs := f.Validate(); errs != nil {
		return model.UserRequest{}, errs
	}
	return model.UserRequest{
		Email:    f.Email,
		Name:     f.Name,
		Surname:  f.Surname,
		Password: f.Password,
		Role:     model.Role(f.Role),
	}, nil
}

// RegisterForm is the self-service signup dialog.
type RegisterForm struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required,max=120"`
	Surname  string `validate:"required,max=120"`
	Password string `validate:"required,min=6,max=200"`
}

func (f *RegisterForm) Validate() FieldErrors {
	f.Email = strings.TrimSpace(f.Email)
	f.Name = strings.TrimSpace(f.Name)
	f.Surname = strings.TrimSpace(f.Surname)
	return check(f)
}

func (f *RegisterForm) Payload() (model.RegisterRequest, error) {
	if errs := f.Validate(); errs != nil {
		return model.RegisterRequest{}, errs
	}
	return model.RegisterRequest{
		Email:    f.Email,
		Name:     f.Name,
		Surname:  f.Surname,
		Password: f.Password,
	}, nil
}
