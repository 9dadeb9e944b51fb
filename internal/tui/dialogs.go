package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tsystem/trackdesk/internal/dialog"
)

// dialogModel is a modal form overlay. The bound dialog form owns the
// field values; on completion the page-supplied submit hook validates
// them and returns the mutation command. The overlay itself never
// talks to the network.
type dialogModel struct {
	title string
	form  *huh.Form
	build func() *huh.Form
	// submit validates the dialog state and hands back the command to
	// run, or field errors that keep the dialog open.
	submit func() (tea.Cmd, dialog.FieldErrors)
	errs   dialog.FieldErrors
}

func newDialog(title string, build func() *huh.Form, submit func() (tea.Cmd, dialog.FieldErrors)) *dialogModel {
	return &dialogModel{
		title:  title,
		form:   build(),
		build:  build,
		submit: submit,
	}
}

func (a App) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		a.overlay = nil
		return a, nil
	}

	f, cmd := a.overlay.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		a.overlay.form = form
	}

	switch a.overlay.form.State {
	case huh.StateCompleted:
		submitCmd, errs := a.overlay.submit()
		if errs != nil {
			// Keep the dialog open; values survive because they are
			// bound to the dialog form, not the huh widgets.
			a.overlay.errs = errs
			a.overlay.form = a.overlay.build()
			return a, a.overlay.form.Init()
		}
		a.overlay = nil
		return a, submitCmd
	case huh.StateAborted:
		a.overlay = nil
		return a, nil
	}
	return a, cmd
}

func (d *dialogModel) view() string {
	body := labelStyle.Render(d.title) + "\n\n" + d.form.View()
	if len(d.errs) > 0 {
		body += "\n" + fieldErrStyle.Render(d.errs.Error())
	}
	body += "\n" + helpStyle.Render("esc cancel")
	return boxStyle.Render(body)
}

func projectFormFields(f *dialog.ProjectForm) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("Name").Value(&f.Name),
		huh.NewText().Title("Description").Value(&f.Description),
	}
	if f.Mode == dialog.ModeEdit {
		fields = append(fields, huh.NewSelect[string]().
			Title("Status").
			Options(huh.NewOptions("ACTIVE", "ARCHIVED")...).
			Value(&f.Status))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(false)
}

func ticketFormFields(f *dialog.TicketForm) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("Name").Value(&f.Name),
		huh.NewSelect[string]().
			Title("Type").
			Options(huh.NewOptions("BUG", "FEATURE", "TASK")...).
			Value(&f.Type),
		huh.NewSelect[string]().
			Title("Priority").
			Options(huh.NewOptions("LOW", "MEDIUM", "HIGH")...).
			Value(&f.Priority),
	}
	if f.Mode == dialog.ModeEdit {
		fields = append(fields, huh.NewSelect[string]().
			Title("State").
			Options(huh.NewOptions("OPEN", "IN_PROGRESS", "DONE")...).
			Value(&f.State))
	}
	fields = append(fields, huh.NewText().Title("Description").Value(&f.Description))
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(false)
}

func userFormFields(f *dialog.UserForm) *huh.Form {
	passwordTitle := "Password"
	if f.Mode == dialog.ModeEdit {
		passwordTitle = "Password (blank keeps current)"
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Email").Value(&f.Email),
		huh.NewInput().Title("Name").Value(&f.Name),
		huh.NewInput().Title("Surname").Value(&f.Surname),
		huh.NewInput().Title(passwordTitle).EchoMode(huh.EchoModePassword).Value(&f.Password),
		huh.NewSelect[string]().
			Title("Role").
			Options(huh.NewOptions("ADMIN", "USER", "PROJECT_MANAGER")...).
			Value(&f.Role),
	)).WithShowHelp(false)
}
