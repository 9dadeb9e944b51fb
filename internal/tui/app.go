// Package tui renders the tracker screens in the terminal: one view
// per navigation route, with every view switch resolved through the
// route guard and every list backed by a page controller.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tsystem/trackdesk/internal/api"
	"github.com/tsystem/trackdesk/internal/controller"
	"github.com/tsystem/trackdesk/internal/nav"
	"github.com/tsystem/trackdesk/internal/session"
)

// requestTimeout bounds every API call issued from the UI. There is no
// mid-flight cancellation: a superseding navigation simply ignores the
// late response.
const requestTimeout = 15 * time.Second

// Deps is the explicit wiring of the app: no globals, everything comes
// in through the constructor.
type Deps struct {
	Session  *session.Store
	Guard    *nav.Guard
	Auth     *api.AuthClient
	Projects *controller.Projects
	Tickets  *controller.Tickets
	Comments *controller.Comments
	Users    *controller.Users
	Log      zerolog.Logger
}

// Messages shared between views. Every result message carries the
// route it was issued for so stale responses are dropped after a
// navigation, not applied.
type (
	navigateMsg struct {
		route nav.Route
	}
	reloadedMsg struct {
		route nav.Route
	}
	errMsg struct {
		route nav.Route
		err   error
	}
	loginResultMsg struct {
		identity *session.Identity
		err      error
	}
	registerResultMsg struct {
		err error
	}
	identityChangedMsg struct {
		identity *session.Identity
	}
	statusMsg struct {
		text string
	}
)

// App is the root model.
type App struct {
	deps Deps

	route  nav.Route
	width  int
	height int

	status  string
	lastErr string

	login     loginModel
	register  registerModel
	projects  projectsModel
	tickets   ticketsModel
	detail    detailModel
	users     usersModel
	overlay   *dialogModel
	idStream  <-chan *session.Identity
	stopIDSub func()
}

func NewApp(deps Deps) App {
	stream, stop := deps.Session.Subscribe()
	a := App{
		deps:      deps,
		login:     newLoginModel(),
		register:  newRegisterModel(),
		projects:  newProjectsModel(),
		tickets:   newTicketsModel(),
		detail:    newDetailModel(),
		users:     newUsersModel(),
		idStream:  stream,
		stopIDSub: stop,
	}
	// Restore a persisted session before the first frame so the guard
	// can land a returning user straight on the projects screen.
	deps.Session.Restore()
	a.route = deps.Guard.Resolve(nav.RouteProjects)
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{watchIdentity(a.idStream)}
	if a.route == nav.RouteProjects {
		cmds = append(cmds, a.loadCmd(nav.RouteProjects))
	}
	return tea.Batch(cmds...)
}

// watchIdentity forwards session changes into the message loop so
// navigation reacts to login/logout without polling.
func watchIdentity(ch <-chan *session.Identity) tea.Cmd {
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return identityChangedMsg{identity: id}
	}
}

// navigate resolves the target through the guard and primes the
// landing view.
func (a *App) navigate(target nav.Route) tea.Cmd {
	resolved := a.deps.Guard.Resolve(target)
	if resolved != target {
		a.deps.Log.Debug().Str("target", string(target)).Str("resolved", string(resolved)).Msg("navigation redirected")
	}
	a.route = resolved
	a.lastErr = ""
	a.overlay = nil

	switch resolved {
	case nav.RouteLogin:
		a.login = newLoginModel()
		return a.login.focusCmd()
	case nav.RouteRegister:
		a.register = newRegisterModel()
		return a.register.focusCmd()
	case nav.RouteProjects, nav.RouteTickets, nav.RouteTicketDetail, nav.RouteUsers:
		return a.loadCmd(resolved)
	}
	return nil
}

// loadCmd fetches the current route's list in the background.
func (a *App) loadCmd(route nav.Route) tea.Cmd {
	deps := a.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		var err error
		switch route {
		case nav.RouteProjects:
			err = deps.Projects.Load(ctx)
		case nav.RouteTickets:
			err = deps.Tickets.Load(ctx)
		case nav.RouteTicketDetail:
			err = deps.Comments.Load(ctx)
		case nav.RouteUsers:
			err = deps.Users.Load(ctx)
		}
		if err != nil {
			return errMsg{route: route, err: err}
		}
		return reloadedMsg{route: route}
	}
}

// mutateCmd runs a controller mutation (which reloads on success) off
// the UI loop.
func (a *App) mutateCmd(route nav.Route, status string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			return errMsg{route: route, err: err}
		}
		return tea.BatchMsg{
			func() tea.Msg { return reloadedMsg{route: route} },
			func() tea.Msg { return statusMsg{text: status} },
		}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.projects.resize(msg.Width, msg.Height)
		a.tickets.resize(msg.Width, msg.Height)
		a.users.resize(msg.Width, msg.Height)
		a.detail.resize(msg.Width, msg.Height)
		return a, nil

	case identityChangedMsg:
		cmd := watchIdentity(a.idStream)
		if msg.identity == nil && nav.Protected(a.route) {
			return a, tea.Batch(cmd, a.navigate(nav.RouteLogin))
		}
		return a, cmd

	case navigateMsg:
		return a, a.navigate(msg.route)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case errMsg:
		// A response for a view we already left is stale: drop it.
		if msg.route != a.route {
			return a, nil
		}
		a.lastErr = msg.err.Error()
		return a, nil

	case reloadedMsg:
		if msg.route != a.route {
			return a, nil
		}
		a.lastErr = ""
		a.refreshRoute()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.stopIDSub()
			return a, tea.Quit
		}
	}

	// Modal dialog swallows all input while open.
	if a.overlay != nil {
		return a.updateOverlay(msg)
	}

	switch a.route {
	case nav.RouteLogin:
		return a.updateLogin(msg)
	case nav.RouteRegister:
		return a.updateRegister(msg)
	case nav.RouteProjects:
		return a.updateProjects(msg)
	case nav.RouteTickets:
		return a.updateTickets(msg)
	case nav.RouteTicketDetail:
		return a.updateDetail(msg)
	case nav.RouteUsers:
		return a.updateUsers(msg)
	}
	return a, nil
}

// refreshRoute re-reads controller state into the active view's
// widgets after a load or reload.
func (a *App) refreshRoute() {
	switch a.route {
	case nav.RouteProjects:
		a.projects.setRows(a.deps.Projects.Items())
	case nav.RouteTickets:
		a.tickets.setRows(a.deps.Tickets.Items())
	case nav.RouteTicketDetail:
		a.detail.setData(a.deps.Comments.Items(), a.deps.Comments.History())
	case nav.RouteUsers:
		a.users.setRows(a.deps.Users.Items())
	}
}

// logout clears the session; the identity stream then bounces the UI
// back to the login view.
func (a *App) logout() tea.Cmd {
	deps := a.deps
	return func() tea.Msg {
		deps.Session.Logout()
		return nil
	}
}

func (a App) View() string {
	var body string
	switch a.route {
	case nav.RouteLogin:
		body = a.login.view()
	case nav.RouteRegister:
		body = a.register.view()
	case nav.RouteProjects:
		body = a.projects.view()
	case nav.RouteTickets:
		body = a.tickets.view(a.currentProjectName())
	case nav.RouteTicketDetail:
		body = a.detail.view()
	case nav.RouteUsers:
		body = a.users.view()
	}
	if a.overlay != nil {
		body = a.overlay.view()
	}

	header := titleStyle.Render("trackdesk") + " " + crumbStyle.Render(string(a.route)+a.identitySuffix())
	footer := ""
	if a.lastErr != "" {
		footer = errorStyle.Render(a.lastErr)
	} else if a.status != "" {
		footer = statusStyle.Render(a.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a App) identitySuffix() string {
	id := a.deps.Session.Current()
	if id == nil {
		return ""
	}
	return "  ·  " + id.Email + " (" + string(id.Role) + ")"
}

func (a App) currentProjectName() string {
	pid := a.deps.Tickets.ProjectID()
	for _, p := range a.deps.Projects.All() {
		if p.ID == pid {
			return p.Name
		}
	}
	return pid
}
