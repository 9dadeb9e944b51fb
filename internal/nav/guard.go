// Package nav is the navigation-time gate: every view switch resolves
// through the guard, which checks the in-memory session synchronously.
package nav

import "github.com/tsystem/trackdesk/internal/session"

// Route identifies a screen. The values mirror the tracker's URLs so
// logs and tests read naturally.
type Route string

const (
	RouteLogin        Route = "/login"
	RouteRegister     Route = "/register"
	RouteProjects     Route = "/projects"
	RouteTickets      Route = "/projects/:id/tickets"
	RouteTicketDetail Route = "/projects/:id/tickets/:id"
	RouteUsers        Route = "/users"
)

// IdentitySource is the synchronous identity read the guard decides
// against. The session store implements it.
type IdentitySource interface {
	Current() *session.Identity
}

type Guard struct {
	ids IdentitySource
}

func NewGuard(ids IdentitySource) *Guard {
	return &Guard{ids: ids}
}

// Protected reports whether a route requires an authenticated session.
func Protected(r Route) bool {
	return r != RouteLogin && r != RouteRegister
}

// Resolve decides one navigation attempt: the returned route is what
// actually gets shown. No identity on a protected route redirects to
// login; a non-admin asking for the users screen lands on projects.
func (g *Guard) Resolve(target Route) Route {
	if !Protected(target) {
		return target
	}
	id := g.ids.Current()
	if id == nil {
		return RouteLogin
	}
	if target == RouteUsers && !id.IsAdmin() {
		return RouteProjects
	}
	return target
}
