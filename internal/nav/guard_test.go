package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsystem/trackdesk/internal/model"
	"github.com/tsystem/trackdesk/internal/session"
)

type staticIdentity struct {
	id *session.Identity
}

func (s *staticIdentity) Current() *session.Identity { return s.id }

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	g := NewGuard(&staticIdentity{})

	for _, r := range []Route{RouteProjects, RouteTickets, RouteTicketDetail, RouteUsers} {
		assert.Equal(t, RouteLogin, g.Resolve(r), "route %s", r)
	}
}

func TestGuard_AnonymousMayVisitAuthScreens(t *testing.T) {
	g := NewGuard(&staticIdentity{})

	assert.Equal(t, RouteLogin, g.Resolve(RouteLogin))
	assert.Equal(t, RouteRegister, g.Resolve(RouteRegister))
}

func TestGuard_UserPassesProtectedRoutes(t *testing.T) {
	g := NewGuard(&staticIdentity{id: &session.Identity{Role: model.RoleUser}})

	assert.Equal(t, RouteProjects, g.Resolve(RouteProjects))
	assert.Equal(t, RouteTickets, g.Resolve(RouteTickets))
}

func TestGuard_NonAdminBouncedFromUsers(t *testing.T) {
	for _, role := range []model.Role{model.RoleUser, model.RoleProjectManager} {
		g := NewGuard(&staticIdentity{id: &session.Identity{Role: role}})
		assert.Equal(t, RouteProjects, g.Resolve(RouteUsers), "role %s", role)
	}
}

func TestGuard_AdminReachesUsers(t *testing.T) {
	g := NewGuard(&staticIdentity{id: &session.Identity{Role: model.RoleAdmin}})
	assert.Equal(t, RouteUsers, g.Resolve(RouteUsers))
}

func TestProtected(t *testing.T) {
	assert.False(t, Protected(RouteLogin))
	assert.False(t, Protected(RouteRegister))
	assert.True(t, Protected(RouteProjects))
	assert.True(t, Protected(RouteUsers))
}
