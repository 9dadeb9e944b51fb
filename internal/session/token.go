package session

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tsystem/trackdesk/internal/errs"
	"github.com/tsystem/trackdesk/internal/model"
)

// tokenShape matches a structurally valid three-segment signed token.
// Anything else is never sent to the server and decodes to "no session".
var tokenShape = regexp.MustCompile(`^[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+$`)

// Identity is what the token claims say about the current user. It is
// always recomputed from the token, never cached separately, so it can
// not drift from the credential actually being presented.
type Identity struct {
	UserID  string
	Email   string
	Name    string
	Surname string
	Role    model.Role
}

func (id *Identity) FullName() string {
	return strings.TrimSpace(id.Name + " " + id.Surname)
}

func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == model.RoleAdmin
}

// claims mirrors the backend's token payload: subject is the login
// email, the rest are custom claims.
type claims struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// CleanToken normalizes a persisted token value: surrounding quotes and
// a stray "Bearer " prefix are stripped. Returns "" when the result is
// not shaped like a signed token.
func CleanToken(raw string) string {
	t := strings.TrimSpace(raw)
	t = strings.Trim(t, `"`)
	for _, p := range []string{"Bearer ", "bearer "} {
		t = strings.TrimPrefix(t, p)
	}
	t = strings.TrimSpace(t)
	if !tokenShape.MatchString(t) {
		return ""
	}
	return t
}

// DecodeIdentity extracts the identity claims from a token. The
// signature is not verified here: the client only displays the claims,
// and the server re-verifies the token on every request. Expiry is
// checked locally so a stale persisted token restores to "no session".
func DecodeIdentity(token string) (*Identity, error) {
	if CleanToken(token) == "" {
		return nil, errs.ErrInvalidToken
	}
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: expired at %s", errs.ErrInvalidToken, c.ExpiresAt.Format(time.RFC3339))
	}
	if c.UserID == "" && c.Subject == "" {
		return nil, fmt.Errorf("%w: no subject claims", errs.ErrInvalidToken)
	}
	return &Identity{
		UserID:  c.UserID,
		Email:   c.Subject,
		Name:    c.Name,
		Surname: c.Surname,
		Role:    model.Role(c.Role),
	}, nil
}
