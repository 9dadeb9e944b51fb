package api

import (
	"context"

	"github.com/tsystem/trackdesk/internal/model"
)

// AuthClient talks to the unauthenticated auth endpoints. The gateway
// never injects a bearer token into these calls.
type AuthClient struct {
	gw *Gateway
}

func NewAuthClient(gw *Gateway) *AuthClient { return &AuthClient{gw: gw} }

type loginRequest struct {
	// Login accepts the email as well; the server resolves either.
	Login    string `json:"login"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a signed bearer token.
func (c *AuthClient) Login(ctx context.Context, login, password string) (string, error) {
	var out tokenResponse
	if err := c.gw.post(ctx, "/api/auth/login", loginRequest{Login: login, Password: password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Register creates an account. The issued token is discarded on
// purpose: the flow continues through the login view.
func (c *AuthClient) Register(ctx context.Context, req model.RegisterRequest) error {
	var out tokenResponse
	return c.gw.post(ctx, "/api/auth/register", req, &out)
}
