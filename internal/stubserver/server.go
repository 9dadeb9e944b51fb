// Package stubserver is an in-memory stand-in for the tracker backend.
// It speaks the same REST contract the real API does (auth, projects,
// tickets, comments, history, users), which makes it the fixture for
// end-to-end client tests and a zero-setup target for local work.
package stubserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/tsystem/trackdesk/internal/errs"
	"github.com/tsystem/trackdesk/internal/model"
)

const (
	ctxUserID   = "userID"
	ctxUserName = "userName"
	ctxRole     = "role"
)

type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

type Server struct {
	store  *store
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
	engine *gin.Engine
}

func New(opts Options) *Server {
	if opts.TokenTTL == 0 {
		opts.TokenTTL = 8 * time.Hour
	}
	s := &Server{
		store:  newStore(),
		secret: []byte(opts.JWTSecret),
		ttl:    opts.TokenTTL,
		log:    opts.Logger.With().Str("component", "stubserver").Logger(),
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// SeedUser creates an account directly, bypassing the API. Dev and
// test setup only.
func (s *Server) SeedUser(email, password string, role model.Role) (model.User, error) {
	return s.store.createUser(model.UserRequest{
		Email:    email,
		Name:     strings.Split(email, "@")[0],
		Surname:  "Seeded",
		Password: password,
	}, role)
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "trackdesk-stub", "time": time.Now().Unix()})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", s.login)
		auth.POST("/register", s.register)
	}

	authed := api.Group("", s.authRequired())
	{
		authed.GET("/projects", s.listProjects)
		authed.POST("/projects", s.createProject)
		authed.GET("/projects/:projectId", s.getProject)
		authed.PUT("/projects/:projectId", s.updateProject)
		authed.DELETE("/projects/:projectId", s.deleteProject)

		authed.GET("/projects/:projectId/tickets", s.listTickets)
		authed.POST("/projects/:projectId/tickets", s.createTicket)
		authed.GET("/projects/:projectId/tickets/:ticketId", s.getTicket)
		authed.PUT("/projects/:projectId/tickets/:ticketId", s.updateTicket)
		authed.DELETE("/projects/:projectId/tickets/:ticketId", s.deleteTicket)

		authed.GET("/projects/:projectId/tickets/:ticketId/comments", s.listComments)
		authed.POST("/projects/:projectId/tickets/:ticketId/comments", s.createComment)
		authed.PUT("/projects/:projectId/tickets/:ticketId/comments/:commentId", s.updateComment)
		authed.DELETE("/projects/:projectId/tickets/:ticketId/comments/:commentId", s.deleteComment)

		authed.GET("/projects/:projectId/tickets/:ticketId/history", s.listHistory)

		users := authed.Group("/users", s.adminRequired())
		{
			users.GET("", s.listUsers)
			users.POST("", s.createUser)
			users.GET("/:id", s.getUser)
			users.PUT("/:id", s.updateUser)
			users.DELETE("/:id", s.deleteUser)
			users.POST("/:id/block", s.blockUser)
			users.POST("/:id/unblock", s.unblockUser)
		}
	}

	return r
}

// tokenClaims mirrors the production backend's JWT payload.
type tokenClaims struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(u model.User) (string, error) {
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID:  u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Role:    string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}).SignedString(s.secret)
}

func (s *Server) parseToken(raw string) (*tokenClaims, error) {
	t, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*tokenClaims); ok && t.Valid {
		return c, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		claims, err := s.parseToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		// A blocked or deleted user's token is refused even if the
		// signature still checks out.
		u, ok := s.store.getUser(claims.UserID)
		if !ok || u.Blocked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ctxUserID, u.ID)
		c.Set(ctxUserName, strings.TrimSpace(u.Name+" "+u.Surname))
		c.Set(ctxRole, string(u.Role))
		c.Next()
	}
}

func (s *Server) adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != string(model.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// respondErr maps store sentinels onto HTTP statuses with the
// {"error": ...} body shape the client's gateway normalizes.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, errs.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "User with same username or email already exists"})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
