package stubserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsystem/trackdesk/internal/model"
)

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	u, err := s.store.authenticate(req.Login, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	token, err := s.issueToken(u)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	u, err := s.store.createUser(model.UserRequest{
		Email:    req.Email,
		Name:     req.Name,
		Surname:  req.Surname,
		Password: req.Password,
	}, model.RoleAdmin) // first-party signups administer their own tracker
	if err != nil {
		respondErr(c, err)
		return
	}
	token, err := s.issueToken(u)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

type projectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (s *Server) listProjects(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.listProjects())
}

func (s *Server) createProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Status != "" && req.Status != string(model.ProjectStatusActive) && req.Status != string(model.ProjectStatusArchived) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	p := s.store.createProject(c.GetString(ctxUserID), model.ProjectRequest{
		Name:        req.Name,
		Description: req.Description,
		Status:      model.ProjectStatus(req.Status),
	})
	c.JSON(http.StatusCreated, p)
}

func (s *Server) getProject(c *gin.Context) {
	p, ok := s.store.getProject(c.Param("projectId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) updateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	p, err := s.store.updateProject(c.Param("projectId"), model.ProjectRequest{
		Name:        req.Name,
		Description: req.Description,
		Status:      model.ProjectStatus(req.Status),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProject(c *gin.Context) {
	if err := s.store.deleteProject(c.Param("projectId")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type ticketCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	Description string `json:"description"`
	AssigneeID  string `json:"assigneeId"`
}

func (s *Server) createTicket(c *gin.Context) {
	var req ticketCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if !model.ValidTicketType(req.Type) || !model.ValidTicketPriority(req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type or priority"})
		return
	}
	t, err := s.store.createTicket(c.Param("projectId"), c.GetString(ctxUserID), model.TicketCreateRequest{
		Name:        req.Name,
		Type:        model.TicketType(req.Type),
		Priority:    model.TicketPriority(req.Priority),
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) listTickets(c *gin.Context) {
	items, err := s.store.listTickets(c.Param("projectId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) getTicket(c *gin.Context) {
	t, ok := s.store.getTicket(c.Param("projectId"), c.Param("ticketId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

type ticketUpdateRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	State       string `json:"state" binding:"required"`
	Description string `json:"description"`
	AssigneeID  string `json:"assigneeId"`
}

func (s *Server) updateTicket(c *gin.Context) {
	var req ticketUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if !model.ValidTicketType(req.Type) || !model.ValidTicketPriority(req.Priority) || !model.ValidTicketState(req.State) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type, priority or state"})
		return
	}
	t, err := s.store.updateTicket(c.Param("projectId"), c.Param("ticketId"), c.GetString(ctxUserID), model.TicketUpdateRequest{
		Name:        req.Name,
		Type:        model.TicketType(req.Type),
		Priority:    model.TicketPriority(req.Priority),
		State:       model.TicketState(req.State),
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTicket(c *gin.Context) {
	if err := s.store.deleteTicket(c.Param("projectId"), c.Param("ticketId")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) listComments(c *gin.Context) {
	if _, ok := s.store.getTicket(c.Param("projectId"), c.Param("ticketId")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, s.store.listComments(c.Param("ticketId")))
}

func (s *Server) createComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if _, ok := s.store.getTicket(c.Param("projectId"), c.Param("ticketId")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	comment, err := s.store.createComment(c.Param("ticketId"), c.GetString(ctxUserID), c.GetString(ctxUserName), req.Text)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) updateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	comment, err := s.store.updateComment(c.Param("ticketId"), c.Param("commentId"), req.Text)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (s *Server) deleteComment(c *gin.Context) {
	if err := s.store.deleteComment(c.Param("ticketId"), c.Param("commentId"), c.GetString(ctxUserID)); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listHistory(c *gin.Context) {
	if _, ok := s.store.getTicket(c.Param("projectId"), c.Param("ticketId")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, s.store.listHistory(c.Param("ticketId")))
}

type userRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
}

func (s *Server) listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.listUsers())
}

func (s *Server) getUser(c *gin.Context) {
	u, ok := s.store.getUser(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if !model.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}
	u, err := s.store.createUser(model.UserRequest{
		Email:    req.Email,
		Name:     req.Name,
		Surname:  req.Surname,
		Password: req.Password,
	}, model.Role(req.Role))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (s *Server) updateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if !model.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}
	u, err := s.store.updateUser(c.Param("id"), model.UserRequest{
		Email:    req.Email,
		Name:     req.Name,
		Surname:  req.Surname,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) deleteUser(c *gin.Context) {
	if err := s.store.deleteUser(c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) blockUser(c *gin.Context) {
	if err := s.store.setBlocked(c.Param("id"), true); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) unblockUser(c *gin.Context) {
	if err := s.store.setBlocked(c.Param("id"), false); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
