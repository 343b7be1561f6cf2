package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devlink/devlink/internal/avatar"
	"github.com/devlink/devlink/internal/domain"
	"github.com/devlink/devlink/internal/queue"
	"github.com/devlink/devlink/internal/security"
	"github.com/devlink/devlink/internal/validate"
)

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type tokenResp struct {
	Token string `json:"token"`
}

// Register godoc
// @Summary Register a user and issue a token
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerReq true "register"
// @Success 201 {object} tokenResp
// @Failure 400 {object} map[string]any
// @Failure 409 {object} map[string]string
// @Router /users [post]
func (h *Handler) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Details(err)})
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	u := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Avatar:       avatar.URL(email),
	}
	if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
		fail(c, err)
		return
	}

	tok, err := security.IssueToken(h.JWTSecret, u.ID.Hex(), h.TokenTTL)
	if err != nil {
		fail(c, err)
		return
	}

	go h.Events.Publish(c.Request.Context(), queue.Exchange, queue.KeyUserRegistered,
		queue.UserRegistered{UserID: u.ID, Email: u.Email, Name: u.Name},
		c.GetString("X-Request-ID"))

	c.JSON(http.StatusCreated, tokenResp{Token: tok})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Verify credentials and issue a token
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "login"
// @Success 200 {object} tokenResp
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /auth [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Details(err)})
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	u, err := h.Store.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		fail(c, err)
		return
	}
	if u == nil || !security.CheckPassword(u.PasswordHash, in.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	tok, err := security.IssueToken(h.JWTSecret, u.ID.Hex(), h.TokenTTL)
	if err != nil {
		fail(c, err)
		return
	}

	go h.Events.Publish(c.Request.Context(), queue.Exchange, queue.KeyUserLoggedIn,
		queue.UserLoggedIn{UserID: u.ID, Email: u.Email},
		c.GetString("X-Request-ID"))

	c.JSON(http.StatusOK, tokenResp{Token: tok})
}

// Me godoc
// @Summary Current user, password hash excluded
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Router /auth [get]
func (h *Handler) Me(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	u, err := h.Store.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
