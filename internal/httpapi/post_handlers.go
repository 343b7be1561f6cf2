package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlink/devlink/internal/domain"
	"github.com/devlink/devlink/internal/queue"
	"github.com/devlink/devlink/internal/validate"
)

type postReq struct {
	Text string `json:"text" binding:"required"`
}

// CreatePost godoc
// @Summary Create a post; the author's name and avatar are snapshotted
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body postReq true "post text"
// @Success 201 {object} domain.Post
// @Failure 400 {object} map[string]any
// @Router /posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	var in postReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Details(err)})
		return
	}

	u, err := h.Store.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	p := &domain.Post{
		UserID: uid,
		Text:   strings.TrimSpace(in.Text),
		Name:   u.Name,
		Avatar: u.Avatar,
	}
	if err := h.Store.CreatePost(c.Request.Context(), p); err != nil {
		fail(c, err)
		return
	}

	go h.Events.Publish(c.Request.Context(), queue.Exchange, queue.KeyPostCreated,
		queue.PostCreated{PostID: p.ID, UserID: uid},
		c.GetString("X-Request-ID"))

	c.JSON(http.StatusCreated, p)
}

// ListPosts godoc
// @Summary All posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} domain.Post
// @Router /posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	out, err := h.Store.ListPosts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if out == nil {
		out = []domain.Post{}
	}
	c.JSON(http.StatusOK, out)
}

// GetPost godoc
// @Summary Post by id
// @Tags posts
// @Param id path string true "post id"
// @Produce json
// @Success 200 {object} domain.Post
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	p, err := h.Store.FindPostByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePost godoc
// @Summary Delete a post; author only
// @Tags posts
// @Security BearerAuth
// @Param id path string true "post id"
// @Produce json
// @Success 200 {object} domain.Post
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}
	p, err := h.Store.DeletePost(c.Request.Context(), id, uid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// LikePost godoc
// @Summary Like a post; liking twice is rejected
// @Tags posts
// @Security BearerAuth
// @Param id path string true "post id"
// @Produce json
// @Success 200 {array} domain.Like
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /posts/like/{id} [put]
func (h *Handler) LikePost(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}
	p, err := h.Store.LikePost(c.Request.Context(), id, uid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Likes)
}

// UnlikePost godoc
// @Summary Remove the caller's like from a post
// @Tags posts
// @Security BearerAuth
// @Param id path string true "post id"
// @Produce json
// @Success 200 {array} domain.Like
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /posts/unlike/{id} [put]
func (h *Handler) UnlikePost(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}
	p, err := h.Store.UnlikePost(c.Request.Context(), id, uid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Likes)
}

// AddComment godoc
// @Summary Comment on a post
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "post id"
// @Param payload body postReq true "comment text"
// @Success 200 {object} domain.Post
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /posts/comment/{id} [post]
func (h *Handler) AddComment(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}
	var in postReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Details(err)})
		return
	}

	u, err := h.Store.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	cm := domain.Comment{
		ID:        uuid.NewString(),
		UserID:    uid,
		Text:      strings.TrimSpace(in.Text),
		Name:      u.Name,
		Avatar:    u.Avatar,
		CreatedAt: time.Now().UTC(),
	}
	p, err := h.Store.AddComment(c.Request.Context(), id, cm)
	if err != nil {
		fail(c, err)
		return
	}

	go h.Events.Publish(c.Request.Context(), queue.Exchange, queue.KeyCommentAdded,
		queue.CommentAdded{PostID: id, CommentID: cm.ID, UserID: uid},
		c.GetString("X-Request-ID"))

	c.JSON(http.StatusOK, p)
}

// RemoveComment godoc
// @Summary Remove a comment from a post
// @Tags posts
// @Security BearerAuth
// @Param id path string true "post id"
// @Param commentId path string true "comment id"
// @Produce json
// @Success 200 {array} domain.Comment
// @Failure 404 {object} map[string]string
// @Router /posts/comment/{id}/{commentId} [delete]
func (h *Handler) RemoveComment(c *gin.Context) {
	if _, ok := actor(c); !ok {
		return
	}
	id, ok := postID(c)
	if !ok {
		return
	}
	p, err := h.Store.RemoveComment(c.Request.Context(), id, c.Param("commentId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p.Comments)
}

// postID parses the :id path param; a malformed id is reported the same as
// an unknown post.
func postID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return primitive.NilObjectID, false
	}
	return id, true
}
