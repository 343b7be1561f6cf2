package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlink/devlink/internal/domain"
	"github.com/devlink/devlink/internal/github"
	"github.com/devlink/devlink/internal/validate"
)

type profileReq struct {
	Company        string        `json:"company"`
	Website        string        `json:"website"`
	Location       string        `json:"location"`
	Status         string        `json:"status" binding:"required"`
	Skills         []string      `json:"skills" binding:"required,min=1"`
	Bio            string        `json:"bio"`
	GithubUsername string        `json:"githubusername"`
	Social         domain.Social `json:"social"`
}

// UpsertProfile godoc
// @Summary Create the caller's profile or replace it wholesale
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body profileReq true "profile fields"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]any
// @Router /profile [post]
func (h *Handler) UpsertProfile(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	var in profileReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Details(err)})
		return
	}

	p := &domain.Profile{
		UserID:         uid,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Status:         in.Status,
		Skills:         in.Skills,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Social:         in.Social,
	}
	out, err := h.Store.UpsertProfile(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteProfile godoc
// @Summary Delete the caller's profile
// @Tags profile
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /profile [delete]
func (h *Handler) DeleteProfile(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteProfileByUser(c.Request.Context(), uid); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "profile deleted"})
}

// MyProfile godoc
// @Summary The caller's own profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 404 {object} map[string]string
// @Router /profile/me [get]
func (h *Handler) MyProfile(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	p, err := h.Store.FindProfileByUser(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListProfiles godoc
// @Summary All profiles
// @Tags profile
// @Produce json
// @Success 200 {array} domain.Profile
// @Router /profile [get]
func (h *Handler) ListProfiles(c *gin.Context) {
	out, err := h.Store.ListProfiles(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if out == nil {
		out = []domain.Profile{}
	}
	c.JSON(http.StatusOK, out)
}

// ProfileByUser godoc
// @Summary Profile by owning user id
// @Tags profile
// @Param id path string true "user id"
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 404 {object} map[string]string
// @Router /profile/user/{id} [get]
func (h *Handler) ProfileByUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	p, err := h.Store.FindProfileByUser(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type experienceReq struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddExperience godoc
// @Summary Add an experience entry at the front of the list
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body experienceReq true "experience"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /profile/experience [put]
func (h *Handler) AddExperience(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	var in experienceReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Details(err)})
		return
	}
	from, to, ferr := parseDates(in.From, in.To, in.Current)
	if ferr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": ferr})
		return
	}

	e := domain.Experience{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}
	out, err := h.Store.AddExperience(c.Request.Context(), uid, e)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// RemoveExperience godoc
// @Summary Remove an experience entry; absent ids are a no-op
// @Tags profile
// @Security BearerAuth
// @Param id path string true "entry id"
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 404 {object} map[string]string
// @Router /profile/experience/{id} [delete]
func (h *Handler) RemoveExperience(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	out, err := h.Store.RemoveExperience(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type educationReq struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         string `json:"from" binding:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// AddEducation godoc
// @Summary Add an education entry at the front of the list
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body educationReq true "education"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /profile/education [put]
func (h *Handler) AddEducation(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	var in educationReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.Details(err)})
		return
	}
	from, to, ferr := parseDates(in.From, in.To, in.Current)
	if ferr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": ferr})
		return
	}

	e := domain.Education{
		ID:           uuid.NewString(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}
	out, err := h.Store.AddEducation(c.Request.Context(), uid, e)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// RemoveEducation godoc
// @Summary Remove an education entry; absent ids are a no-op
// @Tags profile
// @Security BearerAuth
// @Param id path string true "entry id"
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 404 {object} map[string]string
// @Router /profile/education/{id} [delete]
func (h *Handler) RemoveEducation(c *gin.Context) {
	uid, ok := actor(c)
	if !ok {
		return
	}
	out, err := h.Store.RemoveEducation(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GithubRepos godoc
// @Summary Latest public repos of a GitHub user
// @Tags profile
// @Param username path string true "github username"
// @Produce json
// @Success 200 {array} map[string]any
// @Failure 404 {object} map[string]string
// @Router /profile/github/{username} [get]
func (h *Handler) GithubRepos(c *gin.Context) {
	if h.Github == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	body, err := h.Github.Repos(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, github.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no github profile found"})
			return
		}
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// parseDates accepts YYYY-MM-DD or RFC3339. A "current" entry never carries
// an end date, whatever the client sent.
func parseDates(from, to string, current bool) (time.Time, *time.Time, []validate.FieldError) {
	f, err := parseDate(from)
	if err != nil {
		return time.Time{}, nil, []validate.FieldError{{Field: "from", Message: "must be a valid date"}}
	}
	if current || to == "" {
		return f, nil, nil
	}
	t, err := parseDate(to)
	if err != nil {
		return time.Time{}, nil, []validate.FieldError{{Field: "to", Message: "must be a valid date"}}
	}
	return f, &t, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
