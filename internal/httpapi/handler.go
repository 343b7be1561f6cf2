package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/devlink/devlink/internal/github"
	"github.com/devlink/devlink/internal/log"
	"github.com/devlink/devlink/internal/queue"
	"github.com/devlink/devlink/internal/repo"
)

type Handler struct {
	Store     *repo.Store
	JWTSecret string
	TokenTTL  time.Duration
	Events    queue.Publisher
	Github    *github.Client
}

func NewHandler(store *repo.Store, jwtSecret string, tokenTTL time.Duration, pub queue.Publisher, gh *github.Client) *Handler {
	if pub == nil {
		pub = queue.NewNoop()
	}
	return &Handler{
		Store:     store,
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
		Events:    pub,
		Github:    gh,
	}
}

// actor resolves the user id the auth middleware stored in the context.
func actor(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(ctxUserIDKey))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// fail maps repo sentinel errors to their HTTP statuses. Anything unexpected
// is logged and reported as a bare internal error; driver text never reaches
// the client.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repo.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, repo.ErrAlreadyLiked):
		c.JSON(http.StatusConflict, gin.H{"error": "post already liked"})
	case errors.Is(err, repo.ErrNotLiked):
		c.JSON(http.StatusConflict, gin.H{"error": "post not liked"})
	case errors.Is(err, repo.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	default:
		log.WithDD(c.Request.Context(), log.L()).Error("request failed",
			zap.String("route", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
