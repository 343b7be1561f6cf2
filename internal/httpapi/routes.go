package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/devlink/devlink/internal/validate"
)

func NewRouter(h *Handler) *gin.Engine {
	validate.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authed := AuthRequired(h.JWTSecret)

	r.POST("/users", h.Register)

	r.POST("/auth", h.Login)
	r.GET("/auth", authed, h.Me)

	r.GET("/profile", h.ListProfiles)
	r.GET("/profile/me", authed, h.MyProfile)
	r.GET("/profile/user/:id", h.ProfileByUser)
	r.GET("/profile/github/:username", h.GithubRepos)
	r.POST("/profile", authed, h.UpsertProfile)
	r.DELETE("/profile", authed, h.DeleteProfile)
	r.PUT("/profile/experience", authed, h.AddExperience)
	r.DELETE("/profile/experience/:id", authed, h.RemoveExperience)
	r.PUT("/profile/education", authed, h.AddEducation)
	r.DELETE("/profile/education/:id", authed, h.RemoveEducation)

	r.GET("/posts", h.ListPosts)
	r.GET("/posts/:id", h.GetPost)
	r.POST("/posts", authed, h.CreatePost)
	r.DELETE("/posts/:id", authed, h.DeletePost)
	r.PUT("/posts/like/:id", authed, h.LikePost)
	r.PUT("/posts/unlike/:id", authed, h.UnlikePost)
	r.POST("/posts/comment/:id", authed, h.AddComment)
	r.DELETE("/posts/comment/:id/:commentId", authed, h.RemoveComment)

	return r
}
