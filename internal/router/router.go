package router

import (
	"fmt"
	"net/http"
	"time"

	"blogapi/internal/apperr"
	"blogapi/internal/config"
	"blogapi/internal/handlers"
	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Requests allowed per client IP per hour.
const rateLimitPerHour = 500

// New wires the middleware stack and the route table.
func New(cfg *config.Config, gdb *gorm.DB, tokens *token.Service, log *logrus.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	// The error renderer must wrap everything that can abort with an error.
	r.Use(middleware.ErrorHandler(cfg, log))
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.RateLimit(rate.Every(time.Hour/rateLimitPerHour), rateLimitPerHour))

	authHandler := handlers.NewAuthHandler(gdb, cfg, tokens)
	userHandler := handlers.NewUserHandler(gdb)
	postHandler := handlers.NewPostHandler(gdb)
	commentHandler := handlers.NewCommentHandler(gdb)
	interactionHandler := handlers.NewInteractionHandler(gdb)
	adminHandler := handlers.NewAdminHandler(gdb)

	requireAuth := middleware.RequireAuth(gdb, tokens)

	api := r.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/signup", authHandler.Signup)
		users.POST("/login", authHandler.Login)
		users.GET("", requireAuth, middleware.RequireRole(models.RoleAdmin), userHandler.List)
	}

	posts := api.Group("/posts", requireAuth)
	{
		posts.GET("", postHandler.List)
		posts.POST("", middleware.RequireRole(models.RoleUser), postHandler.Create)
		posts.PATCH("/approve/:id", middleware.RequireRole(models.RoleAdmin), postHandler.Approve)
		posts.PATCH("/reject/:id", middleware.RequireRole(models.RoleAdmin), postHandler.Reject)
	}

	comments := api.Group("/comments", requireAuth)
	{
		comments.GET("", commentHandler.List)
		comments.POST("/:postId", commentHandler.Create)
	}

	interactions := api.Group("/interactions", requireAuth)
	{
		interactions.GET("", interactionHandler.List)
		interactions.POST("/post/:id", interactionHandler.CreateOnPost)
		interactions.POST("/comment/:id", interactionHandler.CreateOnComment)
	}

	admin := api.Group("/admin", requireAuth, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/statistics", adminHandler.GetStatistics)
	}

	r.NoRoute(notImplemented)
	r.NoMethod(notImplemented)

	return r
}

func notImplemented(c *gin.Context) {
	err := apperr.New(fmt.Sprintf("Can't %s %s", c.Request.Method, c.Request.URL.String()), http.StatusNotImplemented)
	_ = c.Error(err)
	c.Abort()
}
