package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"loginapp/internal/controllers"
	"loginapp/internal/middleware"
)

// Dependencies are the pieces the HTTP surface is built from
type Dependencies struct {
	Logger          zerolog.Logger
	UserController  *controllers.UserController
	GeneralLimiter  *middleware.RateLimiter
	AuthRateLimiter *middleware.RateLimiter
	SharedLimit     gin.HandlerFunc // cross-instance limit, nil when Redis is not configured
}

// New builds the gin engine with all routes registered
func New(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	users := router.Group("/api/users")
	if deps.GeneralLimiter != nil {
		users.Use(deps.GeneralLimiter.LimitMiddleware())
	}
	if deps.AuthRateLimiter != nil {
		users.Use(deps.AuthRateLimiter.LimitMiddleware())
	}
	if deps.SharedLimit != nil {
		users.Use(deps.SharedLimit)
	}
	{
		users.POST("/register", deps.UserController.Register)
		users.POST("/login", deps.UserController.Login)
	}

	return router
}
