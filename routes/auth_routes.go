package routes

import (
	"gocab/internal/handlers"
	"gocab/internal/middleware"
	"gocab/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes wires login and logout.
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, sessions services.SessionService) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", middleware.AuthRequired(sessions), authHandler.Logout)
	}
}
