package user

import (
	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	{
		users.POST("", handler.Register)
		users.POST("/login", handler.Login)
		users.GET("/profile", middleware.AuthMiddleware(), handler.Profile)
	}
}
