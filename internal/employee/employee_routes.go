package employee

import (
	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("", handler.GetAll)
		employees.GET("/search", handler.Search)
		employees.GET("/:id", handler.GetById)
		employees.POST("", handler.Create)
		employees.PUT("/:id", handler.Update)

		// admin flag gates destruction only; reads and writes are open
		// to any authenticated caller
		employees.DELETE("/:id", middleware.AdminOnly(), handler.Delete)
	}
}
