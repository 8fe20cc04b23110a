package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"go-ems/internal/employee"
	"go-ems/internal/media"
	"go-ems/internal/shared/response"
	"go-ems/internal/user"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func registerModules(router *gin.Engine, db *mongo.Database, logger *zap.Logger) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(db)
	userRepo := user.NewRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := employeeRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("employee indexes: %w", err)
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}

	// --- Media gateway ---
	uploader := media.NewCloudinaryUploader(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
		logger,
	)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, uploader, logger)
	userService := user.NewService(userRepo, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	userHandler := user.NewHandler(userService, logger)

	// --- Routes ---
	api := router.Group("/api")
	api.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running...")
	})

	user.RegisterRoutes(api, userHandler)
	employee.RegisterRoutes(api, employeeHandler, logger)

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not Found - "+c.Request.URL.Path, nil)
	})

	return nil
}
