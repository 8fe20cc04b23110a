package app

import (
	"log"
	"os"

	"go-ems/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	validateEnv(logger)

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := connection.ConnectMongoWithRetry(uri, 5)
	if err != nil {
		return err
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "employee_db"
	}
	db := client.Database(dbName)
	log.Println("✅ Database connection established")

	return registerModules(router, db, logger)
}

// validateEnv warns about missing media-provider credentials. The
// process still starts: uploads degrade to the default image instead.
func validateEnv(logger *zap.Logger) {
	required := []string{
		"CLOUDINARY_CLOUD_NAME",
		"CLOUDINARY_API_KEY",
		"CLOUDINARY_API_SECRET",
	}

	var missing []string
	for _, name := range required {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		logger.Warn("missing environment variables, media uploads will be skipped",
			zap.Strings("missing", missing),
		)
	}
}
