package response

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// errorBody is the public error contract: {message, stack, details}.
// stack is only populated outside release mode; clients must tolerate null.
type errorBody struct {
	Message string   `json:"message"`
	Stack   *string  `json:"stack"`
	Details []string `json:"details"`
}

func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func Error(c *gin.Context, status int, message string, details []string) {
	body := errorBody{
		Message: message,
		Details: details,
	}

	if gin.Mode() != gin.ReleaseMode {
		stack := string(debug.Stack())
		body.Stack = &stack
	}

	c.JSON(status, body)
}

// PageCount rounds total up to whole pages: (total + limit - 1) / limit
func PageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
