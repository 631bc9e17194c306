package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the stable JSON shape returned on every failure path.
// Message is always set; Details carries per-field validation messages
// when available. Internal error detail never goes into either field.
type ErrorBody struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func Error(c *gin.Context, status int, message string, details map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, ErrorBody{Message: message, Details: details})
}

// AbortError writes the error body and stops the handler chain (for middleware).
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Message: message})
}
