package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends an entity or DTO as the response body
func JSONResponse(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// JSONError sends the error body the pages expect: {"error": "<message>"}.
// The message is rendered to the user verbatim.
func JSONError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
