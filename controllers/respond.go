package controllers

import (
	"github.com/gin-gonic/gin"
)

// respondError writes the structured error body every endpoint shares.
// The error detail mirrors the upstream/database message.
func respondError(c *gin.Context, status int, message string, err error) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// userIDFromContext reads the user id the auth middleware stored. JWT
// decoding yields float64, direct sets yield uint.
func userIDFromContext(c *gin.Context) (uint, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return uint(v), true
	case uint:
		return v, true
	case int:
		return uint(v), true
	default:
		return 0, false
	}
}
