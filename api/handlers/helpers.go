package handlers

import "github.com/gin-gonic/gin"

// currentUserID returns the caller's user id, or "" for guests. Identity
// arrives from the auth layer in front of this service as headers.
func currentUserID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return c.Query("user_id")
}

func currentUserEmail(c *gin.Context) string {
	return c.GetHeader("X-User-Email")
}
