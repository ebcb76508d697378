package handlers

import "github.com/gin-gonic/gin"

// readAdminID extracts the authenticated admin ID from gin context.
func readAdminID(c *gin.Context) (uint64, bool) {
	val, exists := c.Get("adminID")
	if !exists {
		return 0, false
	}
	id, ok := val.(uint64)
	return id, ok
}

// readAdminUsername extracts the authenticated admin username.
func readAdminUsername(c *gin.Context) string {
	val, exists := c.Get("adminUsername")
	if !exists {
		return ""
	}
	username, _ := val.(string)
	return username
}

// readAdminToken extracts the raw bearer token for the request.
func readAdminToken(c *gin.Context) string {
	val, exists := c.Get("adminToken")
	if !exists {
		return ""
	}
	token, _ := val.(string)
	return token
}
