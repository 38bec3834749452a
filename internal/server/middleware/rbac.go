// file: internal/server/middleware/rbac.go
// version: 1.0.0
// guid: 5f5961b3-f262-4bf4-93d1-ae07091e2967

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acikyardim/yardim-paneli/internal/rbac"
)

// RequireResourcePermission rejects requests whose user lacks the given
// action on the resource. Must run after RequireAuth. Requests without a
// user pass through only in first-run bootstrap mode, which RequireAuth
// already gates on an empty user table.
func RequireResourcePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Next()
			return
		}
		if !rbac.HasResourcePermission(user.Role, resource, action) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
				"code":  "FORBIDDEN",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission rejects requests whose user lacks the given global
// permission. Must run after RequireAuth.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Next()
			return
		}
		if !rbac.HasPermission(user.Role, permission) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
				"code":  "FORBIDDEN",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects requests whose user role is not in the allow list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Next()
			return
		}
		if !allowed[user.Role] {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
				"code":  "FORBIDDEN",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
