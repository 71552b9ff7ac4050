package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
)

var errNotAuthorized = utils.Forbidden("You are not authorized to perform this action.")

// RoleCheck lets the request through when the caller is an admin or holds
// any of roles. It must run after AuthMiddleware.
func RoleCheck(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			utils.RespondError(c, utils.Unauthorized("Authentication credentials were not provided."))
			return
		}
		if p.IsAdmin {
			c.Next()
			return
		}
		for _, role := range roles {
			if p.Has(role) {
				c.Next()
				return
			}
		}
		utils.RespondError(c, errNotAuthorized)
	}
}
