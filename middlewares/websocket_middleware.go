package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/little-lemon-api/services"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

// WebSocketAuthMiddleware authenticates upgrade requests, which cannot carry
// custom headers from browsers, through the ?token= query parameter.
func WebSocketAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	users := services.NewUserService(db)
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			if t, ok := bearerToken(c.GetHeader("Authorization")); ok {
				token = t
			}
		}
		if token == "" {
			utils.RespondError(c, utils.Unauthorized("Authentication credentials were not provided."))
			return
		}
		authenticate(c, users, token)
	}
}
