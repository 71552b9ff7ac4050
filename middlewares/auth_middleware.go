package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/services"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

const (
	principalKey = "principal"
	claimsKey    = "claims"
)

// AuthMiddleware accepts "Authorization: Bearer <jwt>" or "Token <jwt>" and
// loads the caller's current roles from the database.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	users := services.NewUserService(db)
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.RespondError(c, utils.Unauthorized("Authentication credentials were not provided."))
			return
		}
		authenticate(c, users, token)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	switch strings.ToLower(scheme) {
	case "bearer", "token":
	default:
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func authenticate(c *gin.Context, users *services.UserService, token string) {
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.RespondError(c, utils.Unauthorized("Invalid token."))
		return
	}

	user, err := users.Get(claims.UserID)
	if err != nil {
		if utils.AsAppError(err).Kind == utils.KindNotFound {
			utils.RespondError(c, utils.Unauthorized("User not found."))
			return
		}
		utils.RespondError(c, err)
		return
	}

	c.Set(principalKey, user.Principal())
	c.Set(claimsKey, claims)
	c.Next()
}

// CurrentPrincipal returns the caller set by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (models.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

func CurrentClaims(c *gin.Context) (*utils.CustomClaims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*utils.CustomClaims)
	return claims, ok
}
