package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/little-lemon-api/middlewares"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
)

// pathID parses a numeric path parameter. Anything else is a missing route.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, utils.NotFound("Not found."))
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		utils.RespondError(c, utils.FieldError(name, "A valid integer is required."))
		return 0, false
	}
	return v, true
}

func principal(c *gin.Context) (models.Principal, bool) {
	p, ok := middlewares.CurrentPrincipal(c)
	if !ok {
		utils.RespondError(c, utils.Unauthorized("Authentication credentials were not provided."))
	}
	return p, ok
}
