package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/services"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

// GroupController manages role membership under /groups/:role/users/.
type GroupController struct {
	Roles *services.RoleService
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{Roles: services.NewRoleService(db)}
}

func roleParam(c *gin.Context) (models.Role, bool) {
	role, ok := models.ParseRole(c.Param("role"))
	if !ok {
		utils.RespondError(c, utils.NotFound("Not found."))
	}
	return role, ok
}

func (gc *GroupController) GetMembers(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	users, err := gc.Roles.Members(role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	utils.RespondJSON(c, http.StatusOK, out)
}

// AddMember accepts the username as JSON or form data.
func (gc *GroupController) AddMember(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	var req struct {
		Username string `json:"username" form:"username"`
	}
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, utils.BindingError(err))
		return
	}

	if _, err := gc.Roles.Add(role, strings.TrimSpace(req.Username)); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondMessage(c, http.StatusCreated, "Created.")
}

func (gc *GroupController) RemoveMember(c *gin.Context) {
	role, ok := roleParam(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := gc.Roles.Remove(role, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Deleted.")
}
