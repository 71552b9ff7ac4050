package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/little-lemon-api/middlewares"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/services"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{Users: services.NewUserService(db)}
}

// Register creates a customer account without any role.
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,max=150"`
		Email    string `json:"email" binding:"omitempty,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}

	user, err := uc.Users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, newUserResponse(*user))
}

// Login -> {"auth_token": "<jwt>"}
func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}

	token, err := uc.Users.Login(req.Username, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"auth_token": token})
}

// Logout revokes the token used for this request.
func (uc *UserController) Logout(c *gin.Context) {
	claims, ok := middlewares.CurrentClaims(c)
	if !ok {
		utils.RespondError(c, utils.Unauthorized("Authentication credentials were not provided."))
		return
	}
	utils.RevokeToken(claims.ID, claims.ExpiresAt.Time)
	utils.InfoLogger.WithField("user_id", claims.UserID).Info("token revoked")
	c.Status(http.StatusNoContent)
}

func (uc *UserController) GetProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	user, err := uc.Users.Get(p.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	roles := user.RoleList()
	if roles == nil {
		roles = []models.Role{}
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"roles":    roles,
	})
}
