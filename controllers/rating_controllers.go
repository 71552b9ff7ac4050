package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/little-lemon-api/services"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

type RatingController struct {
	Ratings *services.RatingService
}

func NewRatingController(db *gorm.DB) *RatingController {
	return &RatingController{Ratings: services.NewRatingService(db)}
}

// GetRatings is public. ?menuitem_id= narrows the list to one item.
func (rc *RatingController) GetRatings(c *gin.Context) {
	menuItemID, ok := queryInt(c, "menuitem_id")
	if !ok {
		return
	}
	if menuItemID < 0 {
		utils.RespondError(c, utils.FieldError("menuitem_id", "A valid integer is required."))
		return
	}
	ratings, err := rc.Ratings.List(uint(menuItemID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	out := make([]RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, newRatingResponse(r))
	}
	utils.RespondJSON(c, http.StatusOK, out)
}

func (rc *RatingController) CreateRating(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req struct {
		MenuItemID uint `json:"menuitem_id" binding:"required"`
		Rating     int  `json:"rating" binding:"required,min=1,max=5"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}

	rating, err := rc.Ratings.Create(p.UserID, req.MenuItemID, req.Rating)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, newRatingResponse(*rating))
}
