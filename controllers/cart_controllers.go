package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/little-lemon-api/services"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

type CartController struct {
	Cart *services.CartService
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{Cart: services.NewCartService(db)}
}

func (cc *CartController) GetCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	lines, err := cc.Cart.List(p.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	out := make([]CartLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, newCartLineResponse(line))
	}
	utils.RespondJSON(c, http.StatusOK, out)
}

// AddToCart reserves inventory for {"menuitem": id, "quantity": n}.
// quantity defaults to 1.
func (cc *CartController) AddToCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req struct {
		MenuItem uint `json:"menuitem"`
		Quantity *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	line, err := cc.Cart.Add(p.UserID, req.MenuItem, quantity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, newCartLineResponse(*line))
}

func (cc *CartController) ClearCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := cc.Cart.Clear(p.UserID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
