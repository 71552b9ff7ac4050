package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/little-lemon-api/services"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

type MenuController struct {
	Catalog *services.CatalogService
	TaxRate decimal.Decimal
}

func NewMenuController(db *gorm.DB, taxRate decimal.Decimal) *MenuController {
	return &MenuController{Catalog: services.NewCatalogService(db), TaxRate: taxRate}
}

type menuItemRequest struct {
	Title      *string          `json:"title"`
	Price      *decimal.Decimal `json:"price"`
	Inventory  *int             `json:"inventory"`
	CategoryID *uint            `json:"category_id"`
}

func (r menuItemRequest) input() services.MenuItemInput {
	return services.MenuItemInput{
		Title:      r.Title,
		Price:      r.Price,
		Inventory:  r.Inventory,
		CategoryID: r.CategoryID,
	}
}

// GetAllMenuItems supports ?category=&to_price=&search=&ordering=&perpage=&page=
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	filter := services.MenuItemFilter{
		CategoryTitle: c.Query("category"),
		Search:        c.Query("search"),
		Ordering:      c.Query("ordering"),
	}

	if raw := c.Query("to_price"); raw != "" {
		toPrice, err := decimal.NewFromString(raw)
		if err != nil {
			utils.RespondError(c, utils.FieldError("to_price", "A valid number is required."))
			return
		}
		filter.ToPrice = &toPrice
	}

	perPage, ok := queryInt(c, "perpage")
	if !ok {
		return
	}
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	if c.Query("page") != "" && page < 1 {
		page = -1
	}
	filter.PerPage = perPage
	filter.Page = page

	items, err := mc.Catalog.ListMenuItems(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, newMenuItemList(items, mc.TaxRate))
}

func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := mc.Catalog.GetMenuItem(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, newMenuItemResponse(*item, mc.TaxRate))
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}
	item, err := mc.Catalog.CreateMenuItem(req.input())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, newMenuItemResponse(*item, mc.TaxRate))
}

// UpdateMenuItem serves PUT (every field required) and PATCH (partial).
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}
	partial := c.Request.Method == http.MethodPatch
	item, err := mc.Catalog.UpdateMenuItem(id, req.input(), partial)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, newMenuItemResponse(*item, mc.TaxRate))
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := mc.Catalog.DeleteMenuItem(id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
