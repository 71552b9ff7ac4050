package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/little-lemon-api/services"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

type MenuCategoryController struct {
	Catalog *services.CatalogService
}

func NewMenuCategoryController(db *gorm.DB) *MenuCategoryController {
	return &MenuCategoryController{Catalog: services.NewCatalogService(db)}
}

func (mcc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	categories, err := mcc.Catalog.ListCategories()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, newCategoryResponse(cat))
	}
	utils.RespondJSON(c, http.StatusOK, out)
}

func (mcc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var req struct {
		Slug  string `json:"slug" binding:"required,max=50,slug"`
		Title string `json:"title" binding:"required,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}

	category, err := mcc.Catalog.CreateCategory(req.Slug, req.Title)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, newCategoryResponse(*category))
}
