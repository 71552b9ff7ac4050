package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/little-lemon-api/services"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	Stats   *services.StatsService
	TaxRate decimal.Decimal
}

func NewAdminController(db *gorm.DB, taxRate decimal.Decimal) *AdminController {
	return &AdminController{Stats: services.NewStatsService(db), TaxRate: taxRate}
}

// GetDashboardStats is the manager overview. reserved_units is stock held
// by carts that were never checked out.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := ac.Stats.Collect()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{
		"orders_by_status": stats.OrdersByStatus,
		"revenue":          utils.FormatMoney(stats.Revenue),
		"sold_out":         newMenuItemList(stats.SoldOut, ac.TaxRate),
		"reserved_units":   stats.ReservedUnits,
	})
}
