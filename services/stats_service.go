package services

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

// Stats is a manager overview. ReservedUnits counts inventory held by carts
// that have not been ordered yet.
type Stats struct {
	OrdersByStatus map[models.OrderStatus]int64
	Revenue        decimal.Decimal
	SoldOut        []models.MenuItem
	ReservedUnits  int64
}

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

func (s *StatsService) Collect() (*Stats, error) {
	stats := &Stats{OrdersByStatus: map[models.OrderStatus]int64{
		models.OrderPending:        0,
		models.OrderOutForDelivery: 0,
		models.OrderDelivered:      0,
	}}

	var counts []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := s.DB.Model(&models.Order{}).Select("status, COUNT(*) AS count").Group("status").Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.OrdersByStatus[c.Status] = c.Count
	}

	var totals []decimal.Decimal
	if err := s.DB.Model(&models.Order{}).Pluck("total", &totals).Error; err != nil {
		return nil, err
	}
	stats.Revenue = utils.SumMoney(totals...)

	stats.SoldOut = []models.MenuItem{}
	if err := s.DB.Preload("Category").Where("inventory = 0").Order("id").Find(&stats.SoldOut).Error; err != nil {
		return nil, err
	}

	var reserved struct{ Units int64 }
	if err := s.DB.Model(&models.CartLine{}).Select("COALESCE(SUM(quantity), 0) AS units").Where("placed = ?", false).Scan(&reserved).Error; err != nil {
		return nil, err
	}
	stats.ReservedUnits = reserved.Units
	return stats, nil
}
