package services

import (
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

type RatingService struct {
	DB *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{DB: db}
}

// List returns all ratings, or those of one menu item when menuItemID is set.
func (s *RatingService) List(menuItemID uint) ([]models.Rating, error) {
	ratings := []models.Rating{}
	q := s.DB.Order("id")
	if menuItemID != 0 {
		q = q.Where("menu_item_id = ?", menuItemID)
	}
	err := q.Find(&ratings).Error
	return ratings, err
}

func (s *RatingService) Create(userID, menuItemID uint, value int) (*models.Rating, error) {
	if value < 1 || value > 5 {
		return nil, utils.FieldError("rating", "Ensure this value is between 1 and 5.")
	}

	var n int64
	if err := s.DB.Model(&models.MenuItem{}).Where("id = ?", menuItemID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, utils.FieldError("menuitem_id", "Menu item does not exist.")
	}

	if err := s.DB.Model(&models.Rating{}).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, utils.Validation("The fields user, menuitem_id must make a unique set.")
	}

	rating := models.Rating{UserID: userID, MenuItemID: menuItemID, Rating: value}
	if err := s.DB.Create(&rating).Error; err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"user_id":      userID,
		"menu_item_id": menuItemID,
		"rating":       value,
	}).Info("rating created")
	return &rating, nil
}
