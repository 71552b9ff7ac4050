package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientInventory = utils.Validation("Insufficient inventory.")
	ErrEmptyCart             = utils.Validation("No items in cart to delete.")
)

type CartService struct {
	DB *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db}
}

// Add reserves quantity units of a menu item for the user. The inventory
// decrement and the new cart line commit together or not at all.
func (s *CartService) Add(userID, menuItemID uint, quantity int) (*models.CartLine, error) {
	if menuItemID == 0 {
		return nil, utils.FieldError("menuitem", "Menu item ID is required.")
	}
	if quantity < 1 {
		return nil, utils.FieldError("quantity", "Ensure this value is greater than or equal to 1.")
	}

	var line models.CartLine
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, menuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound("Menu item not found.")
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.CartLine{}).
			Where("user_id = ? AND menu_item_id = ? AND placed = ?", userID, menuItemID, false).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return utils.FieldError("menuitem", "This menu item is already in your cart.")
		}

		if err := decrementInventory(tx, menuItemID, quantity); err != nil {
			return err
		}

		line = models.CartLine{
			UserID:     userID,
			MenuItemID: menuItemID,
			Quantity:   quantity,
			UnitPrice:  item.Price,
			Price:      utils.LineTotal(item.Price, quantity),
		}
		if err := tx.Create(&line).Error; err != nil {
			return err
		}
		line.MenuItem = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"user_id":      userID,
		"menu_item_id": menuItemID,
		"quantity":     quantity,
	}).Info("cart line added")
	return &line, nil
}

// decrementInventory lowers stock only when enough is left, so concurrent
// reservations can never drive inventory below zero.
func decrementInventory(tx *gorm.DB, menuItemID uint, quantity int) error {
	res := tx.Model(&models.MenuItem{}).
		Where("id = ? AND inventory >= ?", menuItemID, quantity).
		UpdateColumn("inventory", gorm.Expr("inventory - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientInventory
	}
	return nil
}

func restoreInventory(tx *gorm.DB, menuItemID uint, quantity int) error {
	return tx.Model(&models.MenuItem{}).
		Where("id = ?", menuItemID).
		UpdateColumn("inventory", gorm.Expr("inventory + ?", quantity)).Error
}

func (s *CartService) List(userID uint) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	err := s.DB.Preload("MenuItem").
		Where("user_id = ? AND placed = ?", userID, false).
		Order("id").
		Find(&lines).Error
	return lines, err
}

// Clear gives every reserved unit back to inventory and empties the cart.
func (s *CartService) Clear(userID uint) error {
	var cleared int
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var lines []models.CartLine
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND placed = ?", userID, false).
			Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		ids := make([]uint, 0, len(lines))
		for _, line := range lines {
			if err := restoreInventory(tx, line.MenuItemID, line.Quantity); err != nil {
				return err
			}
			ids = append(ids, line.ID)
		}
		cleared = len(ids)
		return tx.Delete(&models.CartLine{}, ids).Error
	})
	if err != nil {
		return err
	}

	utils.InfoLogger.WithFields(logrus.Fields{"user_id": userID, "lines": cleared}).Info("cart cleared")
	return nil
}
