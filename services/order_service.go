package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNothingToOrder = utils.Validation("No items in cart to place an order.")

// OrderEvents receives orders after their transaction committed.
type OrderEvents interface {
	OrderCreated(order models.Order)
	OrderUpdated(order models.Order)
}

type OrderService struct {
	DB     *gorm.DB
	Events OrderEvents
}

func NewOrderService(db *gorm.DB, events OrderEvents) *OrderService {
	return &OrderService{DB: db, Events: events}
}

// OrderUpdate carries the fields present in an update request. Fields lists
// every top-level key the client sent.
type OrderUpdate struct {
	Status          *models.OrderStatus
	DeliveryCrewSet bool
	DeliveryCrewID  *uint
	Fields          []string
}

// Place converts the user's cart into one order. Inventory was reserved when
// the lines were added and is not touched here.
func (s *OrderService) Place(userID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var lines []models.CartLine
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND placed = ?", userID, false).
			Order("id").
			Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrNothingToOrder
		}

		prices := make([]decimal.Decimal, 0, len(lines))
		for _, line := range lines {
			prices = append(prices, line.Price)
		}

		order = models.Order{
			UserID: userID,
			Status: models.OrderPending,
			Total:  utils.SumMoney(prices...),
			Date:   time.Now().UTC(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		ids := make([]uint, 0, len(lines))
		for _, line := range lines {
			item := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				Price:      line.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			ids = append(ids, line.ID)
		}

		if err := tx.Model(&models.CartLine{}).Where("id IN ?", ids).Update("placed", true).Error; err != nil {
			return err
		}
		return tx.Where("id IN ? AND placed = ?", ids, true).Delete(&models.CartLine{}).Error
	})
	if err != nil {
		return nil, err
	}

	placed, err := s.load(order.ID)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"user_id":  userID,
		"order_id": placed.ID,
		"items":    len(placed.OrderItems),
		"total":    placed.Total.StringFixed(2),
	}).Info("order placed")
	if s.Events != nil {
		s.Events.OrderCreated(*placed)
	}
	return placed, nil
}

// List returns every order for managers. Everyone else sees the orders they
// own plus the ones assigned to them for delivery.
func (s *OrderService) List(p models.Principal) ([]models.Order, error) {
	orders := []models.Order{}
	q := s.DB.Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("OrderItems.MenuItem").
		Order("id")
	if !p.IsManager() {
		q = q.Where("user_id = ? OR delivery_crew_id = ?", p.UserID, p.UserID)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (s *OrderService) Get(p models.Principal, id uint) (*models.Order, error) {
	order, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !canView(p, order) {
		return nil, utils.Forbidden("You are not authorized to view this order.")
	}
	return order, nil
}

func canView(p models.Principal, order *models.Order) bool {
	return p.IsManager() || order.UserID == p.UserID || isAssigned(p, order)
}

func isAssigned(p models.Principal, order *models.Order) bool {
	return order.DeliveryCrewID != nil && *order.DeliveryCrewID == p.UserID
}

// Update applies a status change or crew assignment. Managers and the owner
// may change both fields; delivery crew may only move the status of orders
// assigned to them.
func (s *OrderService) Update(p models.Principal, id uint, in OrderUpdate, partial bool) (*models.Order, error) {
	var updated *models.Order
	changed := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := loadOrder(tx, id)
		if err != nil {
			return err
		}

		full := p.IsManager() || order.UserID == p.UserID
		if !full {
			if !p.IsDeliveryCrew() || !isAssigned(p, order) {
				return utils.Forbidden("You are not authorized to update this order.")
			}
			for _, f := range in.Fields {
				if f != "status" {
					return utils.FieldError(f, "Delivery crew may only update the order status.")
				}
			}
			partial = true
		}

		if in.Status == nil && !partial {
			return utils.FieldError("status", "This field is required.")
		}
		if in.Status != nil && !in.Status.Valid() {
			return utils.FieldError("status", "\""+string(*in.Status)+"\" is not a valid choice.")
		}

		updates := map[string]interface{}{}
		if in.Status != nil {
			updates["status"] = *in.Status
		}
		if in.DeliveryCrewSet {
			if in.DeliveryCrewID != nil {
				if err := ensureDeliveryCrew(tx, *in.DeliveryCrewID); err != nil {
					return err
				}
			}
			updates["delivery_crew_id"] = in.DeliveryCrewID
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
			changed = true
		}

		updated, err = loadOrder(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id":      id,
		"by_user_id":    p.UserID,
		"status":        updated.Status,
		"delivery_crew": updated.DeliveryCrewID,
	}).Info("order updated")
	if s.Events != nil && changed {
		s.Events.OrderUpdated(*updated)
	}
	return updated, nil
}

func ensureDeliveryCrew(tx *gorm.DB, userID uint) error {
	var n int64
	err := tx.Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, models.RoleDeliveryCrew).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.FieldError("delivery_crew", "User is not a delivery crew member.")
	}
	return nil
}

func (s *OrderService) load(id uint) (*models.Order, error) {
	return loadOrder(s.DB, id)
}

func loadOrder(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("OrderItems.MenuItem").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Order not found.")
		}
		return nil, err
	}
	return &order, nil
}
