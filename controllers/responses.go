package controllers

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
)

const dateLayout = "2006-01-02"

type CategoryResponse struct {
	ID    uint   `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type MenuItemResponse struct {
	ID            uint             `json:"id"`
	Title         string           `json:"title"`
	Price         string           `json:"price"`
	Inventory     int              `json:"inventory"`
	PriceAfterTax string           `json:"price_after_tax"`
	Category      CategoryResponse `json:"category"`
}

type MenuItemRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type CartLineResponse struct {
	ID        uint        `json:"id"`
	User      uint        `json:"user"`
	MenuItem  MenuItemRef `json:"menuitem"`
	Quantity  int         `json:"quantity"`
	UnitPrice string      `json:"unit_price"`
	Price     string      `json:"price"`
}

type OrderItemResponse struct {
	ID        uint        `json:"id"`
	MenuItem  MenuItemRef `json:"menuitem"`
	Quantity  int         `json:"quantity"`
	UnitPrice string      `json:"unit_price"`
	Price     string      `json:"price"`
}

type OrderResponse struct {
	ID           uint                `json:"id"`
	User         uint                `json:"user"`
	DeliveryCrew *uint               `json:"delivery_crew"`
	Status       models.OrderStatus  `json:"status"`
	Total        string              `json:"total"`
	Date         string              `json:"date"`
	OrderItems   []OrderItemResponse `json:"order_items"`
}

type RatingResponse struct {
	ID         uint `json:"id"`
	User       uint `json:"user"`
	MenuItemID uint `json:"menuitem_id"`
	Rating     int  `json:"rating"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func newCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Slug: c.Slug, Title: c.Title}
}

func newMenuItemResponse(item models.MenuItem, taxRate decimal.Decimal) MenuItemResponse {
	return MenuItemResponse{
		ID:            item.ID,
		Title:         item.Title,
		Price:         utils.FormatMoney(item.Price),
		Inventory:     item.Inventory,
		PriceAfterTax: utils.FormatMoney(utils.WithTax(item.Price, taxRate)),
		Category:      newCategoryResponse(item.Category),
	}
}

func newMenuItemList(items []models.MenuItem, taxRate decimal.Decimal) []MenuItemResponse {
	out := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newMenuItemResponse(item, taxRate))
	}
	return out
}

func newCartLineResponse(line models.CartLine) CartLineResponse {
	return CartLineResponse{
		ID:        line.ID,
		User:      line.UserID,
		MenuItem:  MenuItemRef{ID: line.MenuItemID, Title: line.MenuItem.Title},
		Quantity:  line.Quantity,
		UnitPrice: utils.FormatMoney(line.UnitPrice),
		Price:     utils.FormatMoney(line.Price),
	}
}

func newOrderResponse(order models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.OrderItems))
	for _, it := range order.OrderItems {
		items = append(items, OrderItemResponse{
			ID:        it.ID,
			MenuItem:  MenuItemRef{ID: it.MenuItemID, Title: it.MenuItem.Title},
			Quantity:  it.Quantity,
			UnitPrice: utils.FormatMoney(it.UnitPrice),
			Price:     utils.FormatMoney(it.Price),
		})
	}
	return OrderResponse{
		ID:           order.ID,
		User:         order.UserID,
		DeliveryCrew: order.DeliveryCrewID,
		Status:       order.Status,
		Total:        utils.FormatMoney(order.Total),
		Date:         order.Date.Format(dateLayout),
		OrderItems:   items,
	}
}

func newRatingResponse(r models.Rating) RatingResponse {
	return RatingResponse{ID: r.ID, User: r.UserID, MenuItemID: r.MenuItemID, Rating: r.Rating}
}

func newUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}
