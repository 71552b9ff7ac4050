package models

import (
	"github.com/shopspring/decimal"
)

// OrderItem is the immutable copy of a cart line taken at checkout.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey"`
	OrderID    uint            `gorm:"not null;uniqueIndex:idx_order_item"`
	Order      Order           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	MenuItemID uint            `gorm:"not null;uniqueIndex:idx_order_item"`
	MenuItem   MenuItem        `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Quantity   int             `gorm:"type:smallint;not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	Price      decimal.Decimal `gorm:"type:decimal(8,2);not null"`
}
