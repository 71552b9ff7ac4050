package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is a pending quantity of one menu item reserved by a user.
// Price is always UnitPrice times Quantity.
type CartLine struct {
	ID         uint            `gorm:"primaryKey"`
	UserID     uint            `gorm:"not null;uniqueIndex:idx_cart_user_item"`
	User       User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	MenuItemID uint            `gorm:"not null;uniqueIndex:idx_cart_user_item"`
	MenuItem   MenuItem        `gorm:"foreignKey:MenuItemID;constraint:OnDelete:RESTRICT"`
	Quantity   int             `gorm:"type:smallint;not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	Price      decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	Placed     bool            `gorm:"not null;default:false;index"`
	CreatedAt  time.Time
}

func (CartLine) TableName() string { return "cart_lines" }
