package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderOutForDelivery, OrderDelivered:
		return true
	}
	return false
}

type Order struct {
	ID             uint            `gorm:"primaryKey"`
	UserID         uint            `gorm:"not null;index"`
	User           User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	DeliveryCrewID *uint           `gorm:"index"`
	DeliveryCrew   *User           `gorm:"foreignKey:DeliveryCrewID;constraint:OnDelete:SET NULL"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Date           time.Time       `gorm:"not null;index"`
	OrderItems     []OrderItem     `gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
