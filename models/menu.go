package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID         uint            `gorm:"primaryKey"`
	Title      string          `gorm:"type:varchar(255);not null;index"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2);not null;index"`
	Inventory  int             `gorm:"type:smallint;not null;default:0"`
	CategoryID uint            `gorm:"not null;index"`
	Category   Category        `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
