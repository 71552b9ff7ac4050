package models

import "time"

type Rating struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_rating_user_item"`
	User       User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	MenuItemID uint `gorm:"not null;uniqueIndex:idx_rating_user_item;index"`
	Rating     int  `gorm:"type:smallint;not null"`
	CreatedAt  time.Time
}
