package models

type Category struct {
	ID    uint   `gorm:"primaryKey"`
	Slug  string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Title string `gorm:"type:varchar(100);not null;index"`
}
