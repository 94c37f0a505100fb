package model

import "gorm.io/gorm"

type Note struct {
	gorm.Model
	CustomerID uint   `gorm:"column:customer_id;index;not null"`
	Content    string `gorm:"column:content;type:text;not null"`
	CreatedBy  uint   `gorm:"column:created_by"`
}
