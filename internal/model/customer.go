package model

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	Name    string `gorm:"column:name;not null"`
	Email   string `gorm:"column:email"`
	Phone   string `gorm:"column:phone"`
	Company string `gorm:"column:company"`
	Status  string `gorm:"column:status;default:Active"`
	OwnerID uint   `gorm:"column:owner_id;index;not null"`

	Notes []Note `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}
