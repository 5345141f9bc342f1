package model

import "github.com/shopspring/decimal"

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null;type:varchar(255)" json:"name"`
	Category    string          `gorm:"type:varchar(100)" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	BaseModel
}
