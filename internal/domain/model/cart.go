package model

import "github.com/google/uuid"

// CartLine 購物車中的一個商品，同一使用者同一商品只會有一筆
type CartLine struct {
	UserID        uuid.UUID `gorm:"primaryKey;type:uuid" json:"user_id"`
	ProductID     int64     `gorm:"primaryKey" json:"product_id"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Customization *string   `gorm:"type:text" json:"customization,omitempty"`
	BaseModel
}

func (CartLine) TableName() string {
	return "cart_lines"
}

// OrderLine 建立訂單時的輸入，由購物車或請求本體組成
type OrderLine struct {
	ProductID     int64
	Quantity      int
	Customization *string
}
