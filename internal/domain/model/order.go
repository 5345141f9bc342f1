package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber    string          `gorm:"not null;uniqueIndex;type:varchar(32)" json:"order_number"`
	UserID         uuid.UUID       `gorm:"not null;type:uuid;index" json:"user_id"`
	Status         OrderStatus     `gorm:"not null;type:varchar(32)" json:"status"`
	PaymentStatus  PaymentStatus   `gorm:"not null;type:varchar(32)" json:"payment_status"`
	PaymentMethod  PaymentMethod   `gorm:"not null;type:varchar(32)" json:"payment_method"`
	DeliveryMethod DeliveryMethod  `gorm:"not null;type:varchar(16)" json:"delivery_method"`
	AddressID      *int64          `json:"address_id,omitempty"`
	Subtotal       decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"subtotal"`
	DeliveryFee    decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"delivery_fee"`
	Total          decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"total"`
	Notes          string          `gorm:"type:text" json:"notes"`
	ReceiptURL     *string         `gorm:"type:text" json:"receipt_url,omitempty"`
	PaymentType    *string         `gorm:"type:varchar(32)" json:"payment_type,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	BaseModel
}

// OrderItem 下單當下的商品快照，建立後不再修改
type OrderItem struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64           `gorm:"not null;index" json:"order_id"`
	ProductID     int64           `gorm:"not null" json:"product_id"`
	ProductName   string          `gorm:"not null;type:varchar(255)" json:"product_name"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"unit_price"`
	Subtotal      decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"subtotal"`
	Customization *string         `gorm:"type:text" json:"customization,omitempty"`
	CreatedAt     time.Time       `gorm:"not null;default:now()" json:"created_at"`
}

// ItemsSubtotal 由明細重新加總，用來驗證表頭金額
func (o *Order) ItemsSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}
