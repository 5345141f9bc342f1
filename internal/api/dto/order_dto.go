package dto

import (
	"encoding/json"
	"time"
)

type CreateOrderItemDTO struct {
	ProductID     int64   `json:"product_id"`
	Quantity      int     `json:"quantity"`
	Customization *string `json:"customization,omitempty"`
}

// CreateOrderDTO items 為空時使用購物車內容
type CreateOrderDTO struct {
	Items          []CreateOrderItemDTO `json:"items"`
	DeliveryMethod string               `json:"delivery_method"`
	AddressID      *int64               `json:"address_id,omitempty"`
	PaymentMethod  string               `json:"payment_method"`
	Notes          string               `json:"notes,omitempty"`
	ReceiptURL     *string              `json:"receipt_url,omitempty"`
}

type OrderCreatedDTO struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"order_number"`
	Total       json.Number `json:"total" swaggertype:"number"`
}

type OrderItemDTO struct {
	ID            int64       `json:"id"`
	ProductID     int64       `json:"product_id"`
	ProductName   string      `json:"product_name"`
	Quantity      int         `json:"quantity"`
	UnitPrice     json.Number `json:"unit_price" swaggertype:"number"`
	Subtotal      json.Number `json:"subtotal" swaggertype:"number"`
	Customization *string     `json:"customization,omitempty"`
}

type OrderDTO struct {
	ID             int64          `json:"id"`
	OrderNumber    string         `json:"order_number"`
	UserID         string         `json:"user_id"`
	Status         string         `json:"status"`
	PaymentStatus  string         `json:"payment_status"`
	PaymentMethod  string         `json:"payment_method"`
	DeliveryMethod string         `json:"delivery_method"`
	AddressID      *int64         `json:"address_id,omitempty"`
	Subtotal       json.Number    `json:"subtotal" swaggertype:"number"`
	DeliveryFee    json.Number    `json:"delivery_fee" swaggertype:"number"`
	Total          json.Number    `json:"total" swaggertype:"number"`
	Notes          string         `json:"notes,omitempty"`
	ReceiptURL     *string        `json:"receipt_url,omitempty"`
	PaymentType    *string        `json:"payment_type,omitempty"`
	PaidAt         *time.Time     `json:"paid_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	Items          []OrderItemDTO `json:"items,omitempty"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}

type UpdatePaymentStatusDTO struct {
	PaymentStatus string  `json:"payment_status"`
	PaymentType   *string `json:"payment_type,omitempty"`
	ReceiptURL    *string `json:"receipt_url,omitempty"`
}

type AttachReceiptDTO struct {
	ReceiptURL string `json:"receipt_url"`
}

type CreateOrderResponse struct {
	Response
	Order OrderCreatedDTO `json:"order"`
}

type OrderResponse struct {
	Response
	Order OrderDTO `json:"order"`
}

// OrdersResponse orders 為 page 這一頁的內容，回傳筆數小於 page_size 代表沒有下一頁
type OrdersResponse struct {
	Response
	Orders   []OrderDTO `json:"orders"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

type CancelOrderResponse struct {
	Response
	Cancelled bool `json:"cancelled"`
}
