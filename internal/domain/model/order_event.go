package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	OrderCreatedEventName         EventType = "OrderCreated"
	OrderCancelledEventName       EventType = "OrderCancelled"
	OrderStatusChangedEventName   EventType = "OrderStatusChanged"
	OrderPaymentChangedEventName  EventType = "OrderPaymentStatusChanged"
	OrderReceiptAttachedEventName EventType = "OrderReceiptAttached"
)

// OrderEvent 訂單異動後對外發布的事件，給通知、報表等下游使用
type OrderEvent struct {
	EventID           string          `json:"event_id"`
	EventType         EventType       `json:"event_type"`
	OrderID           int64           `json:"order_id"`
	OrderNumber       string          `json:"order_number"`
	UserID            uuid.UUID       `json:"user_id"`
	Status            OrderStatus     `json:"status"`
	PreviousStatus    OrderStatus     `json:"previous_status,omitempty"`
	PaymentStatus     PaymentStatus   `json:"payment_status"`
	PreviousPayStatus PaymentStatus   `json:"previous_payment_status,omitempty"`
	Total             decimal.Decimal `json:"total"`
	CreatedAt         time.Time       `json:"created_at"`
}

// AggregateKey 同一訂單的事件落在同一 partition
func (e *OrderEvent) AggregateKey() string {
	return strconv.FormatInt(e.OrderID, 10)
}

// NewOrderEvent 以訂單目前狀態建立事件
func NewOrderEvent(eventType EventType, order *Order) *OrderEvent {
	return &OrderEvent{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Total:         order.Total,
		CreatedAt:     time.Now().UTC(),
	}
}
