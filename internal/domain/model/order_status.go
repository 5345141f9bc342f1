package model

// OrderStatus 訂單狀態，封閉集合
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusReadyForPickup OrderStatus = "ready_for_pickup"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// 合法的狀態轉換，未列出的都視為非法
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:     {OrderStatusReadyForPickup, OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusReadyForPickup: {OrderStatusCompleted},
	OrderStatusOutForDelivery: {OrderStatusCompleted},
}

// CancellableStatuses 使用者可以自行取消的狀態
var CancellableStatuses = []OrderStatus{OrderStatusPending, OrderStatusProcessing}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(s)
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusReadyForPickup,
		OrderStatusOutForDelivery, OrderStatusCompleted, OrderStatusCancelled:
		return status, true
	default:
		return "", false
	}
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo 檢查 from -> to 是否合法
// ready_for_pickup 只給自取訂單，out_for_delivery 只給外送訂單
func CanTransitionTo(from, to OrderStatus, delivery DeliveryMethod) bool {
	switch to {
	case OrderStatusReadyForPickup:
		if delivery != DeliveryMethodPickup {
			return false
		}
	case OrderStatusOutForDelivery:
		if delivery != DeliveryMethodDelivery {
			return false
		}
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PaymentStatus 付款狀態，只能往前
type PaymentStatus string

const (
	PaymentStatusToPay                PaymentStatus = "to_pay"
	PaymentStatusAwaitingConfirmation PaymentStatus = "awaiting_confirmation"
	PaymentStatusPaid                 PaymentStatus = "paid"
)

var paymentRank = map[PaymentStatus]int{
	PaymentStatusToPay:                0,
	PaymentStatusAwaitingConfirmation: 1,
	PaymentStatusPaid:                 2,
}

func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	status := PaymentStatus(s)
	_, ok := paymentRank[status]
	return status, ok
}

// CanAdvanceTo 只允許嚴格往前，同狀態由呼叫端視為 no-op
func (s PaymentStatus) CanAdvanceTo(next PaymentStatus) bool {
	from, ok := paymentRank[s]
	if !ok {
		return false
	}
	to, ok := paymentRank[next]
	if !ok {
		return false
	}
	return to > from
}

// PaymentMethod 付款方式，貨到付款以外都需要上傳收據
type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodGCash          PaymentMethod = "gcash"
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMethodCard           PaymentMethod = "card"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	method := PaymentMethod(s)
	switch method {
	case PaymentMethodCashOnDelivery, PaymentMethodGCash, PaymentMethodBankTransfer, PaymentMethodCard:
		return method, true
	default:
		return "", false
	}
}

func (m PaymentMethod) IsPrepaid() bool {
	return m != PaymentMethodCashOnDelivery
}

// InitialPaymentStatus 建立訂單時的付款狀態
func (m PaymentMethod) InitialPaymentStatus() PaymentStatus {
	if m.IsPrepaid() {
		return PaymentStatusAwaitingConfirmation
	}
	return PaymentStatusToPay
}

type DeliveryMethod string

const (
	DeliveryMethodPickup   DeliveryMethod = "pickup"
	DeliveryMethodDelivery DeliveryMethod = "delivery"
)

func ParseDeliveryMethod(s string) (DeliveryMethod, bool) {
	method := DeliveryMethod(s)
	switch method {
	case DeliveryMethodPickup, DeliveryMethodDelivery:
		return method, true
	default:
		return "", false
	}
}
