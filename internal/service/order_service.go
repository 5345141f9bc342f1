package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mira-tu/FinalFlower-sub001/internal/constants"
	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/producer"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/repository/db"
	"github.com/mira-tu/FinalFlower-sub001/internal/util/apperr"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 3 * time.Second

// Viewer 呼叫者身分，由 token payload 取得
type Viewer struct {
	UserID uuid.UUID
	Role   constants.Role
}

type CreateOrderParams struct {
	UserID uuid.UUID
	// Lines 為空時改用使用者目前的購物車
	Lines          []model.OrderLine
	PaymentMethod  string
	DeliveryMethod string
	AddressID      *int64
	Notes          string
	ReceiptURL     *string
}

type ListOrdersFilter struct {
	Status   *model.OrderStatus
	Page     int
	PageSize int
}

// WithDefaults 未指定或不合法的分頁改用預設值
func (f ListOrdersFilter) WithDefaults() ListOrdersFilter {
	if f.PageSize <= 0 {
		f.PageSize = constants.DefaultPagingSize
	}
	if f.Page <= 0 {
		f.Page = constants.DefaultPaging
	}
	return f
}

// IOrderService 訂單建立與查詢
type IOrderService interface {
	// CreateOrder 在同一個交易內建立訂單
	//
	// 交易內容: 產生訂單編號、以交易內看到的價格計價、寫入表頭與明細、扣庫存、移除購物車內已下單的商品
	// 任何一步失敗整筆回滾
	//
	// 錯誤:
	//   - Validation: 明細為空、數量錯誤、商品不存在或下架、取貨方式或付款方式錯誤、外送缺地址
	//   - StockInsufficient: 任一商品庫存不足
	//   - Persistence: 資料庫錯誤
	CreateOrder(ctx context.Context, arg CreateOrderParams) (*model.Order, error)
	// GetOrder 一般使用者只能看自己的訂單，其他人的訂單回傳 NotFound
	GetOrder(ctx context.Context, viewer Viewer, orderID int64) (*model.Order, error)
	// ListOrders 新的在前；employee/admin 可看到所有訂單
	ListOrders(ctx context.Context, viewer Viewer, filter ListOrdersFilter) ([]model.Order, error)
}

type OrderService struct {
	store     db.IStore
	pricing   *PricingEngine
	guard     *StockGuard
	publisher producer.OrderEventPublisher
	now       func() time.Time
}

func NewOrderService(store db.IStore, pricing *PricingEngine, guard *StockGuard, publisher producer.OrderEventPublisher) *OrderService {
	if publisher == nil {
		publisher = producer.NoopPublisher{}
	}
	return &OrderService{
		store:     store,
		pricing:   pricing,
		guard:     guard,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type orderHeader struct {
	payment  model.PaymentMethod
	delivery model.DeliveryMethod
}

func validateOrderHeader(arg CreateOrderParams) (orderHeader, error) {
	delivery, ok := model.ParseDeliveryMethod(arg.DeliveryMethod)
	if !ok {
		return orderHeader{}, apperr.Validation("delivery_method must be pickup or delivery")
	}
	if delivery == model.DeliveryMethodDelivery && arg.AddressID == nil {
		return orderHeader{}, apperr.Validation("address_id is required for delivery orders")
	}
	payment, ok := model.ParsePaymentMethod(arg.PaymentMethod)
	if !ok {
		return orderHeader{}, apperr.Validation("unsupported payment_method %q", arg.PaymentMethod)
	}
	return orderHeader{payment: payment, delivery: delivery}, nil
}

func (o *OrderService) CreateOrder(ctx context.Context, arg CreateOrderParams) (*model.Order, error) {
	header, err := validateOrderHeader(arg)
	if err != nil {
		return nil, err
	}

	var order *model.Order
	err = o.store.ExecTx(ctx, func(q db.Querier) error {
		lines := arg.Lines
		if len(lines) == 0 {
			cart, err := q.ListCartLines(ctx, arg.UserID)
			if err != nil {
				return apperr.Persistence(err)
			}
			lines = cartToOrderLines(cart)
		}
		if len(lines) == 0 {
			return apperr.Validation("order must contain at least one item")
		}

		quote, err := o.pricing.ComputeOrder(ctx, q, lines, header.delivery)
		if err != nil {
			return err
		}

		if err := o.guard.Reserve(ctx, q, quote.Lines); err != nil {
			return err
		}

		now := o.now()
		number, err := q.NextOrderNumber(ctx, now)
		if err != nil {
			return apperr.Persistence(err)
		}

		order = buildOrder(arg, header, quote, number, now)
		if err := q.CreateOrder(ctx, order); err != nil {
			return apperr.Persistence(err)
		}

		productIDs := make([]int64, 0, len(quote.Lines))
		for _, line := range quote.Lines {
			productIDs = append(productIDs, line.ProductID)
		}
		if err := q.DeleteCartLines(ctx, arg.UserID, productIDs); err != nil {
			return apperr.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return nil, toAppErr(err)
	}

	log.Info().
		Int64("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("user_id", order.UserID.String()).
		Str("total", order.Total.StringFixed(2)).
		Msg("order created")
	o.publish(ctx, model.NewOrderEvent(model.OrderCreatedEventName, order))
	return order, nil
}

func cartToOrderLines(cart []model.CartLine) []model.OrderLine {
	lines := make([]model.OrderLine, 0, len(cart))
	for _, c := range cart {
		lines = append(lines, model.OrderLine{ProductID: c.ProductID, Quantity: c.Quantity, Customization: c.Customization})
	}
	return lines
}

func buildOrder(arg CreateOrderParams, header orderHeader, quote *Quote, number string, now time.Time) *model.Order {
	order := &model.Order{
		OrderNumber:    number,
		UserID:         arg.UserID,
		Status:         model.OrderStatusPending,
		PaymentStatus:  header.payment.InitialPaymentStatus(),
		PaymentMethod:  header.payment,
		DeliveryMethod: header.delivery,
		Subtotal:       quote.Subtotal,
		DeliveryFee:    quote.DeliveryFee,
		Total:          quote.Total,
		Notes:          strings.TrimSpace(arg.Notes),
		BaseModel:      model.BaseModel{CreatedAt: now, UpdatedAt: now},
	}
	if header.delivery == model.DeliveryMethodDelivery {
		order.AddressID = arg.AddressID
	}
	if arg.ReceiptURL != nil && strings.TrimSpace(*arg.ReceiptURL) != "" {
		receipt := strings.TrimSpace(*arg.ReceiptURL)
		order.ReceiptURL = &receipt
	}

	order.Items = make([]model.OrderItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		order.Items = append(order.Items, model.OrderItem{
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			Subtotal:      line.Subtotal,
			Customization: line.Customization,
			CreatedAt:     now,
		})
	}
	return order
}

func (o *OrderService) GetOrder(ctx context.Context, viewer Viewer, orderID int64) (*model.Order, error) {
	order, err := o.store.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, db.ErrOrderNotFound) {
			return nil, apperr.NotFound("order %d not found", orderID)
		}
		return nil, apperr.Persistence(err)
	}
	if !viewer.Role.IsStaff() && order.UserID != viewer.UserID {
		return nil, apperr.NotFound("order %d not found", orderID)
	}
	return order, nil
}

func (o *OrderService) ListOrders(ctx context.Context, viewer Viewer, filter ListOrdersFilter) ([]model.Order, error) {
	filter = filter.WithDefaults()
	arg := db.ListOrdersParams{
		Status: filter.Status,
		Limit:  filter.PageSize,
		Offset: (filter.Page - 1) * filter.PageSize,
	}
	if !viewer.Role.IsStaff() {
		arg.UserID = &viewer.UserID
	}

	orders, err := o.store.ListOrders(ctx, arg)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return orders, nil
}

func (o *OrderService) publish(ctx context.Context, event *model.OrderEvent) {
	publishEvent(ctx, o.publisher, event)
}

// publishEvent 交易已提交後才呼叫，失敗只記錄 log
func publishEvent(ctx context.Context, publisher producer.OrderEventPublisher, event *model.OrderEvent) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := publisher.Publish(pubCtx, event); err != nil {
		log.Warn().Err(err).
			Str("event_type", string(event.EventType)).
			Int64("order_id", event.OrderID).
			Msg("failed to publish order event")
	}
}

// toAppErr 交易外層錯誤，非 apperr 一律視為資料層錯誤
func toAppErr(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperr.Persistence(err)
}

var _ IOrderService = (*OrderService)(nil)
