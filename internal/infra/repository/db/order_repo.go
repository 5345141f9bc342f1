package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mira-tu/FinalFlower-sub001/internal/constants"
	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"gorm.io/gorm"
)

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	NextOrderNumber(ctx context.Context, now time.Time) (string, error)
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id int64) (*model.Order, error)
	ListOrders(ctx context.Context, arg ListOrdersParams) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (bool, error)
	UpdatePaymentStatus(ctx context.Context, arg UpdatePaymentStatusParams) (bool, error)
}

type ListOrdersParams struct {
	// nil 代表不限制使用者，給 employee/admin 使用
	UserID *uuid.UUID
	Status *model.OrderStatus
	Limit  int
	Offset int
}

// UpdateOrderStatusParams 條件式更新，只有目前狀態在 From 內才會更新
type UpdateOrderStatusParams struct {
	ID     int64
	UserID *uuid.UUID
	From   []model.OrderStatus
	To     model.OrderStatus
}

type UpdatePaymentStatusParams struct {
	ID          int64
	UserID      *uuid.UUID
	From        []model.PaymentStatus
	To          model.PaymentStatus
	PaymentType *string
	ReceiptURL  *string
	PaidAt      *time.Time

	// ExcludeStatuses 訂單狀態在清單內時不更新
	ExcludeStatuses []model.OrderStatus
}

// NextOrderNumber 由資料庫 sequence 產生，格式 ORD-YYYYMMDD-000001
func (q *Queries) NextOrderNumber(ctx context.Context, now time.Time) (string, error) {
	var seq int64
	if err := q.conn(ctx).Raw("SELECT nextval('order_number_seq')").Scan(&seq).Error; err != nil {
		return "", err
	}
	return FormatOrderNumber(now, seq), nil
}

func FormatOrderNumber(now time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%06d", constants.OrderNumberPrefix, now.UTC().Format("20060102"), seq)
}

// CreateOrder 建立表頭與明細，明細透過 association 一起寫入
func (q *Queries) CreateOrder(ctx context.Context, order *model.Order) error {
	return translateError(q.conn(ctx).Create(order).Error)
}

func (q *Queries) GetOrderByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := q.conn(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListOrders 新的在前，只回傳表頭
func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]model.Order, error) {
	var orders []model.Order
	query := q.conn(ctx).Model(&model.Order{})
	if arg.UserID != nil {
		query = query.Where("user_id = ?", *arg.UserID)
	}
	if arg.Status != nil {
		query = query.Where("status = ?", *arg.Status)
	}
	if arg.Limit > 0 {
		query = query.Limit(arg.Limit)
	}
	if arg.Offset > 0 {
		query = query.Offset(arg.Offset)
	}
	err := query.Order("created_at DESC, id DESC").Find(&orders).Error
	return orders, err
}

// UpdateOrderStatus 回傳是否有更新到資料
func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (bool, error) {
	query := q.conn(ctx).Model(&model.Order{}).
		Where("id = ? AND status IN ?", arg.ID, arg.From)
	if arg.UserID != nil {
		query = query.Where("user_id = ?", *arg.UserID)
	}
	result := query.Update("status", arg.To)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// UpdatePaymentStatus 條件式更新付款狀態，nil 欄位不會被覆寫
func (q *Queries) UpdatePaymentStatus(ctx context.Context, arg UpdatePaymentStatusParams) (bool, error) {
	values := map[string]any{"payment_status": arg.To}
	if arg.PaymentType != nil {
		values["payment_type"] = *arg.PaymentType
	}
	if arg.ReceiptURL != nil {
		values["receipt_url"] = *arg.ReceiptURL
	}
	if arg.PaidAt != nil {
		values["paid_at"] = *arg.PaidAt
	}

	query := q.conn(ctx).Model(&model.Order{}).
		Where("id = ? AND payment_status IN ?", arg.ID, arg.From)
	if arg.UserID != nil {
		query = query.Where("user_id = ?", *arg.UserID)
	}
	if len(arg.ExcludeStatuses) > 0 {
		query = query.Where("status NOT IN ?", arg.ExcludeStatuses)
	}
	result := query.Updates(values)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
