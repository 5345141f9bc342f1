package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/producer"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/repository/db"
	"github.com/mira-tu/FinalFlower-sub001/internal/util/apperr"
	"github.com/rs/zerolog/log"
)

// IOrderStateService 訂單狀態與付款狀態的轉換
//
// 所有更新都是條件式更新 (WHERE 目前狀態 IN ...)，不會先讀再寫
type IOrderStateService interface {
	// Cancel 使用者取消自己的訂單，只有 pending/processing 可以取消
	//
	// 返回值:
	//   - bool: 這次呼叫是否真的取消了訂單；重複取消回傳 false
	//
	// 錯誤:
	//   - NotFound: 訂單不存在或不屬於該使用者
	Cancel(ctx context.Context, orderID int64, userID uuid.UUID) (bool, error)
	// SetStatus employee/admin 更新狀態，必須符合轉換表；與目前狀態相同時不做任何事
	SetStatus(ctx context.Context, orderID int64, status string) (*model.Order, error)
	// ConfirmPayment 標記為已付款，預付方式需要收據
	ConfirmPayment(ctx context.Context, orderID int64, paymentType string, receiptURL *string) (*model.Order, error)
	// SetPaymentStatus 付款狀態只能往前，paid 會走 ConfirmPayment
	SetPaymentStatus(ctx context.Context, orderID int64, arg SetPaymentStatusParams) (*model.Order, error)
	// AttachReceipt 使用者上傳收據，to_pay 會改為 awaiting_confirmation
	AttachReceipt(ctx context.Context, orderID int64, userID uuid.UUID, receiptURL string) (*model.Order, error)
}

type SetPaymentStatusParams struct {
	Status      string
	PaymentType *string
	ReceiptURL  *string
}

type OrderStateService struct {
	store     db.IStore
	guard     *StockGuard
	publisher producer.OrderEventPublisher
	now       func() time.Time
}

func NewOrderStateService(store db.IStore, guard *StockGuard, publisher producer.OrderEventPublisher) *OrderStateService {
	if publisher == nil {
		publisher = producer.NoopPublisher{}
	}
	return &OrderStateService{
		store:     store,
		guard:     guard,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *OrderStateService) loadOrder(ctx context.Context, q db.IOrderRepository, orderID int64) (*model.Order, error) {
	order, err := q.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, db.ErrOrderNotFound) {
			return nil, apperr.NotFound("order %d not found", orderID)
		}
		return nil, apperr.Persistence(err)
	}
	return order, nil
}

func (s *OrderStateService) Cancel(ctx context.Context, orderID int64, userID uuid.UUID) (bool, error) {
	var (
		cancelled bool
		order     *model.Order
		previous  model.OrderStatus
	)
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		current, err := s.loadOrder(ctx, q, orderID)
		if err != nil {
			return err
		}
		if current.UserID != userID {
			return apperr.NotFound("order %d not found", orderID)
		}
		previous = current.Status

		updated, err := q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
			ID:     orderID,
			UserID: &userID,
			From:   model.CancellableStatuses,
			To:     model.OrderStatusCancelled,
		})
		if err != nil {
			return apperr.Persistence(err)
		}
		if !updated {
			return nil
		}

		if err := s.guard.Release(ctx, q, current.Items); err != nil {
			return err
		}
		cancelled = true
		current.Status = model.OrderStatusCancelled
		order = current
		return nil
	})
	if err != nil {
		return false, toAppErr(err)
	}

	if cancelled {
		log.Info().Int64("order_id", orderID).Str("user_id", userID.String()).Msg("order cancelled")
		event := model.NewOrderEvent(model.OrderCancelledEventName, order)
		event.PreviousStatus = previous
		publishEvent(ctx, s.publisher, event)
	}
	return cancelled, nil
}

func (s *OrderStateService) SetStatus(ctx context.Context, orderID int64, status string) (*model.Order, error) {
	target, ok := model.ParseOrderStatus(status)
	if !ok {
		return nil, apperr.Validation("unknown order status %q", status)
	}

	var (
		order    *model.Order
		previous model.OrderStatus
		changed  bool
	)
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		current, err := s.loadOrder(ctx, q, orderID)
		if err != nil {
			return err
		}
		order = current
		previous = current.Status
		if current.Status == target {
			return nil
		}
		if !model.CanTransitionTo(current.Status, target, current.DeliveryMethod) {
			return apperr.InvalidTransition("cannot change order from %s to %s", current.Status, target)
		}

		updated, err := q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
			ID:   orderID,
			From: []model.OrderStatus{current.Status},
			To:   target,
		})
		if err != nil {
			return apperr.Persistence(err)
		}
		if !updated {
			return apperr.InvalidTransition("order %d was changed by another request", orderID)
		}
		if target == model.OrderStatusCancelled {
			if err := s.guard.Release(ctx, q, current.Items); err != nil {
				return err
			}
		}
		current.Status = target
		changed = true
		return nil
	})
	if err != nil {
		return nil, toAppErr(err)
	}

	if changed {
		log.Info().Int64("order_id", orderID).Str("from", string(previous)).Str("to", string(target)).Msg("order status changed")
		eventType := model.OrderStatusChangedEventName
		if target == model.OrderStatusCancelled {
			eventType = model.OrderCancelledEventName
		}
		event := model.NewOrderEvent(eventType, order)
		event.PreviousStatus = previous
		publishEvent(ctx, s.publisher, event)
	}
	return order, nil
}

func (s *OrderStateService) ConfirmPayment(ctx context.Context, orderID int64, paymentType string, receiptURL *string) (*model.Order, error) {
	receipt := normalizeReceipt(receiptURL)

	var (
		order    *model.Order
		previous model.PaymentStatus
		changed  bool
	)
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		current, err := s.loadOrder(ctx, q, orderID)
		if err != nil {
			return err
		}
		order = current
		previous = current.PaymentStatus
		if current.PaymentStatus == model.PaymentStatusPaid {
			return nil
		}
		if current.Status == model.OrderStatusCancelled {
			return apperr.InvalidTransition("cannot confirm payment of a cancelled order")
		}

		method := current.PaymentMethod
		if strings.TrimSpace(paymentType) != "" {
			parsed, ok := model.ParsePaymentMethod(strings.TrimSpace(paymentType))
			if !ok {
				return apperr.Validation("unsupported payment_type %q", paymentType)
			}
			method = parsed
		}
		if method.IsPrepaid() && receipt == nil && current.ReceiptURL == nil {
			return apperr.Validation("a receipt is required to confirm %s payments", method)
		}

		paidAt := s.now()
		typeValue := string(method)
		updated, err := q.UpdatePaymentStatus(ctx, db.UpdatePaymentStatusParams{
			ID:              orderID,
			From:            []model.PaymentStatus{model.PaymentStatusToPay, model.PaymentStatusAwaitingConfirmation},
			To:              model.PaymentStatusPaid,
			PaymentType:     &typeValue,
			ReceiptURL:      receipt,
			PaidAt:          &paidAt,
			ExcludeStatuses: []model.OrderStatus{model.OrderStatusCancelled},
		})
		if err != nil {
			return apperr.Persistence(err)
		}
		if !updated {
			// 讀取後被其他請求取消或標記為 paid
			latest, err := s.loadOrder(ctx, q, orderID)
			if err != nil {
				return err
			}
			if latest.Status == model.OrderStatusCancelled {
				return apperr.InvalidTransition("cannot confirm payment of a cancelled order")
			}
			order = latest
			return nil
		}
		current.PaymentStatus = model.PaymentStatusPaid
		current.PaymentType = &typeValue
		current.PaidAt = &paidAt
		if receipt != nil {
			current.ReceiptURL = receipt
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, toAppErr(err)
	}

	if changed {
		log.Info().Int64("order_id", orderID).Str("payment_type", *order.PaymentType).Msg("order payment confirmed")
		event := model.NewOrderEvent(model.OrderPaymentChangedEventName, order)
		event.PreviousPayStatus = previous
		publishEvent(ctx, s.publisher, event)
	}
	return order, nil
}

func (s *OrderStateService) SetPaymentStatus(ctx context.Context, orderID int64, arg SetPaymentStatusParams) (*model.Order, error) {
	target, ok := model.ParsePaymentStatus(arg.Status)
	if !ok {
		return nil, apperr.Validation("unknown payment status %q", arg.Status)
	}
	if target == model.PaymentStatusPaid {
		paymentType := ""
		if arg.PaymentType != nil {
			paymentType = *arg.PaymentType
		}
		return s.ConfirmPayment(ctx, orderID, paymentType, arg.ReceiptURL)
	}

	var (
		order    *model.Order
		previous model.PaymentStatus
		changed  bool
	)
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		current, err := s.loadOrder(ctx, q, orderID)
		if err != nil {
			return err
		}
		order = current
		previous = current.PaymentStatus
		if current.PaymentStatus == target {
			return nil
		}
		if current.Status == model.OrderStatusCancelled {
			return apperr.InvalidTransition("cannot change payment status of a cancelled order")
		}
		if !current.PaymentStatus.CanAdvanceTo(target) {
			return apperr.InvalidTransition("cannot change payment status from %s to %s", current.PaymentStatus, target)
		}

		receipt := normalizeReceipt(arg.ReceiptURL)
		updated, err := q.UpdatePaymentStatus(ctx, db.UpdatePaymentStatusParams{
			ID:              orderID,
			From:            []model.PaymentStatus{current.PaymentStatus},
			To:              target,
			ReceiptURL:      receipt,
			ExcludeStatuses: []model.OrderStatus{model.OrderStatusCancelled},
		})
		if err != nil {
			return apperr.Persistence(err)
		}
		if !updated {
			return apperr.InvalidTransition("order %d payment was changed by another request", orderID)
		}
		current.PaymentStatus = target
		if receipt != nil {
			current.ReceiptURL = receipt
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, toAppErr(err)
	}

	if changed {
		event := model.NewOrderEvent(model.OrderPaymentChangedEventName, order)
		event.PreviousPayStatus = previous
		publishEvent(ctx, s.publisher, event)
	}
	return order, nil
}

func (s *OrderStateService) AttachReceipt(ctx context.Context, orderID int64, userID uuid.UUID, receiptURL string) (*model.Order, error) {
	receipt := normalizeReceipt(&receiptURL)
	if receipt == nil {
		return nil, apperr.Validation("receipt_url is required")
	}

	var order *model.Order
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		current, err := s.loadOrder(ctx, q, orderID)
		if err != nil {
			return err
		}
		if current.UserID != userID {
			return apperr.NotFound("order %d not found", orderID)
		}
		if current.Status == model.OrderStatusCancelled {
			return apperr.InvalidTransition("cannot attach a receipt to a cancelled order")
		}
		if current.PaymentStatus == model.PaymentStatusPaid {
			return apperr.InvalidTransition("order %d is already paid", orderID)
		}

		updated, err := q.UpdatePaymentStatus(ctx, db.UpdatePaymentStatusParams{
			ID:              orderID,
			UserID:          &userID,
			From:            []model.PaymentStatus{model.PaymentStatusToPay, model.PaymentStatusAwaitingConfirmation},
			To:              model.PaymentStatusAwaitingConfirmation,
			ReceiptURL:      receipt,
			ExcludeStatuses: []model.OrderStatus{model.OrderStatusCancelled},
		})
		if err != nil {
			return apperr.Persistence(err)
		}
		if !updated {
			return apperr.InvalidTransition("order %d was paid or cancelled by another request", orderID)
		}
		current.ReceiptURL = receipt
		current.PaymentStatus = model.PaymentStatusAwaitingConfirmation
		order = current
		return nil
	})
	if err != nil {
		return nil, toAppErr(err)
	}

	publishEvent(ctx, s.publisher, model.NewOrderEvent(model.OrderReceiptAttachedEventName, order))
	return order, nil
}

func normalizeReceipt(receiptURL *string) *string {
	if receiptURL == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*receiptURL)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

var _ IOrderStateService = (*OrderStateService)(nil)
