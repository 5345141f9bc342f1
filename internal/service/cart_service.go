package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/repository/db"
	"github.com/mira-tu/FinalFlower-sub001/internal/util/apperr"
)

type SetCartItemParams struct {
	UserID        uuid.UUID
	ProductID     int64
	Quantity      int
	Customization *string
}

// ICartService 購物車，數量異動時檢查庫存但不保留庫存
type ICartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error)
	// SetItem 設定商品數量，已存在時覆蓋
	//
	// 錯誤:
	//   - Validation: 數量小於 1 或商品已下架
	//   - NotFound: 商品不存在
	//   - StockInsufficient: 數量超過庫存
	SetItem(ctx context.Context, arg SetCartItemParams) (*model.CartLine, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) error
}

type CartService struct {
	carts db.ICartRepository
	guard *StockGuard
}

func NewCartService(carts db.ICartRepository, guard *StockGuard) *CartService {
	return &CartService{carts: carts, guard: guard}
}

func (c *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	lines, err := c.carts.ListCartLines(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return lines, nil
}

func (c *CartService) SetItem(ctx context.Context, arg SetCartItemParams) (*model.CartLine, error) {
	if arg.Quantity <= 0 {
		return nil, apperr.Validation("quantity must be at least 1")
	}
	if err := c.guard.CheckQuantity(ctx, arg.ProductID, arg.Quantity); err != nil {
		return nil, err
	}

	line := &model.CartLine{
		UserID:    arg.UserID,
		ProductID: arg.ProductID,
		Quantity:  arg.Quantity,
	}
	if arg.Customization != nil && strings.TrimSpace(*arg.Customization) != "" {
		custom := strings.TrimSpace(*arg.Customization)
		line.Customization = &custom
	}
	if err := c.carts.UpsertCartLine(ctx, line); err != nil {
		return nil, apperr.Persistence(err)
	}
	return line, nil
}

func (c *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) error {
	if err := c.carts.DeleteCartLine(ctx, userID, productID); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

var _ ICartService = (*CartService)(nil)
