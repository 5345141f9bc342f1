package service

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/repository/db"
	"github.com/mira-tu/FinalFlower-sub001/internal/util/apperr"
)

// StockGuard 庫存檢查
// 購物車異動只做檢查；建立訂單時在交易內做條件式扣減
type StockGuard struct {
	products ProductLookup
}

func NewStockGuard(products ProductLookup) *StockGuard {
	return &StockGuard{products: products}
}

// CheckQuantity 購物車使用，數量超過庫存回傳 StockInsufficient
func (g *StockGuard) CheckQuantity(ctx context.Context, productID int64, quantity int) error {
	product, err := g.products.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return apperr.NotFound("product %d not found", productID)
		}
		return apperr.Persistence(err)
	}
	if !product.IsActive {
		return apperr.Validation("product %q is not available", product.Name)
	}
	if quantity > product.Stock {
		return apperr.StockInsufficient("only %d of %q left in stock", product.Stock, product.Name)
	}
	return nil
}

// Reserve 在交易內逐項扣庫存，任何一項不足整筆失敗
// 依商品 id 排序扣減，避免兩筆交易互相等待
func (g *StockGuard) Reserve(ctx context.Context, q db.IProductRepository, lines []QuoteLine) error {
	ordered := slices.Clone(lines)
	slices.SortFunc(ordered, func(a, b QuoteLine) int {
		return cmp.Compare(a.ProductID, b.ProductID)
	})

	for _, line := range ordered {
		if err := q.DeductProductStock(ctx, line.ProductID, line.Quantity); err != nil {
			if errors.Is(err, db.ErrProductStockNotEnough) {
				return apperr.StockInsufficient("not enough stock for %q", line.ProductName)
			}
			return apperr.Persistence(err)
		}
	}
	return nil
}

// Release 取消訂單時補回庫存，必須與狀態更新在同一個交易
func (g *StockGuard) Release(ctx context.Context, q db.IProductRepository, items []model.OrderItem) error {
	for _, item := range items {
		if err := q.AddProductStock(ctx, item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, db.ErrProductNotFound) {
				continue
			}
			return apperr.Persistence(err)
		}
	}
	return nil
}
