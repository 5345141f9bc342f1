package service

import (
	"context"
	"errors"
	"math"

	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/repository/db"
	"github.com/mira-tu/FinalFlower-sub001/internal/util/apperr"
	"github.com/shopspring/decimal"
)

// QuoteLine 已解析價格的訂單明細
type QuoteLine struct {
	ProductID     int64
	ProductName   string
	Quantity      int
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal
	Customization *string
}

// Quote 計價結果，Total = Subtotal + DeliveryFee
type Quote struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
	Lines       []QuoteLine
}

// PricingEngine 計算小計、運費與總額，不保存任何狀態
type PricingEngine struct {
	deliveryFee decimal.Decimal
}

func NewPricingEngine(deliveryFee decimal.Decimal) *PricingEngine {
	return &PricingEngine{deliveryFee: deliveryFee}
}

// DeliveryFeeFor 只有外送收運費
func (p *PricingEngine) DeliveryFeeFor(method model.DeliveryMethod) decimal.Decimal {
	if method == model.DeliveryMethodDelivery {
		return p.deliveryFee
	}
	return decimal.Zero
}

// ComputeOrder 依目前商品價格計價
//
// 參數:
//   - lookup: 商品查詢，建立訂單時傳入交易內的 handle
//   - lines: 訂單明細，同一商品出現多次時數量合併
//   - method: 取貨方式
//
// 錯誤:
//   - Validation: 數量小於 1、商品不存在或已下架
//   - Persistence: 資料庫錯誤
func (p *PricingEngine) ComputeOrder(ctx context.Context, lookup ProductLookup, lines []model.OrderLine, method model.DeliveryMethod) (*Quote, error) {
	merged, err := mergeLines(lines)
	if err != nil {
		return nil, err
	}

	quote := &Quote{Subtotal: decimal.Zero, Lines: make([]QuoteLine, 0, len(merged))}
	for _, line := range merged {
		product, err := lookup.GetProductByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, db.ErrProductNotFound) {
				return nil, apperr.Validation("product %d does not exist", line.ProductID)
			}
			return nil, apperr.Persistence(err)
		}
		if !product.IsActive {
			return nil, apperr.Validation("product %q is not available", product.Name)
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		quote.Lines = append(quote.Lines, QuoteLine{
			ProductID:     product.ID,
			ProductName:   product.Name,
			Quantity:      line.Quantity,
			UnitPrice:     product.Price,
			Subtotal:      subtotal,
			Customization: line.Customization,
		})
		quote.Subtotal = quote.Subtotal.Add(subtotal)
	}

	quote.DeliveryFee = p.DeliveryFeeFor(method)
	quote.Total = quote.Subtotal.Add(quote.DeliveryFee)
	return quote, nil
}

// MaxLineQuantity 單一商品數量上限，與資料表 integer 欄位一致
const MaxLineQuantity = math.MaxInt32

// mergeLines 驗證數量並合併重複商品，保留第一次出現的順序
func mergeLines(lines []model.OrderLine) ([]model.OrderLine, error) {
	index := make(map[int64]int, len(lines))
	merged := make([]model.OrderLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperr.Validation("quantity for product %d must be at least 1", line.ProductID)
		}
		if line.Quantity > MaxLineQuantity {
			return nil, apperr.Validation("quantity for product %d must not exceed %d", line.ProductID, MaxLineQuantity)
		}
		if i, ok := index[line.ProductID]; ok {
			if merged[i].Quantity > MaxLineQuantity-line.Quantity {
				return nil, apperr.Validation("quantity for product %d must not exceed %d", line.ProductID, MaxLineQuantity)
			}
			merged[i].Quantity += line.Quantity
			if merged[i].Customization == nil {
				merged[i].Customization = line.Customization
			}
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}
