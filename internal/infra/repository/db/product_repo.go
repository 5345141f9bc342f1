package db

import (
	"context"
	"errors"

	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"gorm.io/gorm"
)

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	CreateProductIfNotExists(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context, onlyActive bool) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeductProductStock(ctx context.Context, id int64, quantity int) error
	AddProductStock(ctx context.Context, id int64, quantity int) error
}

func (q *Queries) CreateProduct(ctx context.Context, product *model.Product) error {
	return translateError(q.conn(ctx).Create(product).Error)
}

// CreateProductIfNotExists 以名稱判斷是否存在，給 seed 使用，冪等
func (q *Queries) CreateProductIfNotExists(ctx context.Context, product *model.Product) error {
	return q.conn(ctx).
		Where(model.Product{Name: product.Name}).
		Attrs(model.Product{
			Category:    product.Category,
			Description: product.Description,
			Price:       product.Price,
			Stock:       product.Stock,
			IsActive:    product.IsActive,
		}).
		FirstOrCreate(product).Error
}

func (q *Queries) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := q.conn(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (q *Queries) ListProducts(ctx context.Context, onlyActive bool) ([]model.Product, error) {
	var products []model.Product
	query := q.conn(ctx).Order("id ASC")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&products).Error
	return products, err
}

// UpdateProduct 只更新可編輯欄位，不存在時回傳 ErrProductNotFound
func (q *Queries) UpdateProduct(ctx context.Context, product *model.Product) error {
	result := q.conn(ctx).Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"category":    product.Category,
			"description": product.Description,
			"price":       product.Price,
			"stock":       product.Stock,
			"is_active":   product.IsActive,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeductProductStock 條件式扣庫存，庫存不足時不會有任何一列被更新
func (q *Queries) DeductProductStock(ctx context.Context, id int64, quantity int) error {
	result := q.conn(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductStockNotEnough
	}
	return nil
}

func (q *Queries) AddProductStock(ctx context.Context, id int64, quantity int) error {
	result := q.conn(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
