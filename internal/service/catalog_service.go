package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/repository/db"
	"github.com/mira-tu/FinalFlower-sub001/internal/util/apperr"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ProductLookup 查詢商品，交易內外都可以傳入
type ProductLookup interface {
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)
}

// ICatalogService 商品目錄
//
// 訂單流程只讀取商品；新增與修改給 admin 使用
type ICatalogService interface {
	// GetProduct 依 id 取得商品
	//
	// 錯誤:
	//   - NotFound: 商品不存在
	//   - Persistence: 資料庫錯誤
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	// ListProducts includeInactive 為 false 時只回傳上架商品
	ListProducts(ctx context.Context, includeInactive bool) ([]model.Product, error)
	CreateProduct(ctx context.Context, arg ProductParams) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, arg ProductParams) (*model.Product, error)
	// SeedFromFile 從 yaml 匯入商品，已存在的名稱會略過
	SeedFromFile(ctx context.Context, path string) (int, error)
}

type ProductParams struct {
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Stock       int
	IsActive    bool
}

type CatalogService struct {
	products db.IProductRepository
}

func NewCatalogService(products db.IProductRepository) ICatalogService {
	return &CatalogService{products: products}
}

func (c *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := c.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, apperr.NotFound("product %d not found", id)
		}
		return nil, apperr.Persistence(err)
	}
	return product, nil
}

func (c *CatalogService) ListProducts(ctx context.Context, includeInactive bool) ([]model.Product, error) {
	products, err := c.products.ListProducts(ctx, !includeInactive)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return products, nil
}

func validateProductParams(arg ProductParams) error {
	if strings.TrimSpace(arg.Name) == "" {
		return apperr.Validation("product name is required")
	}
	if arg.Price.IsNegative() {
		return apperr.Validation("price must not be negative")
	}
	if arg.Stock < 0 {
		return apperr.Validation("stock must not be negative")
	}
	return nil
}

func (c *CatalogService) CreateProduct(ctx context.Context, arg ProductParams) (*model.Product, error) {
	if err := validateProductParams(arg); err != nil {
		return nil, err
	}
	product := &model.Product{
		Name:        strings.TrimSpace(arg.Name),
		Category:    arg.Category,
		Description: arg.Description,
		Price:       arg.Price.Round(2),
		Stock:       arg.Stock,
		IsActive:    arg.IsActive,
	}
	if err := c.products.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, apperr.Validation("product %q already exists", product.Name)
		}
		return nil, apperr.Persistence(err)
	}
	return product, nil
}

func (c *CatalogService) UpdateProduct(ctx context.Context, id int64, arg ProductParams) (*model.Product, error) {
	if err := validateProductParams(arg); err != nil {
		return nil, err
	}
	product := &model.Product{
		ID:          id,
		Name:        strings.TrimSpace(arg.Name),
		Category:    arg.Category,
		Description: arg.Description,
		Price:       arg.Price.Round(2),
		Stock:       arg.Stock,
		IsActive:    arg.IsActive,
	}
	if err := c.products.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, apperr.NotFound("product %d not found", id)
		}
		return nil, apperr.Persistence(err)
	}
	return c.GetProduct(ctx, id)
}

type catalogSeed struct {
	Products []struct {
		Name        string `yaml:"name"`
		Category    string `yaml:"category"`
		Description string `yaml:"description"`
		Price       string `yaml:"price"`
		Stock       int    `yaml:"stock"`
		Active      *bool  `yaml:"active"`
	} `yaml:"products"`
}

func (c *CatalogService) SeedFromFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read catalog seed: %w", err)
	}
	var seed catalogSeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return 0, fmt.Errorf("parse catalog seed: %w", err)
	}

	count := 0
	for _, p := range seed.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return count, fmt.Errorf("product %q has invalid price %q: %w", p.Name, p.Price, err)
		}
		active := true
		if p.Active != nil {
			active = *p.Active
		}
		arg := ProductParams{Name: p.Name, Category: p.Category, Description: p.Description, Price: price, Stock: p.Stock, IsActive: active}
		if err := validateProductParams(arg); err != nil {
			return count, err
		}
		product := &model.Product{
			Name:        strings.TrimSpace(p.Name),
			Category:    p.Category,
			Description: p.Description,
			Price:       price.Round(2),
			Stock:       p.Stock,
			IsActive:    active,
		}
		if err := c.products.CreateProductIfNotExists(ctx, product); err != nil {
			return count, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		count++
	}
	log.Info().Int("products", count).Str("file", path).Msg("catalog seeded")
	return count, nil
}
