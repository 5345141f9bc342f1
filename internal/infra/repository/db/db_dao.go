package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrProductStockNotEnough 商品庫存不足
	ErrProductStockNotEnough = errors.New("product stock not enough")
	// ErrOrderNotFound 訂單不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateKey 違反唯一限制
	ErrDuplicateKey = errors.New("duplicate key")
)

// Querier 所有資料存取操作，交易內外使用同一組介面
type Querier interface {
	IProductRepository
	IOrderRepository
	ICartRepository
}

type IStore interface {
	Querier
	ExecTx(ctx context.Context, fn func(Querier) error) error
	Close() error
}

// Queries 綁定在某個 gorm handle 上，可能是連線池也可能是交易
type Queries struct {
	db *gorm.DB
}

func NewQueries(db *gorm.DB) *Queries {
	return &Queries{db: db}
}

func (q *Queries) conn(ctx context.Context) *gorm.DB {
	return q.db.WithContext(ctx)
}

// Store 結構用來管理數據庫連接和交易
type Store struct {
	*Queries
	db *gorm.DB
}

// NewStore 創建一個新的 Store
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:      db,
		Queries: NewQueries(db),
	}
}

// ExecTx 執行一個交易，fn 回傳錯誤時整個交易回滾
func (s *Store) ExecTx(ctx context.Context, fn func(Querier) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewQueries(tx))
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB 給 migration 等需要原始連線的地方使用
func (s *Store) DB() *gorm.DB {
	return s.db
}

// 將 postgres 唯一限制錯誤轉為 ErrDuplicateKey
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return errors.Join(ErrDuplicateKey, err)
	}
	return err
}

var (
	_ IStore  = (*Store)(nil)
	_ Querier = (*Queries)(nil)
)
