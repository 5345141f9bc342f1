package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"gorm.io/gorm/clause"
)

// ICartRepository 購物車相關操作介面
type ICartRepository interface {
	ListCartLines(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error)
	UpsertCartLine(ctx context.Context, line *model.CartLine) error
	DeleteCartLine(ctx context.Context, userID uuid.UUID, productID int64) error
	DeleteCartLines(ctx context.Context, userID uuid.UUID, productIDs []int64) error
}

func (q *Queries) ListCartLines(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	var lines []model.CartLine
	err := q.conn(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, product_id ASC").
		Find(&lines).Error
	return lines, err
}

// UpsertCartLine 同一使用者同一商品只保留一筆，數量以最新為準
func (q *Queries) UpsertCartLine(ctx context.Context, line *model.CartLine) error {
	return q.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "customization", "updated_at"}),
	}).Create(line).Error
}

func (q *Queries) DeleteCartLine(ctx context.Context, userID uuid.UUID, productID int64) error {
	return q.conn(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartLine{}).Error
}

// DeleteCartLines 下單後移除已購買的商品
func (q *Queries) DeleteCartLines(ctx context.Context, userID uuid.UUID, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	return q.conn(ctx).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Delete(&model.CartLine{}).Error
}
