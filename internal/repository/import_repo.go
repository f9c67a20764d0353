package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/model"
)

// ==================== PriceListImportRepository 导入记录仓库 ====================

// PriceListImportRepository 价目表导入记录仓库接口
type PriceListImportRepository interface {
	Create(ctx context.Context, record *model.PriceListImport) error
	ListByShop(ctx context.Context, shopID int64, limit int) ([]model.PriceListImport, error)
	DeleteFailedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type priceListImportRepository struct {
	db *gorm.DB
}

// NewPriceListImportRepository 创建导入记录仓库
func NewPriceListImportRepository(db *gorm.DB) PriceListImportRepository {
	return &priceListImportRepository{db: db}
}

func (r *priceListImportRepository) Create(ctx context.Context, record *model.PriceListImport) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *priceListImportRepository) ListByShop(ctx context.Context, shopID int64, limit int) ([]model.PriceListImport, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []model.PriceListImport
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// DeleteFailedBefore 清理早于 cutoff 的失败导入记录，返回删除行数
func (r *priceListImportRepository) DeleteFailedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.ImportStatusFailed, cutoff).
		Delete(&model.PriceListImport{})
	return result.RowsAffected, result.Error
}
