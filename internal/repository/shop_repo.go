package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/model"
)

// ==================== ShopRepository 店铺仓库 ====================

// ShopRepository 店铺仓库接口
type ShopRepository interface {
	Create(ctx context.Context, shop *model.Shop) error
	Save(ctx context.Context, shop *model.Shop) error
	GetByUserID(ctx context.Context, userID int64) (*model.Shop, error)
	GetByName(ctx context.Context, name string) (*model.Shop, error)
	ListOpen(ctx context.Context) ([]model.Shop, error)
	UpdateState(ctx context.Context, userID int64, state bool) error
}

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓库
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Create(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *shopRepository) Save(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// GetByUserID 按店主取店铺，不存在时返回 nil
func (r *shopRepository) GetByUserID(ctx context.Context, userID int64) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

// GetByName 按名称取店铺，不存在时返回 nil
func (r *shopRepository) GetByName(ctx context.Context, name string) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

// ListOpen 只列出接单中的店铺（目录浏览）
func (r *shopRepository) ListOpen(ctx context.Context) ([]model.Shop, error) {
	var shops []model.Shop
	err := r.db.WithContext(ctx).
		Where("state = ?", true).
		Order("id ASC").
		Find(&shops).Error
	return shops, err
}

// UpdateState 切换店铺接单状态
func (r *shopRepository) UpdateState(ctx context.Context, userID int64, state bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("user_id = ?", userID).
		Update("state", state).Error
}
