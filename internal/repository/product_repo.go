package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/model"
)

// ==================== CategoryRepository 分类仓库 ====================

// CategoryRepository 分类仓库接口
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	UpsertForShop(ctx context.Context, externalID int64, name string, shop *model.Shop) (*model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

// UpsertForShop 价目表导入：按外部 ID 取/建分类，更新名称，并关联到店铺
func (r *categoryRepository) UpsertForShop(ctx context.Context, externalID int64, name string, shop *model.Shop) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where(model.Category{ExternalID: externalID}).
		Assign(model.Category{Name: name}).
		FirstOrCreate(&category).Error
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&category).Association("Shops").Append(shop); err != nil {
		return nil, err
	}
	return &category, nil
}

// ==================== ProductInfoRepository 报价仓库 ====================

// ProductFilter 报价列表过滤条件
type ProductFilter struct {
	ShopID     int64
	CategoryID int64
}

// ProductInfoRepository 商品与报价仓库接口
type ProductInfoRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]model.ProductInfo, error)
	GetByID(ctx context.Context, id int64) (*model.ProductInfo, error)
	GetOrCreateProduct(ctx context.Context, name string, categoryID int64) (*model.Product, error)
	ReplaceShopListings(ctx context.Context, shopID int64, listings []model.ProductInfo) error
}

type productInfoRepository struct {
	db *gorm.DB
}

// NewProductInfoRepository 创建商品与报价仓库
func NewProductInfoRepository(db *gorm.DB) ProductInfoRepository {
	return &productInfoRepository{db: db}
}

// List 报价列表，只含接单中店铺的行，展开一层关联供投影使用
func (r *productInfoRepository) List(ctx context.Context, filter ProductFilter) ([]model.ProductInfo, error) {
	query := r.db.WithContext(ctx).
		Model(&model.ProductInfo{}).
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("shops.state = ?", true)

	if filter.ShopID > 0 {
		query = query.Where("product_infos.shop_id = ?", filter.ShopID)
	}
	if filter.CategoryID > 0 {
		query = query.
			Joins("JOIN products ON products.id = product_infos.product_id").
			Where("products.category_id = ?", filter.CategoryID)
	}

	var listings []model.ProductInfo
	err := query.
		Preload("Product.Category").
		Preload("Shop").
		Preload("Parameters").
		Order("product_infos.id ASC").
		Find(&listings).Error
	return listings, err
}

// GetByID 取单条报价（含店铺），不存在时返回 nil
func (r *productInfoRepository) GetByID(ctx context.Context, id int64) (*model.ProductInfo, error) {
	var info model.ProductInfo
	err := r.db.WithContext(ctx).Preload("Shop").First(&info, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &info, err
}

// GetOrCreateProduct 按名称+分类取/建抽象商品
func (r *productInfoRepository) GetOrCreateProduct(ctx context.Context, name string, categoryID int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where(model.Product{Name: name, CategoryID: categoryID}).
		FirstOrCreate(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ReplaceShopListings 价目表导入的写入段：
// 在一个事务里删掉店铺旧报价（连同参数行），再整体写入新报价
func (r *productInfoRepository) ReplaceShopListings(ctx context.Context, shopID int64, listings []model.ProductInfo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先删参数行，再删报价行，外键顺序不能反
		err := tx.
			Where("product_info_id IN (?)",
				tx.Model(&model.ProductInfo{}).Select("id").Where("shop_id = ?", shopID)).
			Delete(&model.ProductParameter{}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("shop_id = ?", shopID).Delete(&model.ProductInfo{}).Error; err != nil {
			return err
		}
		if len(listings) == 0 {
			return nil
		}
		return tx.Create(&listings).Error
	})
}
