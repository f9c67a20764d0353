package service

import (
	"context"

	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
)

// ==================== CatalogService 目录服务 ====================

// CatalogService 目录浏览：分类、店铺、报价列表。只读
type CatalogService struct {
	categories repository.CategoryRepository
	shops      repository.ShopRepository
	products   repository.ProductInfoRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(
	categories repository.CategoryRepository,
	shops repository.ShopRepository,
	products repository.ProductInfoRepository,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		shops:      shops,
		products:   products,
	}
}

// ListCategories 全部分类
func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

// ListShops 接单中的店铺
func (s *CatalogService) ListShops(ctx context.Context) ([]model.Shop, error) {
	return s.shops.ListOpen(ctx)
}

// ListProducts 报价列表，可按店铺/分类过滤，只含接单中店铺的行
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.ProductInfo, error) {
	return s.products.List(ctx, filter)
}
