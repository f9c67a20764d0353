package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
)

func newTestCatalogService(db *gorm.DB) *CatalogService {
	return NewCatalogService(
		repository.NewCategoryRepository(db),
		repository.NewShopRepository(db),
		repository.NewProductInfoRepository(db),
	)
}

func TestCatalogService_ListCategories(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestCatalogService(db)

	for _, name := range []string{"Smartphones", "Accessories", "Flash drives"} {
		db.Create(&model.Category{Name: name})
	}

	categories, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("查分类失败: %v", err)
	}
	if len(categories) != 3 {
		t.Errorf("分类数 = %d, want 3", len(categories))
	}
}

func TestCatalogService_ListShops_OnlyOpen(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestCatalogService(db)
	ctx := context.Background()

	open, _ := seedShopWithListings(t, db, "open@example.com", "Open Shop")
	closed, _ := seedShopWithListings(t, db, "closed@example.com", "Closed Shop")
	db.Model(&model.Shop{}).Where("id = ?", closed.ID).Update("state", false)

	shops, err := svc.ListShops(ctx)
	if err != nil {
		t.Fatalf("查店铺失败: %v", err)
	}
	if len(shops) != 1 || shops[0].ID != open.ID {
		t.Errorf("买家只应看到接单中的店铺: %+v", shops)
	}
}

func TestCatalogService_ListProducts(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestCatalogService(db)
	ctx := context.Background()

	shopA, infosA := seedShopWithListings(t, db, "a@example.com", "Shop A")
	shopB, _ := seedShopWithListings(t, db, "b@example.com", "Shop B")

	// 无过滤：两家店各两行
	all, err := svc.ListProducts(ctx, repository.ProductFilter{})
	if err != nil {
		t.Fatalf("查报价失败: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("报价数 = %d, want 4", len(all))
	}
	// 投影所需的关联都要带出来
	if all[0].Product == nil || all[0].Product.Category == nil || all[0].Shop == nil {
		t.Error("报价行应预加载商品、分类和店铺")
	}

	// 按店过滤
	byShop, _ := svc.ListProducts(ctx, repository.ProductFilter{ShopID: shopA.ID})
	if len(byShop) != 2 {
		t.Errorf("按店过滤报价数 = %d, want 2", len(byShop))
	}
	for _, info := range byShop {
		if info.ShopID != shopA.ID {
			t.Errorf("过滤漏了别家报价: %+v", info)
		}
	}

	// 按分类过滤
	var product model.Product
	db.First(&product, infosA[0].ProductID)
	byCategory, _ := svc.ListProducts(ctx, repository.ProductFilter{CategoryID: product.CategoryID})
	for _, info := range byCategory {
		if info.Product.CategoryID != product.CategoryID {
			t.Errorf("分类过滤漏了别的分类: %+v", info)
		}
	}

	// 关店后报价从目录消失
	db.Model(&model.Shop{}).Where("id = ?", shopB.ID).Update("state", false)
	visible, _ := svc.ListProducts(ctx, repository.ProductFilter{})
	if len(visible) != 2 {
		t.Errorf("关店后可见报价数 = %d, want 2", len(visible))
	}
	for _, info := range visible {
		if info.ShopID == shopB.ID {
			t.Error("关店的报价不应出现在目录里")
		}
	}
}
