package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func newTestOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductInfoRepository(db),
		repository.NewContactRepository(db),
		repository.NewUserRepository(db),
		NewMailService(&MailConfig{}),
	)
}

// seedShopWithListings 造一家店和两行报价，价格 100 / 250
func seedShopWithListings(t *testing.T, db *gorm.DB, ownerEmail, shopName string) (*model.Shop, []model.ProductInfo) {
	t.Helper()

	owner := seedUser(t, db, ownerEmail, model.UserTypeShop)
	shop := &model.Shop{Name: shopName, UserID: owner.ID, State: true}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("造店铺失败: %v", err)
	}

	category := &model.Category{ExternalID: 224, Name: "Smartphones"}
	db.Create(category)

	var infos []model.ProductInfo
	for i, price := range []int{100, 250} {
		product := &model.Product{Name: fmt.Sprintf("Phone %d", i+1), CategoryID: category.ID}
		db.Create(product)
		info := model.ProductInfo{
			ProductID:  product.ID,
			ShopID:     shop.ID,
			ExternalID: int64(1000 + i),
			Name:       product.Name,
			Quantity:   10,
			Price:      price,
			PriceRRC:   price + 20,
		}
		if err := db.Create(&info).Error; err != nil {
			t.Fatalf("造报价失败: %v", err)
		}
		infos = append(infos, info)
	}
	return shop, infos
}

func seedContact(t *testing.T, db *gorm.DB, userID int64) *model.Contact {
	t.Helper()
	contact := &model.Contact{UserID: userID, City: "Moscow", Street: "Lenina 1", Phone: "+7 900 000-00-00"}
	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("造联系方式失败: %v", err)
	}
	return contact
}

// ==================== 购物篮 ====================

func TestOrderService_AddItems(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "buyer@example.com", model.UserTypeBuyer)
	_, infos := seedShopWithListings(t, db, "shop@example.com", "Svyaznoy")

	created, err := svc.AddItems(ctx, buyer.ID, []dto.BasketItemRequest{
		{ProductInfo: infos[0].ID, Quantity: 2},
		{ProductInfo: infos[1].ID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("加购失败: %v", err)
	}
	if created != 2 {
		t.Errorf("写入行数 = %d, want 2", created)
	}

	basket, err := svc.GetBasket(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("取购物篮失败: %v", err)
	}
	if basket == nil {
		t.Fatal("加购后应有购物篮")
	}
	if basket.Status != model.OrderStatusBasket {
		t.Errorf("status = %s, want basket", basket.Status)
	}
	if len(basket.Items) != 2 {
		t.Fatalf("行数 = %d, want 2", len(basket.Items))
	}
	if got := basket.TotalSum(); got != 2*100+1*250 {
		t.Errorf("total_sum = %d, want 450", got)
	}
}

func TestOrderService_AddItems_SameProductOverwrites(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "buyer@example.com", model.UserTypeBuyer)
	_, infos := seedShopWithListings(t, db, "shop@example.com", "Svyaznoy")

	for _, q := range []int{2, 5} {
		if _, err := svc.AddItems(ctx, buyer.ID, []dto.BasketItemRequest{{ProductInfo: infos[0].ID, Quantity: q}}); err != nil {
			t.Fatalf("加购失败: %v", err)
		}
	}

	basket, _ := svc.GetBasket(ctx, buyer.ID)
	if len(basket.Items) != 1 {
		t.Fatalf("同一报价重复加购应合并为一行, got %d", len(basket.Items))
	}
	if basket.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", basket.Items[0].Quantity)
	}
}

func TestOrderService_AddItems_UnknownProduct(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestOrderService(db)

	buyer := seedUser(t, db, "buyer@example.com", model.UserTypeBuyer)

	_, err := svc.AddItems(context.Background(), buyer.ID, []dto.BasketItemRequest{{ProductInfo: 9999, Quantity: 1}})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("err = %v, want %v", err, ErrProductNotFound)
	}
	basket, _ := svc.GetBasket(context.Background(), buyer.ID)
	if basket != nil {
		t.Error("校验失败时不应创建购物篮")
	}
}

func TestOrderService_UpdateItems(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "buyer@example.com", model.UserTypeBuyer)
	_, infos := seedShopWithListings(t, db, "shop@example.com", "Svyaznoy")

	if _, err := svc.UpdateItems(ctx, buyer.ID, []dto.BasketItemRequest{{ProductInfo: infos[0].ID, Quantity: 3}}); !errors.Is(err, ErrBasketNotFound) {
		t.Errorf("无购物篮改量 err = %v, want %v", err, ErrBasketNotFound)
	}

	svc.AddItems(ctx, buyer.ID, []dto.BasketItemRequest{{ProductInfo: infos[0].ID, Quantity: 2}})

	// 一行在篮子里、一行不在：只动在的那行
	updated, err := svc.UpdateItems(ctx, buyer.ID, []dto.BasketItemRequest{
		{ProductInfo: infos[0].ID, Quantity: 7},
		{ProductInfo: infos[1].ID, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("改量失败: %v", err)
	}
	if updated != 1 {
		t.Errorf("改动行数 = %d, want 1", updated)
	}

	basket, _ := svc.GetBasket(ctx, buyer.ID)
	if len(basket.Items) != 1 || basket.Items[0].Quantity != 7 {
		t.Errorf("改量结果不符: %+v", basket.Items)
	}
}

func TestOrderService_DeleteItems(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "buyer@example.com", model.UserTypeBuyer)
	_, infos := seedShopWithListings(t, db, "shop@example.com", "Svyaznoy")

	svc.AddItems(ctx, buyer.ID, []dto.BasketItemRequest{
		{ProductInfo: infos[0].ID, Quantity: 2},
		{ProductInfo: infos[1].ID, Quantity: 1},
	})
	basket, _ := svc.GetBasket(ctx, buyer.ID)

	deleted, err := svc.DeleteItems(ctx, buyer.ID, fmt.Sprintf("%d,99999", basket.Items[0].ID))
	if err != nil {
		t.Fatalf("删行失败: %v", err)
	}
	if deleted != 1 {
		t.Errorf("删除数 = %d, want 1", deleted)
	}

	basket, _ = svc.GetBasket(ctx, buyer.ID)
	if len(basket.Items) != 1 {
		t.Errorf("剩余行数 = %d, want 1", len(basket.Items))
	}
}

// ==================== 确认下单 ====================

func TestOrderService_Confirm(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "buyer@example.com", model.UserTypeBuyer)
	_, infos := seedShopWithListings(t, db, "shop@example.com", "Svyaznoy")
	contact := seedContact(t, db, buyer.ID)

	svc.AddItems(ctx, buyer.ID, []dto.BasketItemRequest{{ProductInfo: infos[0].ID, Quantity: 2}})
	basket, _ := svc.GetBasket(ctx, buyer.ID)

	if err := svc.Confirm(ctx, buyer.ID, basket.ID, contact.ID); err != nil {
		t.Fatalf("确认失败: %v", err)
	}

	// 确认后购物篮变订单，不再以篮子身份出现
	if b, _ := svc.GetBasket(ctx, buyer.ID); b != nil {
		t.Error("确认后不应再有购物篮")
	}

	orders, err := svc.ListOrders(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("查订单历史失败: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("订单数 = %d, want 1", len(orders))
	}
	if orders[0].Status != model.OrderStatusNew {
		t.Errorf("status = %s, want new", orders[0].Status)
	}
	if orders[0].Contact == nil || orders[0].Contact.ID != contact.ID {
		t.Error("订单应绑定确认时的联系方式")
	}
}

func TestOrderService_Confirm_Validation(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "buyer@example.com", model.UserTypeBuyer)
	mallory := seedUser(t, db, "mallory@example.com", model.UserTypeBuyer)
	_, infos := seedShopWithListings(t, db, "shop@example.com", "Svyaznoy")
	contact := seedContact(t, db, buyer.ID)
	foreignContact := seedContact(t, db, mallory.ID)

	svc.AddItems(ctx, buyer.ID, []dto.BasketItemRequest{{ProductInfo: infos[0].ID, Quantity: 1}})
	basket, _ := svc.GetBasket(ctx, buyer.ID)

	// 别人的购物篮
	if err := svc.Confirm(ctx, mallory.ID, basket.ID, foreignContact.ID); !errors.Is(err, ErrBasketNotFound) {
		t.Errorf("越权确认 err = %v, want %v", err, ErrBasketNotFound)
	}
	// 别人的联系方式
	if err := svc.Confirm(ctx, buyer.ID, basket.ID, foreignContact.ID); !errors.Is(err, ErrContactNotFound) {
		t.Errorf("越权联系方式 err = %v, want %v", err, ErrContactNotFound)
	}
	// 空购物篮
	db.Where("order_id = ?", basket.ID).Delete(&model.OrderItem{})
	if err := svc.Confirm(ctx, buyer.ID, basket.ID, contact.ID); !errors.Is(err, ErrBasketEmpty) {
		t.Errorf("空篮确认 err = %v, want %v", err, ErrBasketEmpty)
	}
}

func TestOrderService_Confirm_ShopClosed(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "buyer@example.com", model.UserTypeBuyer)
	shop, infos := seedShopWithListings(t, db, "shop@example.com", "Svyaznoy")
	contact := seedContact(t, db, buyer.ID)

	svc.AddItems(ctx, buyer.ID, []dto.BasketItemRequest{{ProductInfo: infos[0].ID, Quantity: 1}})
	basket, _ := svc.GetBasket(ctx, buyer.ID)

	// 店铺关门后不能下单
	db.Model(&model.Shop{}).Where("id = ?", shop.ID).Update("state", false)
	if err := svc.Confirm(ctx, buyer.ID, basket.ID, contact.ID); !errors.Is(err, ErrShopClosed) {
		t.Errorf("关店确认 err = %v, want %v", err, ErrShopClosed)
	}

	// 篮子原样保留
	b, _ := svc.GetBasket(ctx, buyer.ID)
	if b == nil || len(b.Items) != 1 {
		t.Error("确认失败后购物篮应原样保留")
	}
}

// ==================== 供应商订单视图 ====================

func TestOrderService_ListShopOrders(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestOrderService(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "buyer@example.com", model.UserTypeBuyer)
	shopA, infosA := seedShopWithListings(t, db, "a@example.com", "Shop A")
	shopB, _ := seedShopWithListings(t, db, "b@example.com", "Shop B")
	contact := seedContact(t, db, buyer.ID)

	svc.AddItems(ctx, buyer.ID, []dto.BasketItemRequest{{ProductInfo: infosA[0].ID, Quantity: 1}})
	basket, _ := svc.GetBasket(ctx, buyer.ID)
	if err := svc.Confirm(ctx, buyer.ID, basket.ID, contact.ID); err != nil {
		t.Fatalf("确认失败: %v", err)
	}

	ordersA, err := svc.ListShopOrders(ctx, shopA.ID)
	if err != nil {
		t.Fatalf("查店铺订单失败: %v", err)
	}
	if len(ordersA) != 1 {
		t.Errorf("店铺 A 订单数 = %d, want 1", len(ordersA))
	}

	// 没被下过单的店看不到任何订单
	ordersB, _ := svc.ListShopOrders(ctx, shopB.ID)
	if len(ordersB) != 0 {
		t.Errorf("店铺 B 订单数 = %d, want 0", len(ordersB))
	}
}
