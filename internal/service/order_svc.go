package service

import (
	"context"
	"errors"
	"log"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
)

// 购物篮/下单的业务校验错误
var (
	// ErrProductNotFound 加购的报价不存在
	ErrProductNotFound = errors.New("Product info not found")
	// ErrBasketNotFound 订单不存在或不属于调用者
	ErrBasketNotFound = errors.New("Basket not found")
	// ErrBasketEmpty 空购物篮不能下单
	ErrBasketEmpty = errors.New("Basket is empty")
	// ErrContactNotFound 收货联系方式不存在或不属于调用者
	ErrContactNotFound = errors.New("Contact not found")
	// ErrShopClosed 下单时有店铺已停止接单
	ErrShopClosed = errors.New("One of the shops is not accepting orders")
)

// ==================== OrderService 订单服务 ====================

// OrderService 购物篮生命周期与订单查询
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductInfoRepository
	contacts repository.ContactRepository
	users    repository.UserRepository
	mail     *MailService
}

// NewOrderService 创建订单服务
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductInfoRepository,
	contacts repository.ContactRepository,
	users repository.UserRepository,
	mail *MailService,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		contacts: contacts,
		users:    users,
		mail:     mail,
	}
}

// GetBasket 本人购物篮，没有时返回 nil
func (s *OrderService) GetBasket(ctx context.Context, userID int64) (*model.Order, error) {
	return s.orders.GetBasket(ctx, userID)
}

// AddItems 批量加购。先校验每个报价都存在，再逐行落库，
// 同一报价重复加购按覆盖数量处理。返回写入行数
func (s *OrderService) AddItems(ctx context.Context, userID int64, items []dto.BasketItemRequest) (int, error) {
	for _, item := range items {
		info, err := s.products.GetByID(ctx, item.ProductInfo)
		if err != nil {
			return 0, err
		}
		if info == nil {
			return 0, ErrProductNotFound
		}
	}

	basket, err := s.orders.GetOrCreateBasket(ctx, userID)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, item := range items {
		err := s.orders.UpsertItem(ctx, &model.OrderItem{
			OrderID:       basket.ID,
			ProductInfoID: item.ProductInfo,
			Quantity:      item.Quantity,
		})
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// UpdateItems 批量改量，只动已在购物篮里的行。返回改动行数
func (s *OrderService) UpdateItems(ctx context.Context, userID int64, items []dto.BasketItemRequest) (int64, error) {
	basket, err := s.orders.GetBasket(ctx, userID)
	if err != nil {
		return 0, err
	}
	if basket == nil {
		return 0, ErrBasketNotFound
	}

	var updated int64
	for _, item := range items {
		n, err := s.orders.UpdateItemQuantity(ctx, basket.ID, item.ProductInfo, item.Quantity)
		if err != nil {
			return updated, err
		}
		updated += n
	}
	return updated, nil
}

// DeleteItems 按行 ID 串从购物篮删行，返回实际删除数
func (s *OrderService) DeleteItems(ctx context.Context, userID int64, items string) (int64, error) {
	ids, err := parseItemIDs(items)
	if err != nil {
		return 0, err
	}
	basket, err := s.orders.GetBasket(ctx, userID)
	if err != nil {
		return 0, err
	}
	if basket == nil {
		return 0, ErrBasketNotFound
	}
	return s.orders.DeleteItems(ctx, basket.ID, ids)
}

// Confirm 购物篮转订单。归属、非空、联系方式归属、
// 每行店铺仍在接单，全部通过才落状态
func (s *OrderService) Confirm(ctx context.Context, userID, orderID, contactID int64) error {
	order, err := s.orders.GetByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return err
	}
	if order == nil || order.Status != model.OrderStatusBasket {
		return ErrBasketNotFound
	}
	if len(order.Items) == 0 {
		return ErrBasketEmpty
	}

	contact, err := s.contacts.GetByIDAndUser(ctx, contactID, userID)
	if err != nil {
		return err
	}
	if contact == nil {
		return ErrContactNotFound
	}

	// 确认时点校验：每一行的店铺都必须还在接单
	for _, item := range order.Items {
		if item.ProductInfo == nil || item.ProductInfo.Shop == nil || !item.ProductInfo.Shop.State {
			return ErrShopClosed
		}
	}

	if err := s.orders.Confirm(ctx, order.ID, contact.ID); err != nil {
		return err
	}

	if user, err := s.users.GetByID(ctx, userID); err == nil && user != nil {
		if err := s.mail.SendOrderPlaced(user.Email, order.ID); err != nil {
			log.Printf("[Mail] 下单通知发送失败 order=%d: %v", order.ID, err)
		}
	}
	return nil
}

// ListOrders 本人订单历史，购物篮除外
func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListShopOrders 供应商订单视图：包含该店报价行的订单
func (s *OrderService) ListShopOrders(ctx context.Context, shopID int64) ([]model.Order, error) {
	return s.orders.ListByShop(ctx, shopID)
}
