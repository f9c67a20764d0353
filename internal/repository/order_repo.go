package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"retail_orders_v1_202608/internal/model"
)

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 订单与购物篮仓库接口
type OrderRepository interface {
	// 购物篮
	GetBasket(ctx context.Context, userID int64) (*model.Order, error)
	GetOrCreateBasket(ctx context.Context, userID int64) (*model.Order, error)
	UpsertItem(ctx context.Context, item *model.OrderItem) error
	UpdateItemQuantity(ctx context.Context, orderID, productInfoID int64, quantity int) (int64, error)
	DeleteItems(ctx context.Context, orderID int64, itemIDs []int64) (int64, error)

	// 订单
	GetByIDAndUser(ctx context.Context, id, userID int64) (*model.Order, error)
	Confirm(ctx context.Context, orderID, contactID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListByShop(ctx context.Context, shopID int64) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// 购物篮和订单投影都要展开到同样深度
func (r *orderRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Preload("Items.ProductInfo.Product.Category").
		Preload("Items.ProductInfo.Shop").
		Preload("Items.ProductInfo.Parameters").
		Preload("Contact")
}

// GetBasket 取用户购物篮，没有时返回 nil
func (r *orderRepository) GetBasket(ctx context.Context, userID int64) (*model.Order, error) {
	var order model.Order
	err := r.withRelations(ctx).
		Where("user_id = ? AND status = ?", userID, model.OrderStatusBasket).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

// GetOrCreateBasket 取或建用户购物篮
func (r *orderRepository) GetOrCreateBasket(ctx context.Context, userID int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where(model.Order{UserID: userID, Status: model.OrderStatusBasket}).
		FirstOrCreate(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpsertItem 加购：同一报价重复加购时覆盖数量
func (r *orderRepository) UpsertItem(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "product_info_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(item).Error
}

// UpdateItemQuantity 改某行数量，返回受影响行数
func (r *orderRepository) UpdateItemQuantity(ctx context.Context, orderID, productInfoID int64, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("order_id = ? AND product_info_id = ?", orderID, productInfoID).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

// DeleteItems 按行 ID 删购物篮行，只动本订单的行，返回实际删除数
func (r *orderRepository) DeleteItems(ctx context.Context, orderID int64, itemIDs []int64) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("order_id = ? AND id IN ?", orderID, itemIDs).
		Delete(&model.OrderItem{})
	return result.RowsAffected, result.Error
}

// GetByIDAndUser 按 ID 取本人订单（含关联），不存在或非本人时返回 nil
func (r *orderRepository) GetByIDAndUser(ctx context.Context, id, userID int64) (*model.Order, error) {
	var order model.Order
	err := r.withRelations(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

// Confirm 购物篮转正式订单：置状态 new 并绑定收货联系方式
func (r *orderRepository) Confirm(ctx context.Context, orderID, contactID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusNew,
			"contact_id": contactID,
		}).Error
}

// ListByUser 用户订单历史，购物篮除外
func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.withRelations(ctx).
		Where("user_id = ? AND status <> ?", userID, model.OrderStatusBasket).
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

// ListByShop 供应商视角：包含本店报价行的订单，购物篮除外
func (r *orderRepository) ListByShop(ctx context.Context, shopID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.withRelations(ctx).
		Where("orders.status <> ?", model.OrderStatusBasket).
		Where("orders.id IN (?)", r.db.
			Model(&model.OrderItem{}).
			Select("order_items.order_id").
			Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
			Where("product_infos.shop_id = ?", shopID)).
		Order("orders.id DESC").
		Find(&orders).Error
	return orders, err
}
