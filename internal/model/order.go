package model

// ==================== 订单状态常量 ====================

const (
	OrderStatusBasket    = "basket"    // 购物篮（未确认）
	OrderStatusNew       = "new"       // 新订单（用户已确认）
	OrderStatusConfirmed = "confirmed" // 已确认
	OrderStatusAssembled = "assembled" // 已备货
	OrderStatusSent      = "sent"      // 已发出
	OrderStatusDelivered = "delivered" // 已送达
	OrderStatusCanceled  = "canceled"  // 已取消
)

// ==================== Order 订单主表 ====================

// Order 订单。status=basket 的记录就是用户的购物篮
type Order struct {
	BaseModel
	UserID int64  `gorm:"index;not null"`
	Status string `gorm:"size:15;index;not null;default:'basket'"`

	// 确认下单时绑定的收货联系方式，购物篮阶段为空
	ContactID *int64
	Contact   *Contact `gorm:"foreignKey:ContactID"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// TotalSum 订单金额：各行 数量 x 报价
func (o *Order) TotalSum() int {
	total := 0
	for _, item := range o.Items {
		if item.ProductInfo != nil {
			total += item.Quantity * item.ProductInfo.Price
		}
	}
	return total
}

// OrderItem 订单行，同一订单内一个报价只出现一行
type OrderItem struct {
	BaseModel
	OrderID       int64        `gorm:"index;uniqueIndex:idx_order_product;not null"`
	ProductInfoID int64        `gorm:"uniqueIndex:idx_order_product;not null"`
	ProductInfo   *ProductInfo `gorm:"foreignKey:ProductInfoID"`
	Quantity      int          `gorm:"not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
