package dto

import (
	"time"

	"github.com/samber/lo"

	"retail_orders_v1_202608/internal/model"
)

// ==================== 请求 ====================

// BasketItemRequest 加购/改量的一行
type BasketItemRequest struct {
	ProductInfo int64 `json:"product_info" binding:"required"`
	Quantity    int   `json:"quantity" binding:"required,gt=0"`
}

// BasketWriteRequest 购物篮批量写入
type BasketWriteRequest struct {
	Items []BasketItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderConfirmRequest 购物篮转订单
type OrderConfirmRequest struct {
	ID      int64 `json:"id" binding:"required"`
	Contact int64 `json:"contact" binding:"required"`
}

// ==================== 视图对象 ====================

// OrderItemVO 订单行投影，报价展开一层
type OrderItemVO struct {
	ID          int64         `json:"id"`
	ProductInfo ProductInfoVO `json:"product_info"`
	Quantity    int           `json:"quantity"`
}

// NewOrderItemVO 订单行投影
func NewOrderItemVO(item *model.OrderItem) OrderItemVO {
	vo := OrderItemVO{
		ID:       item.ID,
		Quantity: item.Quantity,
	}
	if item.ProductInfo != nil {
		vo.ProductInfo = NewProductInfoVO(item.ProductInfo)
	}
	return vo
}

// OrderVO 订单投影：行与联系方式展开一层，金额当场汇总
type OrderVO struct {
	ID       int64         `json:"id"`
	Status   string        `json:"status"`
	Dt       time.Time     `json:"dt"`
	Contact  *ContactVO    `json:"contact"`
	Items    []OrderItemVO `json:"ordered_items"`
	TotalSum int           `json:"total_sum"`
}

// NewOrderVO 订单投影
func NewOrderVO(order *model.Order) OrderVO {
	vo := OrderVO{
		ID:     order.ID,
		Status: order.Status,
		Dt:     order.CreatedAt,
		Items: lo.Map(order.Items, func(item model.OrderItem, _ int) OrderItemVO {
			return NewOrderItemVO(&item)
		}),
		TotalSum: order.TotalSum(),
	}
	if order.Contact != nil {
		contact := NewContactVO(order.Contact)
		vo.Contact = &contact
	}
	return vo
}

// NewOrderVOList 订单列表投影
func NewOrderVOList(orders []model.Order) []OrderVO {
	return lo.Map(orders, func(order model.Order, _ int) OrderVO {
		return NewOrderVO(&order)
	})
}
