package dto

import (
	"github.com/samber/lo"

	"retail_orders_v1_202608/internal/model"
)

// ==================== 请求 ====================

// ProductListQuery 报价列表过滤参数
type ProductListQuery struct {
	ShopID     int64 `form:"shop_id"`
	CategoryID int64 `form:"category_id"`
}

// ==================== 视图对象 ====================

// CategoryVO 分类投影
type CategoryVO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewCategoryVO 分类投影
func NewCategoryVO(category *model.Category) CategoryVO {
	return CategoryVO{ID: category.ID, Name: category.Name}
}

// ShopVO 店铺投影
type ShopVO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	State bool   `json:"state"`
}

// NewShopVO 店铺投影
func NewShopVO(shop *model.Shop) ShopVO {
	return ShopVO{ID: shop.ID, Name: shop.Name, State: shop.State}
}

// ProductVO 抽象商品投影。从报价引用时分类折叠成名称，不再往下展开
type ProductVO struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ProductParameterVO 报价属性投影
type ProductParameterVO struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
}

// ProductInfoVO 报价投影：商品/店铺取缩减形态，参数展开一层
type ProductInfoVO struct {
	ID         int64                `json:"id"`
	Model      string               `json:"model"`
	Product    ProductVO            `json:"product"`
	Shop       string               `json:"shop"`
	Name       string               `json:"name"`
	Quantity   int                  `json:"quantity"`
	Price      int                  `json:"price"`
	PriceRRC   int                  `json:"price_rrc"`
	Parameters []ProductParameterVO `json:"product_parameters"`
}

// NewProductInfoVO 报价投影
func NewProductInfoVO(info *model.ProductInfo) ProductInfoVO {
	vo := ProductInfoVO{
		ID:       info.ID,
		Model:    info.Model,
		Name:     info.Name,
		Quantity: info.Quantity,
		Price:    info.Price,
		PriceRRC: info.PriceRRC,
		Parameters: lo.Map(info.Parameters, func(p model.ProductParameter, _ int) ProductParameterVO {
			return ProductParameterVO{Parameter: p.Name, Value: p.Value}
		}),
	}
	if info.Product != nil {
		vo.Product.Name = info.Product.Name
		if info.Product.Category != nil {
			vo.Product.Category = info.Product.Category.Name
		}
	}
	if info.Shop != nil {
		vo.Shop = info.Shop.Name
	}
	return vo
}
