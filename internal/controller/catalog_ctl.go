package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
	"retail_orders_v1_202608/internal/service"
)

// ==================== CatalogController 目录控制器 ====================

// CatalogController 分类 / 店铺 / 报价列表，全部只读
type CatalogController struct {
	catalogSvc *service.CatalogService
}

// NewCatalogController 创建目录控制器
func NewCatalogController(catalogSvc *service.CatalogService) *CatalogController {
	return &CatalogController{catalogSvc: catalogSvc}
}

// ListCategories 分类列表
// @Summary 分类列表
// @Tags Catalog (目录)
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryVO
// @Router /api/v1/categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.catalogSvc.ListCategories(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"Error": err.Error()})
		return
	}

	vos := lo.Map(categories, func(category model.Category, _ int) dto.CategoryVO {
		return dto.NewCategoryVO(&category)
	})
	ctx.JSON(http.StatusOK, vos)
}

// ListShops 店铺列表（只含接单中的）
// @Summary 店铺列表
// @Tags Catalog (目录)
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ShopVO
// @Router /api/v1/shops [get]
func (c *CatalogController) ListShops(ctx *gin.Context) {
	shops, err := c.catalogSvc.ListShops(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"Error": err.Error()})
		return
	}

	vos := lo.Map(shops, func(shop model.Shop, _ int) dto.ShopVO {
		return dto.NewShopVO(&shop)
	})
	ctx.JSON(http.StatusOK, vos)
}

// ListProducts 报价列表
// @Summary 报价列表
// @Description 按店铺/分类过滤，只返回接单中店铺的报价
// @Tags Catalog (目录)
// @Produce json
// @Security BearerAuth
// @Param shop_id query int false "店铺 ID"
// @Param category_id query int false "分类 ID"
// @Success 200 {array} dto.ProductInfoVO
// @Router /api/v1/products [get]
func (c *CatalogController) ListProducts(ctx *gin.Context) {
	var query dto.ProductListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	listings, err := c.catalogSvc.ListProducts(ctx.Request.Context(), repository.ProductFilter{
		ShopID:     query.ShopID,
		CategoryID: query.CategoryID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"Error": err.Error()})
		return
	}

	vos := lo.Map(listings, func(info model.ProductInfo, _ int) dto.ProductInfoVO {
		return dto.NewProductInfoVO(&info)
	})
	ctx.JSON(http.StatusOK, vos)
}
