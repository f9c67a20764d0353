package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/service"
)

// ==================== OrderController 订单控制器 ====================

// OrderController 购物篮与订单
type OrderController struct {
	orderSvc *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(orderSvc *service.OrderService) *OrderController {
	return &OrderController{orderSvc: orderSvc}
}

// ==================== 购物篮 ====================

// GetBasket 查看购物篮
// @Summary 查看购物篮
// @Description 返回 0 或 1 个购物篮订单的数组，行展开到报价和参数
// @Tags Basket (购物篮)
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.OrderVO
// @Router /api/v1/basket [get]
func (c *OrderController) GetBasket(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	basket, err := c.orderSvc.GetBasket(ctx.Request.Context(), user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"Error": err.Error()})
		return
	}

	vos := []dto.OrderVO{}
	if basket != nil {
		vos = append(vos, dto.NewOrderVO(basket))
	}
	ctx.JSON(http.StatusOK, vos)
}

// AddToBasket 加购
// @Summary 加购
// @Tags Basket (购物篮)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BasketWriteRequest true "加购行"
// @Success 200 {object} map[string]interface{} "{"Status": true, "Objects created": 2}"
// @Router /api/v1/basket [post]
func (c *OrderController) AddToBasket(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.BasketWriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": service.ErrMissingArguments.Error()})
		return
	}

	created, err := c.orderSvc.AddItems(ctx.Request.Context(), user.ID, req.Items)
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"Status": true, "Objects created": created})
}

// UpdateBasket 改量
// @Summary 修改购物篮行数量
// @Tags Basket (购物篮)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BasketWriteRequest true "改量行"
// @Success 200 {object} map[string]interface{} "{"Status": true, "Objects updated": 2}"
// @Router /api/v1/basket [put]
func (c *OrderController) UpdateBasket(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.BasketWriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": service.ErrMissingArguments.Error()})
		return
	}

	updated, err := c.orderSvc.UpdateItems(ctx.Request.Context(), user.ID, req.Items)
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"Status": true, "Objects updated": updated})
}

// DeleteFromBasket 删行
// @Summary 删除购物篮行
// @Description items 为行 ID 的逗号分隔串
// @Tags Basket (购物篮)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ItemsDeleteRequest true "ID 串"
// @Success 200 {object} map[string]interface{} "{"Status": true, "Objects deleted": 1}"
// @Router /api/v1/basket [delete]
func (c *OrderController) DeleteFromBasket(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.ItemsDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": service.ErrBadItemsFormat.Error()})
		return
	}

	deleted, err := c.orderSvc.DeleteItems(ctx.Request.Context(), user.ID, req.Items)
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"Status": true, "Objects deleted": deleted})
}

// ==================== 订单 ====================

// ListOrders 本人订单历史
// @Summary 订单历史
// @Tags Order (订单)
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.OrderVO
// @Router /api/v1/order [get]
func (c *OrderController) ListOrders(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	orders, err := c.orderSvc.ListOrders(ctx.Request.Context(), user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"Error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, dto.NewOrderVOList(orders))
}

// ConfirmOrder 购物篮转订单
// @Summary 确认下单
// @Description 绑定收货联系方式并置状态 new；任一行店铺停止接单则整单失败
// @Tags Order (订单)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OrderConfirmRequest true "购物篮 ID 与联系方式 ID"
// @Success 200 {object} map[string]interface{} "{"Status": true}"
// @Router /api/v1/order [post]
func (c *OrderController) ConfirmOrder(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.OrderConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": service.ErrMissingArguments.Error()})
		return
	}

	if err := c.orderSvc.Confirm(ctx.Request.Context(), user.ID, req.ID, req.Contact); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"Status": true})
}
