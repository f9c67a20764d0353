package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/service"
)

// ==================== PartnerController 供应商控制器 ====================

// PartnerController 价目表更新、接单开关、供应商订单。
// 路由层已挂 RequirePartner，进到这里的一定是 shop 账号
type PartnerController struct {
	partnerSvc *service.PartnerService
	orderSvc   *service.OrderService
}

// NewPartnerController 创建供应商控制器
func NewPartnerController(partnerSvc *service.PartnerService, orderSvc *service.OrderService) *PartnerController {
	return &PartnerController{partnerSvc: partnerSvc, orderSvc: orderSvc}
}

// UpdatePriceList 价目表更新
// @Summary 更新价目表
// @Description 按 URL 拉取 YAML 价目表，整体替换本店报价
// @Tags Partner (供应商)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PartnerUpdateRequest true "价目表 URL"
// @Success 200 {object} map[string]interface{} "{"Status": true, "Report": {...}}"
// @Failure 403 {object} map[string]string "{"Error": "Only for shops"}"
// @Router /api/v1/partner/update [post]
func (c *PartnerController) UpdatePriceList(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.PartnerUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": service.ErrMissingArguments.Error()})
		return
	}

	report, err := c.partnerSvc.UpdatePriceList(ctx.Request.Context(), user, req.URL)
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"Status": true, "Report": report})
}

// GetState 本店状态
// @Summary 查看接单状态
// @Tags Partner (供应商)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ShopVO
// @Router /api/v1/partner/state [get]
func (c *PartnerController) GetState(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	shop, err := c.partnerSvc.GetState(ctx.Request.Context(), user.ID)
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, dto.NewShopVO(shop))
}

// SetState 接单开关
// @Summary 切换接单状态
// @Tags Partner (供应商)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PartnerStateRequest true "on / off"
// @Success 200 {object} map[string]interface{} "{"Status": true}"
// @Router /api/v1/partner/state [post]
func (c *PartnerController) SetState(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.PartnerStateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": service.ErrMissingArguments.Error()})
		return
	}

	if err := c.partnerSvc.SetState(ctx.Request.Context(), user.ID, req.State); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"Status": true})
}

// ListOrders 供应商订单列表
// @Summary 含本店报价行的订单
// @Tags Partner (供应商)
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.OrderVO
// @Router /api/v1/partner/orders [get]
func (c *PartnerController) ListOrders(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	shop, err := c.partnerSvc.GetState(ctx.Request.Context(), user.ID)
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	orders, err := c.orderSvc.ListShopOrders(ctx.Request.Context(), shop.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"Error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, dto.NewOrderVOList(orders))
}
