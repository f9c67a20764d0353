package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/service"
)

// ==================== ContactController 联系方式控制器 ====================

// ContactController 收货联系方式的增删查
type ContactController struct {
	contactSvc *service.ContactService
}

// NewContactController 创建联系方式控制器
func NewContactController(contactSvc *service.ContactService) *ContactController {
	return &ContactController{contactSvc: contactSvc}
}

// Create 新增联系方式
// @Summary 新增联系方式
// @Tags Contact (联系方式)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ContactCreateRequest true "城市/街道/电话"
// @Success 200 {object} map[string]interface{} "{"Status": true}"
// @Router /api/v1/user/contact [post]
func (c *ContactController) Create(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.ContactCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": service.ErrMissingArguments.Error()})
		return
	}

	if err := c.contactSvc.Create(ctx.Request.Context(), user.ID, &req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"Status": true})
}

// List 本人联系方式列表
// @Summary 联系方式列表
// @Tags Contact (联系方式)
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ContactVO
// @Router /api/v1/user/contact [get]
func (c *ContactController) List(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	contacts, err := c.contactSvc.List(ctx.Request.Context(), user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"Error": err.Error()})
		return
	}

	vos := lo.Map(contacts, func(contact model.Contact, _ int) dto.ContactVO {
		return dto.NewContactVO(&contact)
	})
	ctx.JSON(http.StatusOK, vos)
}

// Delete 批量删除联系方式
// @Summary 删除联系方式
// @Description items 为逗号分隔的 ID 串，只删属于本人的行
// @Tags Contact (联系方式)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ItemsDeleteRequest true "ID 串，如 \"1,2,3\""
// @Success 200 {object} map[string]interface{} "{"Status": true, "Objects deleted": 1}"
// @Router /api/v1/user/contact [delete]
func (c *ContactController) Delete(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.ItemsDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": service.ErrBadItemsFormat.Error()})
		return
	}

	deleted, err := c.contactSvc.Delete(ctx.Request.Context(), user.ID, req.Items)
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"Status": true, "Objects deleted": deleted})
}
