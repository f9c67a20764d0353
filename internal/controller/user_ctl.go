package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/service"
)

// ==================== UserController 账号控制器 ====================

// UserController 注册 / 确认 / 登录 / 账号详情
type UserController struct {
	userSvc *service.UserService
}

// NewUserController 创建账号控制器
func NewUserController(userSvc *service.UserService) *UserController {
	return &UserController{userSvc: userSvc}
}

// Register 注册
// @Summary 注册账号
// @Description 创建未激活账号并发送邮箱确认令牌
// @Tags User (账号)
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 200 {object} map[string]interface{} "{"Status": true}"
// @Router /api/v1/user/register [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": service.ErrMissingArguments.Error()})
		return
	}

	if err := c.userSvc.Register(ctx.Request.Context(), &req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"Status": true})
}

// ConfirmEmail 邮箱确认
// @Summary 确认邮箱
// @Description 用邮件里的令牌激活账号
// @Tags User (账号)
// @Accept json
// @Produce json
// @Param request body dto.ConfirmRequest true "邮箱与令牌"
// @Success 200 {object} map[string]interface{} "{"Status": true}"
// @Router /api/v1/user/register/confirm [post]
func (c *UserController) ConfirmEmail(ctx *gin.Context) {
	var req dto.ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": service.ErrMissingArguments.Error()})
		return
	}

	if err := c.userSvc.Confirm(ctx.Request.Context(), req.Email, req.Token); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"Status": true})
}

// Login 登录
// @Summary 登录
// @Description 邮箱+密码换访问令牌
// @Tags User (账号)
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} map[string]interface{} "{"Status": true, "Token": "..."}"
// @Router /api/v1/user/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": service.ErrMissingArguments.Error()})
		return
	}

	token, err := c.userSvc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"Status": true, "Token": token})
}

// GetDetails 本人账号详情
// @Summary 账号详情
// @Tags User (账号)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserVO
// @Failure 403 {object} map[string]string "{"Error": "Log in required"}"
// @Router /api/v1/user/details [get]
func (c *UserController) GetDetails(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	detailed, err := c.userSvc.GetDetails(ctx.Request.Context(), user.ID)
	if err != nil || detailed == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"Error": "Failed to load account details"})
		return
	}

	ctx.JSON(http.StatusOK, dto.NewUserVO(detailed))
}

// UpdateDetails 部分更新本人账号
// @Summary 更新账号详情
// @Tags User (账号)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DetailsUpdateRequest true "要更新的字段"
// @Success 200 {object} map[string]interface{} "{"Status": true}"
// @Router /api/v1/user/details [post]
func (c *UserController) UpdateDetails(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.DetailsUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": service.ErrMissingArguments.Error()})
		return
	}

	if err := c.userSvc.UpdateDetails(ctx.Request.Context(), user.ID, &req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"Status": false, "Errors": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"Status": true})
}
