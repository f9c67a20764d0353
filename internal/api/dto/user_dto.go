package dto

import (
	"github.com/samber/lo"

	"retail_orders_v1_202608/internal/model"
)

// ==================== 请求 ====================

// RegisterRequest 注册请求。必填校验在 service 里做，
// 缺字段要回固定文案而不是 validator 的拼接串
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Type      string `json:"type"` // buyer（默认）或 shop
}

// ConfirmRequest 邮箱确认请求
type ConfirmRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// DetailsUpdateRequest 账号详情部分更新，nil 字段不动。
// 邮箱与账号类型不在可改范围内
type DetailsUpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Company   *string `json:"company"`
	Position  *string `json:"position"`
	Password  *string `json:"password"`
}

// ==================== 视图对象 ====================

// UserVO 账号详情投影。不输出密码哈希和激活标记
type UserVO struct {
	ID        int64       `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Company   string      `json:"company"`
	Position  string      `json:"position"`
	Type      string      `json:"type"`
	Contacts  []ContactVO `json:"contacts"`
}

// NewUserVO 用户投影，联系方式展开一层
func NewUserVO(user *model.User) UserVO {
	return UserVO{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Company:   user.Company,
		Position:  user.Position,
		Type:      user.Type,
		Contacts: lo.Map(user.Contacts, func(c model.Contact, _ int) ContactVO {
			return NewContactVO(&c)
		}),
	}
}
