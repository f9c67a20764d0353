package dto

import (
	"retail_orders_v1_202608/internal/model"
)

// ==================== 请求 ====================

// ContactCreateRequest 新增联系方式。归属用户取自令牌，不收也不回
type ContactCreateRequest struct {
	City   string `json:"city"`
	Street string `json:"street"`
	Phone  string `json:"phone"`
}

// ItemsDeleteRequest 按 ID 批量删除，items 为逗号分隔的 ID 串，如 "1,2,3"
type ItemsDeleteRequest struct {
	Items string `json:"items" binding:"required"`
}

// ==================== 视图对象 ====================

// ContactVO 联系方式投影，user_id 只进不出
type ContactVO struct {
	ID     int64  `json:"id"`
	City   string `json:"city"`
	Street string `json:"street"`
	Phone  string `json:"phone"`
}

// NewContactVO 联系方式投影
func NewContactVO(contact *model.Contact) ContactVO {
	return ContactVO{
		ID:     contact.ID,
		City:   contact.City,
		Street: contact.Street,
		Phone:  contact.Phone,
	}
}
