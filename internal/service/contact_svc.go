package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
)

// ErrBadItemsFormat 批量删除的 ID 串格式不对
var ErrBadItemsFormat = errors.New("Invalid items format, expected comma-separated ids")

// parseItemIDs 解析 "1,2,3" 形式的 ID 串。
// 空串和非数字都算格式错误，空白容忍
func parseItemIDs(items string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(items, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, ErrBadItemsFormat
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, ErrBadItemsFormat
	}
	return ids, nil
}

// ==================== ContactService 联系方式服务 ====================

// ContactService 收货联系方式的增删查，一切按归属用户过滤
type ContactService struct {
	contacts repository.ContactRepository
}

// NewContactService 创建联系方式服务
func NewContactService(contacts repository.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

// Create 新增联系方式，归属调用者
func (s *ContactService) Create(ctx context.Context, userID int64, req *dto.ContactCreateRequest) error {
	if req.City == "" || req.Street == "" || req.Phone == "" {
		return ErrMissingArguments
	}
	return s.contacts.Create(ctx, &model.Contact{
		UserID: userID,
		City:   req.City,
		Street: req.Street,
		Phone:  req.Phone,
	})
}

// List 本人联系方式列表
func (s *ContactService) List(ctx context.Context, userID int64) ([]model.Contact, error) {
	return s.contacts.ListByUser(ctx, userID)
}

// Delete 按 ID 串批量删除，不属于本人的 ID 静默跳过，返回实际删除数
func (s *ContactService) Delete(ctx context.Context, userID int64, items string) (int64, error) {
	ids, err := parseItemIDs(items)
	if err != nil {
		return 0, err
	}
	return s.contacts.DeleteByIDsAndUser(ctx, ids, userID)
}
