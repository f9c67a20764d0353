package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/model"
)

// ==================== ContactRepository 联系方式仓库 ====================

// ContactRepository 联系方式仓库接口。
// 所有查询都带 userID，越权访问在仓库层就被挡住
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	ListByUser(ctx context.Context, userID int64) ([]model.Contact, error)
	GetByIDAndUser(ctx context.Context, id, userID int64) (*model.Contact, error)
	DeleteByIDsAndUser(ctx context.Context, ids []int64, userID int64) (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建联系方式仓库
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) ListByUser(ctx context.Context, userID int64) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&contacts).Error
	return contacts, err
}

// GetByIDAndUser 按 ID 取本人的联系方式，不存在或非本人时返回 nil
func (r *contactRepository) GetByIDAndUser(ctx context.Context, id, userID int64) (*model.Contact, error) {
	var contact model.Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &contact, err
}

// DeleteByIDsAndUser 只删除属于本人的行，返回实际删除数
func (r *contactRepository) DeleteByIDsAndUser(ctx context.Context, ids []int64, userID int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Delete(&model.Contact{})
	return result.RowsAffected, result.Error
}
