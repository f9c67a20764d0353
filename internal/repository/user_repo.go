package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/model"
)

// ==================== UserRepository 用户仓库 ====================

// UserRepository 用户仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByIDWithContacts(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Activate(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID 根据 ID 获取用户，不存在时返回 nil
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// GetByIDWithContacts 获取用户及其联系方式（账号详情投影用）
func (r *userRepository) GetByIDWithContacts(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Contacts").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// GetByEmail 根据邮箱获取用户，不存在时返回 nil
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// UpdateFields 部分更新
func (r *userRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Activate 邮箱确认通过后激活账号
func (r *userRepository) Activate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("is_active", true).Error
}

// ExistsByEmail 检查邮箱是否已被注册
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// ==================== ConfirmTokenRepository 确认令牌仓库 ====================

// ConfirmTokenRepository 邮箱确认令牌仓库接口
type ConfirmTokenRepository interface {
	Create(ctx context.Context, token *model.ConfirmEmailToken) error
	Get(ctx context.Context, userID int64, key string) (*model.ConfirmEmailToken, error)
	Delete(ctx context.Context, id int64) error
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type confirmTokenRepository struct {
	db *gorm.DB
}

// NewConfirmTokenRepository 创建确认令牌仓库
func NewConfirmTokenRepository(db *gorm.DB) ConfirmTokenRepository {
	return &confirmTokenRepository{db: db}
}

func (r *confirmTokenRepository) Create(ctx context.Context, token *model.ConfirmEmailToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// Get 按用户和令牌值取记录，不存在时返回 nil
func (r *confirmTokenRepository) Get(ctx context.Context, userID int64, key string) (*model.ConfirmEmailToken, error) {
	var token model.ConfirmEmailToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, key).
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &token, err
}

func (r *confirmTokenRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ConfirmEmailToken{}, id).Error
}

// DeleteCreatedBefore 清理过期未用的令牌，返回删除行数
func (r *confirmTokenRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.ConfirmEmailToken{})
	return result.RowsAffected, result.Error
}
