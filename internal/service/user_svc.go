package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
	"retail_orders_v1_202608/pkg/utils"
)

// 业务校验类错误，按约定以 200 + {"Status": false, "Errors": ...} 返回
var (
	// ErrMissingArguments 固定文案，测试按原文断言
	ErrMissingArguments = errors.New("Not all required arguments are specified")
	// ErrEmailTaken 邮箱已被注册
	ErrEmailTaken = errors.New("User with this email is already registered")
	// ErrBadConfirmToken 确认令牌或邮箱不对，不区分是哪个错
	ErrBadConfirmToken = errors.New("Invalid token or email")
	// ErrLoginFailed 登录失败的唯一文案，不暴露邮箱/密码哪个错
	ErrLoginFailed = errors.New("Unable to authorize")
)

// ==================== UserService 账号服务 ====================

// UserService 注册、邮箱确认、登录、账号详情
type UserService struct {
	users  repository.UserRepository
	tokens repository.ConfirmTokenRepository
	mail   *MailService
	auth   *middleware.AuthManager
}

// NewUserService 创建账号服务
func NewUserService(
	users repository.UserRepository,
	tokens repository.ConfirmTokenRepository,
	mail *MailService,
	auth *middleware.AuthManager,
) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		mail:   mail,
		auth:   auth,
	}
}

// Register 注册：必填校验 -> 密码强度 -> 邮箱唯一 -> 建未激活账号并发确认令牌
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	// 1. 必填字段。缺了回固定文案
	if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.Password == "" || req.Company == "" || req.Position == "" {
		return ErrMissingArguments
	}

	// 2. 密码强度
	if err := utils.ValidatePassword(req.Password); err != nil {
		return err
	}

	// 3. 邮箱唯一
	taken, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	// 4. 账号类型默认 buyer，只认 shop 这一个显式值
	userType := model.UserTypeBuyer
	if req.Type == model.UserTypeShop {
		userType = model.UserTypeShop
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Email:     req.Email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
		Type:      userType,
		IsActive:  false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	// 5. 确认令牌 + 邮件。邮件失败不回滚注册，令牌还在库里可以重发
	token := &model.ConfirmEmailToken{
		UserID: user.ID,
		Key:    uuid.NewString(),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return err
	}
	if err := s.mail.SendConfirmToken(user.Email, token.Key); err != nil {
		log.Printf("[Mail] 确认邮件发送失败 user=%d: %v", user.ID, err)
	}
	return nil
}

// Confirm 邮箱确认：令牌匹配则激活账号并销毁令牌
func (s *UserService) Confirm(ctx context.Context, email, key string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrBadConfirmToken
	}

	token, err := s.tokens.Get(ctx, user.ID, key)
	if err != nil {
		return err
	}
	if token == nil {
		return ErrBadConfirmToken
	}

	if err := s.users.Activate(ctx, user.ID); err != nil {
		return err
	}
	return s.tokens.Delete(ctx, token.ID)
}

// Login 登录：比对哈希 + 激活标记，成功签发令牌
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil || !user.IsActive {
		return "", ErrLoginFailed
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrLoginFailed
	}
	return s.auth.GenerateToken(user)
}

// GetDetails 本人账号详情（含联系方式）
func (s *UserService) GetDetails(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.GetByIDWithContacts(ctx, userID)
}

// UpdateDetails 部分更新本人账号。密码过强度校验后重新哈希
func (s *UserService) UpdateDetails(ctx context.Context, userID int64, req *dto.DetailsUpdateRequest) error {
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Company != nil {
		fields["company"] = *req.Company
	}
	if req.Position != nil {
		fields["position"] = *req.Position
	}
	if req.Password != nil {
		if err := utils.ValidatePassword(*req.Password); err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		fields["password"] = string(hash)
	}
	if len(fields) == 0 {
		return nil
	}
	return s.users.UpdateFields(ctx, userID, fields)
}
