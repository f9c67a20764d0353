package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

// setupSvcTestDB 内存 SQLite + 全量建表，service 层测试共用
func setupSvcTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.ConfirmEmailToken{},
		&model.Contact{},
		&model.Shop{},
		&model.Category{},
		&model.Product{},
		&model.ProductInfo{},
		&model.ProductParameter{},
		&model.Order{},
		&model.OrderItem{},
		&model.PriceListImport{},
	)
	if err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func newTestUserService(db *gorm.DB) (*UserService, *middleware.AuthManager) {
	users := repository.NewUserRepository(db)
	tokens := repository.NewConfirmTokenRepository(db)
	auth := middleware.NewAuthManager(middleware.DefaultTokenConfig(), users)
	mail := NewMailService(&MailConfig{}) // 无 SMTP 配置，只打日志
	return NewUserService(users, tokens, mail, auth), auth
}

func registerRequest(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     email,
		Password:  "123ABCabc%%",
		Company:   "Retail LLC",
		Position:  "manager",
	}
}

// ==================== 注册 ====================

func TestUserService_Register(t *testing.T) {
	db := setupSvcTestDB(t)
	svc, _ := newTestUserService(db)
	ctx := context.Background()

	if err := svc.Register(ctx, registerRequest("ivan@example.com")); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	var user model.User
	if err := db.Where("email = ?", "ivan@example.com").First(&user).Error; err != nil {
		t.Fatalf("查询用户失败: %v", err)
	}
	if user.IsActive {
		t.Error("新注册账号不应处于激活态")
	}
	if user.Type != model.UserTypeBuyer {
		t.Errorf("type = %s, want buyer", user.Type)
	}
	if user.Password == "123ABCabc%%" {
		t.Error("密码不应明文落库")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("123ABCabc%%")) != nil {
		t.Error("密码哈希与原文不匹配")
	}

	var count int64
	db.Model(&model.ConfirmEmailToken{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("确认令牌数 = %d, want 1", count)
	}
}

func TestUserService_Register_MissingArguments(t *testing.T) {
	db := setupSvcTestDB(t)
	svc, _ := newTestUserService(db)

	req := registerRequest("ivan@example.com")
	req.Company = ""
	err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrMissingArguments) {
		t.Errorf("err = %v, want %v", err, ErrMissingArguments)
	}
}

func TestUserService_Register_WeakPassword(t *testing.T) {
	db := setupSvcTestDB(t)
	svc, _ := newTestUserService(db)

	req := registerRequest("ivan@example.com")
	req.Password = "fg88jj"
	if err := svc.Register(context.Background(), req); err == nil {
		t.Error("弱密码应注册失败")
	}

	var count int64
	db.Model(&model.User{}).Count(&count)
	if count != 0 {
		t.Errorf("弱密码注册后用户数 = %d, want 0", count)
	}
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	db := setupSvcTestDB(t)
	svc, _ := newTestUserService(db)
	ctx := context.Background()

	if err := svc.Register(ctx, registerRequest("ivan@example.com")); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	err := svc.Register(ctx, registerRequest("ivan@example.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want %v", err, ErrEmailTaken)
	}
}

func TestUserService_Register_ShopType(t *testing.T) {
	db := setupSvcTestDB(t)
	svc, _ := newTestUserService(db)
	ctx := context.Background()

	req := registerRequest("shop@example.com")
	req.Type = model.UserTypeShop
	if err := svc.Register(ctx, req); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 未知类型一律回落到 buyer
	req2 := registerRequest("odd@example.com")
	req2.Type = "admin"
	if err := svc.Register(ctx, req2); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	var shop, odd model.User
	db.Where("email = ?", "shop@example.com").First(&shop)
	db.Where("email = ?", "odd@example.com").First(&odd)
	if shop.Type != model.UserTypeShop {
		t.Errorf("type = %s, want shop", shop.Type)
	}
	if odd.Type != model.UserTypeBuyer {
		t.Errorf("type = %s, want buyer", odd.Type)
	}
}

// ==================== 邮箱确认 ====================

func TestUserService_Confirm(t *testing.T) {
	db := setupSvcTestDB(t)
	svc, _ := newTestUserService(db)
	ctx := context.Background()

	if err := svc.Register(ctx, registerRequest("ivan@example.com")); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	var token model.ConfirmEmailToken
	db.First(&token)

	// 错 key 不激活
	if err := svc.Confirm(ctx, "ivan@example.com", "wrong-key"); !errors.Is(err, ErrBadConfirmToken) {
		t.Errorf("错误令牌 err = %v, want %v", err, ErrBadConfirmToken)
	}
	// 错邮箱也不激活
	if err := svc.Confirm(ctx, "other@example.com", token.Key); !errors.Is(err, ErrBadConfirmToken) {
		t.Errorf("错误邮箱 err = %v, want %v", err, ErrBadConfirmToken)
	}

	if err := svc.Confirm(ctx, "ivan@example.com", token.Key); err != nil {
		t.Fatalf("确认失败: %v", err)
	}

	var user model.User
	db.Where("email = ?", "ivan@example.com").First(&user)
	if !user.IsActive {
		t.Error("确认后账号应为激活态")
	}

	// 令牌一次性，用过即删
	var count int64
	db.Model(&model.ConfirmEmailToken{}).Count(&count)
	if count != 0 {
		t.Errorf("确认后令牌数 = %d, want 0", count)
	}
}

// ==================== 登录 ====================

func TestUserService_Login(t *testing.T) {
	db := setupSvcTestDB(t)
	svc, auth := newTestUserService(db)
	ctx := context.Background()

	if err := svc.Register(ctx, registerRequest("ivan@example.com")); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 未确认邮箱之前不能登录
	if _, err := svc.Login(ctx, "ivan@example.com", "123ABCabc%%"); !errors.Is(err, ErrLoginFailed) {
		t.Errorf("未激活登录 err = %v, want %v", err, ErrLoginFailed)
	}

	var token model.ConfirmEmailToken
	db.First(&token)
	if err := svc.Confirm(ctx, "ivan@example.com", token.Key); err != nil {
		t.Fatalf("确认失败: %v", err)
	}

	if _, err := svc.Login(ctx, "ivan@example.com", "wrong-password"); !errors.Is(err, ErrLoginFailed) {
		t.Errorf("错误密码登录 err = %v, want %v", err, ErrLoginFailed)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "123ABCabc%%"); !errors.Is(err, ErrLoginFailed) {
		t.Errorf("未知邮箱登录 err = %v, want %v", err, ErrLoginFailed)
	}

	issued, err := svc.Login(ctx, "ivan@example.com", "123ABCabc%%")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if issued == "" {
		t.Fatal("登录成功应签发令牌")
	}

	claims, err := auth.ParseToken(issued)
	if err != nil {
		t.Fatalf("令牌解析失败: %v", err)
	}
	if claims.Email != "ivan@example.com" {
		t.Errorf("claims.Email = %s, want ivan@example.com", claims.Email)
	}
}

// ==================== 账号详情 ====================

func TestUserService_UpdateDetails(t *testing.T) {
	db := setupSvcTestDB(t)
	svc, _ := newTestUserService(db)
	ctx := context.Background()

	if err := svc.Register(ctx, registerRequest("ivan@example.com")); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	var user model.User
	db.Where("email = ?", "ivan@example.com").First(&user)
	db.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", true)

	company := "New Company"
	if err := svc.UpdateDetails(ctx, user.ID, &dto.DetailsUpdateRequest{Company: &company}); err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	updated, err := svc.GetDetails(ctx, user.ID)
	if err != nil {
		t.Fatalf("查询详情失败: %v", err)
	}
	if updated.Company != "New Company" {
		t.Errorf("company = %s, want New Company", updated.Company)
	}
	// 没传的字段不动
	if updated.FirstName != "Ivan" {
		t.Errorf("first_name = %s, want Ivan", updated.FirstName)
	}

	// 改密码要过强度校验
	weak := "fg88jj"
	if err := svc.UpdateDetails(ctx, user.ID, &dto.DetailsUpdateRequest{Password: &weak}); err == nil {
		t.Error("弱密码更新应失败")
	}

	strong := "NewPass123%%"
	if err := svc.UpdateDetails(ctx, user.ID, &dto.DetailsUpdateRequest{Password: &strong}); err != nil {
		t.Fatalf("改密码失败: %v", err)
	}
	if _, err := svc.Login(ctx, "ivan@example.com", "123ABCabc%%"); !errors.Is(err, ErrLoginFailed) {
		t.Error("旧密码改后不应再可登录")
	}
	if _, err := svc.Login(ctx, "ivan@example.com", strong); err != nil {
		t.Errorf("新密码登录失败: %v", err)
	}
}
