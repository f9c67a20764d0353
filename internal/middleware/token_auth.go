package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
)

// ==================== 配置 ====================

// TokenConfig 令牌配置
type TokenConfig struct {
	SecretKey string        // 签名密钥
	TokenTTL  time.Duration // 令牌有效期
	Issuer    string        // 签发者
}

// DefaultTokenConfig 默认配置
func DefaultTokenConfig() *TokenConfig {
	return &TokenConfig{
		SecretKey: "retail-orders-secret-key-change-in-production",
		TokenTTL:  7 * 24 * time.Hour,
		Issuer:    "retail-orders",
	}
}

// UserClaims 令牌声明
type UserClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ==================== 请求角色 ====================

// 每个请求从令牌解析出三种互斥角色之一：
// 匿名 / 已认证用户 / 供应商（type=shop 的用户）
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RolePartner   Role = "partner"
)

// Context Keys
const (
	ContextKeyUser = "current_user"
	ContextKeyRole = "current_role"
)

// ==================== AuthManager ====================

// AuthManager 签发并校验令牌。不存全局状态，配置和用户仓库
// 都在启动时注入；每个请求都会回查 users 表，封号立即生效
type AuthManager struct {
	cfg   *TokenConfig
	users repository.UserRepository
}

// NewAuthManager 创建认证管理器
func NewAuthManager(cfg *TokenConfig, users repository.UserRepository) *AuthManager {
	if cfg == nil {
		cfg = DefaultTokenConfig()
	}
	return &AuthManager{cfg: cfg, users: users}
}

// GenerateToken 登录成功后签发令牌。对客户端而言是不透明串
func (m *AuthManager) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.SecretKey))
}

// ParseToken 解析令牌
func (m *AuthManager) ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(m.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ==================== Gin 中间件 ====================

// Identify 解析请求角色但从不拒绝。
// 令牌缺失/无效/用户不存在/未激活 一律落到匿名
func (m *AuthManager) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyRole, RoleAnonymous)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := m.ParseToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		// 每次都回查数据库，拿最新的激活状态和账号类型
		user, err := m.users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || user == nil || !user.IsActive {
			c.Next()
			return
		}

		c.Set(ContextKeyUser, user)
		if user.IsPartner() {
			c.Set(ContextKeyRole, RolePartner)
		} else {
			c.Set(ContextKeyRole, RoleUser)
		}

		c.Next()
	}
}

// RequireUser 登录门槛：匿名请求 403
func (m *AuthManager) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) == RoleAnonymous {
			c.JSON(http.StatusForbidden, gin.H{"Error": "Log in required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePartner 供应商门槛：非 shop 类型账号 403
func (m *AuthManager) RequirePartner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != RolePartner {
			c.JSON(http.StatusForbidden, gin.H{"Error": "Only for shops"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ==================== 辅助函数 ====================

// GetRole 读取本请求解析出的角色
func GetRole(c *gin.Context) Role {
	if role, exists := c.Get(ContextKeyRole); exists {
		return role.(Role)
	}
	return RoleAnonymous
}

// CurrentUser 读取本请求的用户，匿名时返回 nil
func CurrentUser(c *gin.Context) *model.User {
	if user, exists := c.Get(ContextKeyUser); exists {
		return user.(*model.User)
	}
	return nil
}
