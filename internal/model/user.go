package model

// 用户类型常量
const (
	UserTypeBuyer = "buyer" // 采购方（默认）
	UserTypeShop  = "shop"  // 供应商，拥有店铺和价目表
)

// User 账号（采购方或供应商）
type User struct {
	BaseModel
	// 邮箱即登录身份，全局唯一
	Email    string `gorm:"size:254;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null"` // bcrypt 哈希

	FirstName string `gorm:"size:100"`
	LastName  string `gorm:"size:150"`
	Company   string `gorm:"size:100"`
	Position  string `gorm:"size:100"`

	// buyer / shop，注册后不可改
	Type string `gorm:"size:10;not null;default:'buyer'"`

	// 邮箱确认之前账号不可登录
	IsActive bool `gorm:"default:false"`

	// ==============================
	// 关联关系
	// ==============================

	Contacts []Contact `gorm:"foreignKey:UserID"`
	Shop     *Shop     `gorm:"foreignKey:UserID"`
	Orders   []Order   `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// IsPartner 是否为供应商账号
func (u *User) IsPartner() bool {
	return u.Type == UserTypeShop
}

// ConfirmEmailToken 注册确认令牌，确认成功后删除
type ConfirmEmailToken struct {
	BaseModel
	UserID int64  `gorm:"index;not null"`
	Key    string `gorm:"size:64;uniqueIndex;not null"`
}

func (ConfirmEmailToken) TableName() string {
	return "confirm_email_tokens"
}
