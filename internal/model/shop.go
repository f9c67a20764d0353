package model

// Shop 供应商店铺
type Shop struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null"`
	URL  string `gorm:"size:255"`

	// 店主，一个供应商账号只有一家店
	UserID int64 `gorm:"uniqueIndex"`
	User   *User `gorm:"foreignKey:UserID"`

	// 接单开关：关闭时店铺与其价目表对买家不可见，且不可下单
	State bool `gorm:"default:true"`

	Listings []ProductInfo `gorm:"foreignKey:ShopID"`
}

func (Shop) TableName() string {
	return "shops"
}
