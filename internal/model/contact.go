package model

// Contact 用户收货联系方式
type Contact struct {
	BaseModel
	UserID int64  `gorm:"index;not null"` // 归属用户，所有读写都按此过滤
	City   string `gorm:"size:50;not null"`
	Street string `gorm:"size:100;not null"`
	Phone  string `gorm:"size:20;not null"`
}

func (Contact) TableName() string {
	return "contacts"
}
