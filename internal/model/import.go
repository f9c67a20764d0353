package model

import (
	"gorm.io/datatypes"
)

// 价目表导入状态常量
const (
	ImportStatusSuccess = "success"
	ImportStatusFailed  = "failed"
)

// PriceListImport 价目表导入记录（审计用）
type PriceListImport struct {
	BaseModel
	ShopID    int64  `gorm:"index"`
	SourceURL string `gorm:"size:255"`
	Status    string `gorm:"size:15;index"`

	// 导入统计 {"categories": n, "products": n, "parameters": n} 或错误信息
	Report datatypes.JSON
}

func (PriceListImport) TableName() string {
	return "price_list_imports"
}
