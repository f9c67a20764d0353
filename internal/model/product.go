package model

// ==================== 目录实体 ====================

// Category 商品分类
type Category struct {
	BaseModel
	// 价目表文件里的分类 ID
	ExternalID int64  `gorm:"index"`
	Name       string `gorm:"size:80;not null"`

	Shops    []Shop    `gorm:"many2many:shop_categories;"`
	Products []Product `gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string {
	return "categories"
}

// Product 抽象商品，具体报价见 ProductInfo
type Product struct {
	BaseModel
	Name       string    `gorm:"size:150;not null"`
	CategoryID int64     `gorm:"index"`
	Category   *Category `gorm:"foreignKey:CategoryID"`
}

func (Product) TableName() string {
	return "products"
}

// ProductInfo 某店铺对某商品的报价（价目表行）
type ProductInfo struct {
	BaseModel
	ProductID int64    `gorm:"index;not null"`
	Product   *Product `gorm:"foreignKey:ProductID"`

	ShopID int64 `gorm:"index;uniqueIndex:idx_shop_external;not null"`
	Shop   *Shop `gorm:"foreignKey:ShopID"`

	// 价目表文件里的货品 ID，店铺内唯一
	ExternalID int64 `gorm:"uniqueIndex:idx_shop_external;not null"`

	Model    string `gorm:"size:100"`
	Name     string `gorm:"size:150"`
	Quantity int    `gorm:"default:0"`
	Price    int    `gorm:"default:0"`
	PriceRRC int    `gorm:"column:price_rrc;default:0"` // 建议零售价

	Parameters []ProductParameter `gorm:"foreignKey:ProductInfoID"`
}

func (ProductInfo) TableName() string {
	return "product_infos"
}

// ProductParameter 报价行的属性键值对
type ProductParameter struct {
	BaseModel
	ProductInfoID int64  `gorm:"index;not null"`
	Name          string `gorm:"size:80;not null"`
	Value         string `gorm:"size:150"`
}

func (ProductParameter) TableName() string {
	return "product_parameters"
}
