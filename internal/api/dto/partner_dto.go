package dto

// ==================== 请求 ====================

// PartnerUpdateRequest 价目表更新：后端按 URL 拉取 YAML 文件
type PartnerUpdateRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// PartnerStateRequest 接单开关
type PartnerStateRequest struct {
	State string `json:"state" binding:"required,oneof=on off"`
}

// ==================== 价目表文件格式 ====================

// PriceListDoc 价目表 YAML 根结构
//
//	shop: Связной
//	categories:
//	  - id: 224
//	    name: Смартфоны
//	goods:
//	  - id: 4216292
//	    category: 224
//	    model: apple/iphone/xs-max
//	    name: Смартфон Apple iPhone XS Max 512GB (золотистый)
//	    price: 110000
//	    price_rrc: 116990
//	    quantity: 14
//	    parameters:
//	      "Диагональ (дюйм)": 6.5
type PriceListDoc struct {
	Shop       string              `yaml:"shop"`
	Categories []PriceListCategory `yaml:"categories"`
	Goods      []PriceListGood     `yaml:"goods"`
}

// PriceListCategory 价目表分类行
type PriceListCategory struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

// PriceListGood 价目表货品行
type PriceListGood struct {
	ID         int64             `yaml:"id"`
	Category   int64             `yaml:"category"`
	Model      string            `yaml:"model"`
	Name       string            `yaml:"name"`
	Price      int               `yaml:"price"`
	PriceRRC   int               `yaml:"price_rrc"`
	Quantity   int               `yaml:"quantity"`
	// 属性值在文件里可能是数字或字符串，入库前统一转成字符串
	Parameters map[string]interface{} `yaml:"parameters"`
}

// ImportReport 导入统计，作为 JSON 存进导入记录
type ImportReport struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Parameters int `json:"parameters"`
}
