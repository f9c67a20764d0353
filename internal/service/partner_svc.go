package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
)

// 价目表更新的业务校验错误
var (
	// ErrShopNotFound 供应商还没有店铺（从未导入过价目表）
	ErrShopNotFound = errors.New("Shop not found")
	// ErrShopNameTaken 价目表里的店铺名已被别的账号占用
	ErrShopNameTaken = errors.New("Shop name belongs to another account")
)

// ==================== PartnerService 供应商服务 ====================

// PartnerService 价目表导入与接单开关
type PartnerService struct {
	shops      repository.ShopRepository
	categories repository.CategoryRepository
	products   repository.ProductInfoRepository
	imports    repository.PriceListImportRepository
	client     *resty.Client
}

// NewPartnerService 创建供应商服务
func NewPartnerService(
	shops repository.ShopRepository,
	categories repository.CategoryRepository,
	products repository.ProductInfoRepository,
	imports repository.PriceListImportRepository,
	client *resty.Client,
) *PartnerService {
	return &PartnerService{
		shops:      shops,
		categories: categories,
		products:   products,
		imports:    imports,
		client:     client,
	}
}

// UpdatePriceList 按 URL 拉取 YAML 价目表并整体替换本店报价。
// 失败也落一条导入记录，report 里带原因
func (s *PartnerService) UpdatePriceList(ctx context.Context, user *model.User, url string) (*dto.ImportReport, error) {
	report, shopID, err := s.doUpdate(ctx, user, url)

	record := &model.PriceListImport{
		ShopID:    shopID,
		SourceURL: url,
		Status:    model.ImportStatusSuccess,
	}
	if err != nil {
		record.Status = model.ImportStatusFailed
		buf, _ := json.Marshal(map[string]string{"error": err.Error()})
		record.Report = datatypes.JSON(buf)
	} else {
		buf, _ := json.Marshal(report)
		record.Report = datatypes.JSON(buf)
	}
	if dbErr := s.imports.Create(ctx, record); dbErr != nil {
		log.Printf("[Import] 导入记录落库失败 shop=%d: %v", shopID, dbErr)
	}
	return report, err
}

func (s *PartnerService) doUpdate(ctx context.Context, user *model.User, url string) (*dto.ImportReport, int64, error) {
	// 1. 拉文件
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, 0, fmt.Errorf("price list download failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, 0, fmt.Errorf("price list download failed: status %d", resp.StatusCode())
	}

	// 2. 解析 YAML
	var doc dto.PriceListDoc
	if err := yaml.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, 0, fmt.Errorf("price list parse failed: %w", err)
	}
	if doc.Shop == "" {
		return nil, 0, errors.New("price list has no shop name")
	}

	// 3. 取/建店铺。店铺名是全局唯一的，不能抢别人的
	shop, err := s.shops.GetByName(ctx, doc.Shop)
	if err != nil {
		return nil, 0, err
	}
	if shop != nil && shop.UserID != user.ID {
		return nil, 0, ErrShopNameTaken
	}
	if shop == nil {
		shop, err = s.shops.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, 0, err
		}
		if shop == nil {
			shop = &model.Shop{Name: doc.Shop, UserID: user.ID, State: true}
			if err := s.shops.Create(ctx, shop); err != nil {
				return nil, 0, err
			}
		} else {
			// 价目表换了店名，跟着改
			shop.Name = doc.Shop
			if err := s.shops.Save(ctx, shop); err != nil {
				return nil, 0, err
			}
		}
	}

	// 4. 分类 upsert + 关联店铺，记一张 externalID -> categoryID 映射
	categoryIDs := make(map[int64]int64, len(doc.Categories))
	for _, c := range doc.Categories {
		category, err := s.categories.UpsertForShop(ctx, c.ID, c.Name, shop)
		if err != nil {
			return nil, shop.ID, err
		}
		categoryIDs[c.ID] = category.ID
	}

	// 5. 组装报价行（含抽象商品 get-or-create 和参数行）
	report := &dto.ImportReport{Categories: len(doc.Categories)}
	listings := make([]model.ProductInfo, 0, len(doc.Goods))
	for _, good := range doc.Goods {
		categoryID, ok := categoryIDs[good.Category]
		if !ok {
			return nil, shop.ID, fmt.Errorf("good %d references unknown category %d", good.ID, good.Category)
		}
		product, err := s.products.GetOrCreateProduct(ctx, good.Name, categoryID)
		if err != nil {
			return nil, shop.ID, err
		}

		info := model.ProductInfo{
			ProductID:  product.ID,
			ShopID:     shop.ID,
			ExternalID: good.ID,
			Model:      good.Model,
			Name:       good.Name,
			Quantity:   good.Quantity,
			Price:      good.Price,
			PriceRRC:   good.PriceRRC,
		}
		for name, value := range good.Parameters {
			info.Parameters = append(info.Parameters, model.ProductParameter{
				Name:  name,
				Value: fmt.Sprint(value),
			})
			report.Parameters++
		}
		listings = append(listings, info)
		report.Products++
	}

	// 6. 事务内整体替换
	if err := s.products.ReplaceShopListings(ctx, shop.ID, listings); err != nil {
		return nil, shop.ID, err
	}
	return report, shop.ID, nil
}

// GetState 本店当前状态
func (s *PartnerService) GetState(ctx context.Context, userID int64) (*model.Shop, error) {
	shop, err := s.shops.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

// SetState 接单开关："on" 开 / "off" 关
func (s *PartnerService) SetState(ctx context.Context, userID int64, state string) error {
	shop, err := s.shops.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if shop == nil {
		return ErrShopNotFound
	}
	return s.shops.UpdateState(ctx, userID, state == "on")
}
