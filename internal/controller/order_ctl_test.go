package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"retail_orders_v1_202608/internal/model"
)

// seedListingFor 给店铺塞一行报价
func seedListingFor(t *testing.T, env *testEnv, shop *model.Shop, externalID int64, name string, price int) *model.ProductInfo {
	t.Helper()
	category := &model.Category{ExternalID: 224, Name: "Smartphones"}
	env.db.Create(category)
	product := &model.Product{Name: name, CategoryID: category.ID}
	env.db.Create(product)
	info := &model.ProductInfo{
		ProductID:  product.ID,
		ShopID:     shop.ID,
		ExternalID: externalID,
		Name:       name,
		Quantity:   10,
		Price:      price,
		PriceRRC:   price + 100,
	}
	if err := env.db.Create(info).Error; err != nil {
		t.Fatalf("造报价失败: %v", err)
	}
	return info
}

func TestOrderController_Basket(t *testing.T) {
	env := setupTestEnv(t)
	env.registerAndLogin(t, "partner@example.com", "shop")
	shop := seedShopFor(t, env, "partner@example.com", "Svyaznoy")
	info := seedListingFor(t, env, shop, 4216292, "Smartphone Apple iPhone XS Max", 110000)

	token := env.registerAndLogin(t, "buyer@example.com", "")

	// 空篮子是空数组，不是 404
	w := env.request("GET", "/api/v1/basket", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var baskets []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &baskets)
	assert.Len(t, baskets, 0)

	// 加购
	w = env.request("POST", "/api/v1/basket", token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_info": info.ID, "quantity": 2},
		},
	})
	body := decodeBody(t, w)
	assert.Equal(t, true, body["Status"])
	assert.Equal(t, float64(1), body["Objects created"])

	// 篮子展开到报价和商品名，金额当场汇总
	w = env.request("GET", "/api/v1/basket", token, nil)
	json.Unmarshal(w.Body.Bytes(), &baskets)
	if !assert.Len(t, baskets, 1) {
		t.FailNow()
	}
	assert.Equal(t, "basket", baskets[0]["status"])
	assert.Equal(t, float64(220000), baskets[0]["total_sum"])

	items := baskets[0]["ordered_items"].([]interface{})
	if !assert.Len(t, items, 1) {
		t.FailNow()
	}
	line := items[0].(map[string]interface{})
	assert.Equal(t, float64(2), line["quantity"])
	productInfo := line["product_info"].(map[string]interface{})
	product := productInfo["product"].(map[string]interface{})
	assert.Equal(t, "Smartphone Apple iPhone XS Max", product["name"])
	assert.Equal(t, "Smartphones", product["category"])
}

func TestOrderController_AddToBasket_Validation(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerAndLogin(t, "buyer@example.com", "")

	// 数量必须为正，绑定失败回业务信封
	w := env.request("POST", "/api/v1/basket", token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_info": 1, "quantity": 0},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["Status"])

	// 不存在的报价
	w = env.request("POST", "/api/v1/basket", token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_info": 99999, "quantity": 1},
		},
	})
	body := decodeBody(t, w)
	assert.Equal(t, false, body["Status"])
	assert.Equal(t, "Product info not found", body["Errors"])
}
