package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/retailnet/orders-api/app/configs"
	"github.com/retailnet/orders-api/app/models"
	"github.com/retailnet/orders-api/app/models/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gorm.DB, http.Handler) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migrations.AutoMigrate(db))

	return db, NewRouter(db, configs.ENV{})
}

func seedBuyerWithToken(t *testing.T, db *gorm.DB) (*models.User, string) {
	t.Helper()
	user := &models.User{Email: "buyer@example.com", Password: "x", Type: models.UserTypeBuyer, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	token := &models.APIToken{Key: "buyer-token", UserID: user.ID}
	require.NoError(t, db.Create(token).Error)
	return user, token.Key
}

func TestPublicCatalogEndpoints(t *testing.T) {
	db, router := setupRouter(t)

	shop := &models.Shop{Name: "Acme", State: true}
	require.NoError(t, db.Create(shop).Error)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/shops", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status bool
		Shops  []struct {
			Name  string `json:"name"`
			State bool   `json:"state"`
		}
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	require.Len(t, resp.Shops, 1)
	assert.Equal(t, "Acme", resp.Shops[0].Name)
}

func TestPrivateEndpointsRequireToken(t *testing.T) {
	_, router := setupRouter(t)

	for _, path := range []string{"/basket", "/order", "/partner/orders"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/basket", nil)
	req.Header.Set("Authorization", "Token nope")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBasketRoundTrip(t *testing.T) {
	db, router := setupRouter(t)
	_, key := seedBuyerWithToken(t, db)

	// a listing to buy
	category := &models.Category{Name: "Widgets"}
	require.NoError(t, db.Create(category).Error)
	shop := &models.Shop{Name: "Acme", State: true}
	require.NoError(t, db.Create(shop).Error)
	product := &models.Product{Name: "Widget One", CategoryID: category.ID}
	require.NoError(t, db.Create(product).Error)
	info := &models.ProductInfo{
		Name: "W1", Quantity: 5,
		Price: decimal.NewFromInt(100), PriceRRC: decimal.NewFromInt(120),
		ProductID: product.ID, ShopID: shop.ID,
	}
	require.NoError(t, db.Create(info).Error)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Authorization", "Token "+key)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := do("POST", "/basket", `{"items": [{"product_info_id": "`+info.ID+`", "quantity": 2}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Status bool
		Items  []struct {
			Quantity int    `json:"quantity"`
			Model    string `json:"model"`
		}
		Total string
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, "W1", resp.Items[0].Model)
	assert.Equal(t, "200", resp.Total)

	// bad quantity comes back as a field validation error
	rec = do("POST", "/basket", `{"items": [{"product_info_id": "`+info.ID+`", "quantity": 0}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do("DELETE", "/basket", `{"items": ["`+info.ID+`"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do("GET", "/basket", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestPartnerUpdateRequiresShopAccount(t *testing.T) {
	db, router := setupRouter(t)
	_, key := seedBuyerWithToken(t, db)

	req := httptest.NewRequest("POST", "/partner/update", strings.NewReader(`{"shop": "Acme", "categories": [{"id": 1, "name": "Widgets"}], "goods": []}`))
	req.Header.Set("Authorization", "Token "+key)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var resp struct {
		Status bool
		Error  string
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Status)
	assert.Equal(t, "authorization_error", resp.Error)
}
