package services

import (
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/retailnet/orders-api/app/models"
	"github.com/retailnet/orders-api/app/models/migrations"
	"github.com/retailnet/orders-api/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB gives every test a private in-memory database with the real
// schema. TranslateError matches the production MySQL config so the
// duplicate-key merge path behaves identically.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection, or every pooled conn gets its own empty :memory: db
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

// fakeNotifier records notifications synchronously.
type fakeNotifier struct {
	mu       sync.Mutex
	placed   []string
	imported []string
}

func (f *fakeNotifier) OrderPlaced(user *models.User, order *models.Order, total decimal.Decimal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.placed = append(f.placed, order.ID)
}

func (f *fakeNotifier) CatalogImported(user *models.User, result *ImportResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imported = append(f.imported, result.Shop)
}

type testEnv struct {
	db       *gorm.DB
	notifier *fakeNotifier
	importer *ImporterService
	basket   *BasketService
	orders   *OrderService

	shopRepo        repositories.ShopRepository
	productInfoRepo repositories.ProductInfoRepository
	contactRepo     repositories.ContactRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := openTestDB(t)

	userRepo := repositories.NewUserRepository(db)
	shopRepo := repositories.NewShopRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	productInfoRepo := repositories.NewProductInfoRepository(db)
	parameterRepo := repositories.NewParameterRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)

	notifier := &fakeNotifier{}

	return &testEnv{
		db:              db,
		notifier:        notifier,
		importer:        NewImporterService(db, userRepo, shopRepo, categoryRepo, productRepo, productInfoRepo, parameterRepo, notifier),
		basket:          NewBasketService(db, orderRepo, orderItemRepo, productInfoRepo),
		orders:          NewOrderService(db, orderRepo, orderItemRepo, contactRepo, shopRepo, userRepo, notifier),
		shopRepo:        shopRepo,
		productInfoRepo: productInfoRepo,
		contactRepo:     contactRepo,
	}
}

func (e *testEnv) createUser(t *testing.T, email, userType string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "x", Type: userType, IsActive: true}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createContact(t *testing.T, userID string) *models.Contact {
	t.Helper()
	contact := &models.Contact{UserID: userID, City: "Moscow", Street: "Tverskaya", House: "1", Phone: "+70000000000"}
	require.NoError(t, e.db.Create(contact).Error)
	return contact
}

func goodsJSON(shop string, goods string) []byte {
	return []byte(`{
		"shop": "` + shop + `",
		"categories": [{"id": 1, "name": "Widgets"}],
		"goods": [` + goods + `]
	}`)
}

// importWidgets loads a one-category catalog for the user and returns the
// shop's listings keyed by model name.
func (e *testEnv) importWidgets(t *testing.T, userID string, goods string) map[string]models.ProductInfo {
	t.Helper()

	_, err := e.importer.ImportCatalog(t.Context(), userID, "application/json", goodsJSON("Acme", goods))
	require.NoError(t, err)

	shop, err := e.shopRepo.FindByUserID(t.Context(), userID)
	require.NoError(t, err)
	require.NotNil(t, shop)

	infos, err := e.productInfoRepo.ListByShop(t.Context(), shop.ID)
	require.NoError(t, err)

	byModel := make(map[string]models.ProductInfo, len(infos))
	for _, info := range infos {
		byModel[info.Name] = info
	}
	return byModel
}
