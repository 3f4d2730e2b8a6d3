package services

import (
	"testing"

	"github.com/retailnet/orders-api/app/apperrors"
	"github.com/retailnet/orders-api/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const w1 = `{"id": 1, "category": 1, "model": "W1", "name": "Widget One", "price": 100, "price_rrc": 120, "quantity": 5}`
const w2 = `{"id": 2, "category": 1, "model": "W2", "name": "Widget Two", "price": 50, "price_rrc": 60, "quantity": 3}`

func TestImportCatalogCreatesShopAndListings(t *testing.T) {
	env := newTestEnv(t)
	partner := env.createUser(t, "acme@example.com", models.UserTypeShop)

	result, err := env.importer.ImportCatalog(t.Context(), partner.ID, "application/json", goodsJSON("Acme", w1+","+w2))
	require.NoError(t, err)

	assert.Equal(t, "Acme", result.Shop)
	assert.Equal(t, 1, result.Categories)
	assert.Equal(t, 2, result.Products)

	shop, err := env.shopRepo.FindByUserID(t.Context(), partner.ID)
	require.NoError(t, err)
	require.NotNil(t, shop)
	assert.Equal(t, "Acme", shop.Name)

	infos, err := env.productInfoRepo.ListByShop(t.Context(), shop.ID)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, []string{"Acme"}, env.notifier.imported)
}

func TestImportCatalogFullReplaceIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	partner := env.createUser(t, "acme@example.com", models.UserTypeShop)

	env.importWidgets(t, partner.ID, w1+","+w2)

	// second import drops W2; only the second payload's set survives
	byModel := env.importWidgets(t, partner.ID, w1)
	require.Len(t, byModel, 1)
	_, hasW1 := byModel["W1"]
	assert.True(t, hasW1)
}

func TestImportCatalogWritesParameters(t *testing.T) {
	env := newTestEnv(t)
	partner := env.createUser(t, "acme@example.com", models.UserTypeShop)

	good := `{"id": 1, "category": 1, "model": "W1", "name": "Widget One", "price": 100, "price_rrc": 120, "quantity": 5,
		"parameters": {"color": "red", "weight": "2kg"}}`
	result, err := env.importer.ImportCatalog(t.Context(), partner.ID, "application/json", goodsJSON("Acme", good))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Parameters)

	byModel := env.importWidgets(t, partner.ID, good)
	info := byModel["W1"]
	require.Len(t, info.ProductParameters, 2)

	values := map[string]string{}
	for _, pp := range info.ProductParameters {
		values[pp.Parameter.Name] = pp.Value
	}
	assert.Equal(t, map[string]string{"color": "red", "weight": "2kg"}, values)
}

func TestImportCatalogAcceptsYAML(t *testing.T) {
	env := newTestEnv(t)
	partner := env.createUser(t, "acme@example.com", models.UserTypeShop)

	payload := []byte(`
shop: Acme
categories:
  - id: 1
    name: Widgets
goods:
  - id: 1
    category: 1
    model: W1
    name: Widget One
    price: 100.50
    price_rrc: 120
    quantity: 5
    parameters:
      color: red
`)
	result, err := env.importer.ImportCatalog(t.Context(), partner.ID, "text/yaml", payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Products)
	assert.Equal(t, 1, result.Parameters)
}

func TestImportCatalogRejectsBuyers(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, "buyer@example.com", models.UserTypeBuyer)

	_, err := env.importer.ImportCatalog(t.Context(), buyer.ID, "application/json", goodsJSON("Acme", w1))
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)
}

func TestImportCatalogClosedShop(t *testing.T) {
	env := newTestEnv(t)
	partner := env.createUser(t, "acme@example.com", models.UserTypeShop)
	env.importWidgets(t, partner.ID, w1)

	shop, err := env.shopRepo.FindByUserID(t.Context(), partner.ID)
	require.NoError(t, err)
	require.NoError(t, env.shopRepo.UpdateState(t.Context(), shop.ID, false))

	_, err = env.importer.ImportCatalog(t.Context(), partner.ID, "application/json", goodsJSON("Acme", w2))
	assert.ErrorIs(t, err, apperrors.ErrStoreClosed)
}

func TestImportCatalogValidationLeavesCatalogUntouched(t *testing.T) {
	env := newTestEnv(t)
	partner := env.createUser(t, "acme@example.com", models.UserTypeShop)
	env.importWidgets(t, partner.ID, w1+","+w2)

	cases := map[string][]byte{
		"malformed body": []byte(`{"shop": `),
		"missing shop":   []byte(`{"categories": [{"id": 1, "name": "Widgets"}], "goods": []}`),
		"unknown category ref": goodsJSON("Acme",
			`{"id": 9, "category": 42, "model": "X", "name": "Mystery", "price": 1, "price_rrc": 1, "quantity": 1}`),
		"negative price": goodsJSON("Acme",
			`{"id": 9, "category": 1, "model": "X", "name": "Cheap", "price": -5, "price_rrc": 1, "quantity": 1}`),
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.importer.ImportCatalog(t.Context(), partner.ID, "application/json", payload)
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			// prior catalog must survive the failed import
			shop, err := env.shopRepo.FindByUserID(t.Context(), partner.ID)
			require.NoError(t, err)
			infos, err := env.productInfoRepo.ListByShop(t.Context(), shop.ID)
			require.NoError(t, err)
			assert.Len(t, infos, 2)
		})
	}
}

func TestImportCatalogSeparateShopsDoNotInterfere(t *testing.T) {
	env := newTestEnv(t)
	acme := env.createUser(t, "acme@example.com", models.UserTypeShop)
	globex := env.createUser(t, "globex@example.com", models.UserTypeShop)

	_, err := env.importer.ImportCatalog(t.Context(), acme.ID, "application/json", goodsJSON("Acme", w1))
	require.NoError(t, err)
	_, err = env.importer.ImportCatalog(t.Context(), globex.ID, "application/json", goodsJSON("Globex", w2))
	require.NoError(t, err)

	acmeShop, err := env.shopRepo.FindByUserID(t.Context(), acme.ID)
	require.NoError(t, err)
	infos, err := env.productInfoRepo.ListByShop(t.Context(), acmeShop.ID)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "W1", infos[0].Name)
}
