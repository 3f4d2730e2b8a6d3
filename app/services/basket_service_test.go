package services

import (
	"testing"

	"github.com/retailnet/orders-api/app/apperrors"
	"github.com/retailnet/orders-api/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateBasketReturnsTheSameBasket(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, "buyer@example.com", models.UserTypeBuyer)

	first, err := env.basket.GetOrCreateBasket(t.Context(), buyer.ID)
	require.NoError(t, err)
	second, err := env.basket.GetOrCreateBasket(t.Context(), buyer.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.OrderStateBasket, first.State)

	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Where("user_id = ?", buyer.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddOrUpdateItemMergesByReplace(t *testing.T) {
	env := newTestEnv(t)
	partner := env.createUser(t, "acme@example.com", models.UserTypeShop)
	buyer := env.createUser(t, "buyer@example.com", models.UserTypeBuyer)
	byModel := env.importWidgets(t, partner.ID, w1)

	item, err := env.basket.AddOrUpdateItem(t.Context(), buyer.ID, byModel["W1"].ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	// same SKU again: quantity is overwritten, not incremented, and no
	// second row appears
	item, err = env.basket.AddOrUpdateItem(t.Context(), buyer.ID, byModel["W1"].ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)

	var count int64
	require.NoError(t, env.db.Model(&models.OrderItem{}).Where("product_info_id = ?", byModel["W1"].ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddOrUpdateItemRejectsBadQuantity(t *testing.T) {
	env := newTestEnv(t)
	partner := env.createUser(t, "acme@example.com", models.UserTypeShop)
	buyer := env.createUser(t, "buyer@example.com", models.UserTypeBuyer)
	byModel := env.importWidgets(t, partner.ID, w1)

	for _, qty := range []int{0, -3} {
		_, err := env.basket.AddOrUpdateItem(t.Context(), buyer.ID, byModel["W1"].ID, qty)
		assert.ErrorIs(t, err, apperrors.ErrInvalidQuantity)
	}
}

func TestAddOrUpdateItemUnknownListing(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, "buyer@example.com", models.UserTypeBuyer)

	_, err := env.basket.AddOrUpdateItem(t.Context(), buyer.ID, "no-such-id", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRemoveItem(t *testing.T) {
	env := newTestEnv(t)
	partner := env.createUser(t, "acme@example.com", models.UserTypeShop)
	buyer := env.createUser(t, "buyer@example.com", models.UserTypeBuyer)
	byModel := env.importWidgets(t, partner.ID, w1)

	_, err := env.basket.AddOrUpdateItem(t.Context(), buyer.ID, byModel["W1"].ID, 2)
	require.NoError(t, err)

	require.NoError(t, env.basket.RemoveItem(t.Context(), buyer.ID, byModel["W1"].ID))

	err = env.basket.RemoveItem(t.Context(), buyer.ID, byModel["W1"].ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	view, err := env.basket.Get(t.Context(), buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Order.OrderItems)
}

func TestComputeTotalReflectsCurrentPrice(t *testing.T) {
	env := newTestEnv(t)
	partner := env.createUser(t, "acme@example.com", models.UserTypeShop)
	buyer := env.createUser(t, "buyer@example.com", models.UserTypeBuyer)
	byModel := env.importWidgets(t, partner.ID, w1)

	_, err := env.basket.AddOrUpdateItem(t.Context(), buyer.ID, byModel["W1"].ID, 2)
	require.NoError(t, err)

	view, err := env.basket.Get(t.Context(), buyer.ID)
	require.NoError(t, err)
	assert.True(t, view.Total.Equal(decimal.NewFromInt(200)), "got %s", view.Total)

	// price change in the catalog shows up on the next read; totals are
	// derived, never cached
	require.NoError(t, env.db.Model(&models.ProductInfo{}).
		Where("id = ?", byModel["W1"].ID).
		Update("price", decimal.NewFromInt(150)).Error)

	total, err := env.basket.ComputeTotal(t.Context(), view.Order.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(300)), "got %s", total)
}
