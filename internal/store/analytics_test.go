package store_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopx/nthcart/internal/store"
)

func TestAnalyticsOnFreshStore(t *testing.T) {
	s := newTestStore(t)

	a := s.Analytics()
	assert.Equal(t, 0, a.TotalItemsPurchased)
	assert.True(t, a.TotalPurchaseAmount.IsZero())
	assert.Empty(t, a.DiscountCodesIssued)
	assert.True(t, a.TotalDiscountAmount.IsZero())
	assert.Equal(t, 0, a.OrderCount)
	assert.Equal(t, 2, a.NthOrderForDiscount)
}

func TestAnalyticsAggregatesOrders(t *testing.T) {
	s := newTestStore(t)

	// Order 1: 2 x 100. Order 2: 1 x 149.99, issues a code.
	_, err := s.AddToCart("cart-1", "prod-2", 2)
	require.NoError(t, err)
	_, err = s.Checkout("cart-1", "")
	require.NoError(t, err)

	_, err = s.AddToCart("cart-2", "prod-1", 1)
	require.NoError(t, err)
	_, err = s.Checkout("cart-2", "")
	require.NoError(t, err)

	// Order 3: 1 x 100 with the 10% code applied.
	code, ok := s.AvailableDiscountCode()
	require.True(t, ok)
	_, err = s.AddToCart("cart-3", "prod-2", 1)
	require.NoError(t, err)
	_, err = s.Checkout("cart-3", code.Code)
	require.NoError(t, err)

	a := s.Analytics()
	assert.Equal(t, 4, a.TotalItemsPurchased)
	// 200 + 149.99 + 90
	assert.True(t, a.TotalPurchaseAmount.Equal(decimal.NewFromFloat(439.99)),
		"got %s", a.TotalPurchaseAmount)
	assert.True(t, a.TotalDiscountAmount.Equal(decimal.NewFromInt(10)),
		"got %s", a.TotalDiscountAmount)
	assert.Equal(t, 3, a.OrderCount)
	require.Len(t, a.DiscountCodesIssued, 1)
	assert.True(t, a.DiscountCodesIssued[0].IsUsed)
}

func TestAnalyticsRoundsToTwoDecimals(t *testing.T) {
	products := []store.Product{
		{ID: "p", Name: "Widget", Price: decimal.NewFromFloat(33.335), Stock: 100},
	}
	s := store.NewWithProducts(store.Config{NthOrderForDiscount: 2, DiscountPercent: 10}, products)

	_, err := s.AddToCart("cart-1", "p", 1)
	require.NoError(t, err)
	_, err = s.Checkout("cart-1", "")
	require.NoError(t, err)

	a := s.Analytics()
	assert.Equal(t, "33.34", a.TotalPurchaseAmount.StringFixed(2))
	assert.Equal(t, int32(-2), a.TotalPurchaseAmount.Exponent(), "rounded to 2 decimal places")
}

func TestAnalyticsIsReadOnly(t *testing.T) {
	s := newTestStore(t)
	placeOrder(t, s, "cart-1")

	before := s.Analytics()
	after := s.Analytics()
	assert.Equal(t, before, after)
	assert.Equal(t, 1, s.OrderCount())
}
