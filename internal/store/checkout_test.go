package store_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopx/nthcart/internal/store"
)

// placeOrder runs one successful single-item checkout and returns the order.
func placeOrder(t *testing.T, s *store.Store, cartID string) store.Order {
	t.Helper()
	_, err := s.AddToCart(cartID, "prod-2", 1)
	require.NoError(t, err)
	order, err := s.Checkout(cartID, "")
	require.NoError(t, err)
	return order
}

func TestCheckoutCartNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Checkout("never-seen-cart", "")
	assert.ErrorIs(t, err, store.ErrCartNotFound)
	assert.Equal(t, 0, s.OrderCount())
}

func TestCheckoutEmptyCart(t *testing.T) {
	s := newTestStore(t)
	s.GetCart("cart-1") // creates an empty cart

	_, err := s.Checkout("cart-1", "")
	assert.ErrorIs(t, err, store.ErrCartEmpty)
	assert.Equal(t, 0, s.OrderCount())
}

func TestCheckoutSingleItem(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddToCart("cart-1", "prod-1", 1)
	require.NoError(t, err)

	order, err := s.Checkout("cart-1", "")
	require.NoError(t, err)

	price := decimal.NewFromFloat(149.99)
	assert.NotEmpty(t, order.ID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "prod-1", order.Items[0].ProductID)
	assert.Equal(t, "Headphones", order.Items[0].ProductName)
	assert.True(t, order.Items[0].PriceAtPurchase.Equal(price))
	assert.True(t, order.Subtotal.Equal(price))
	assert.True(t, order.DiscountAmount.IsZero())
	assert.True(t, order.Total.Equal(price))

	assert.Equal(t, 1, s.OrderCount())
	assert.Empty(t, s.GetCart("cart-1").Items, "cart is cleared by checkout")

	p, ok := s.GetProduct("prod-1")
	require.True(t, ok)
	assert.Equal(t, 4, p.Stock, "stock decremented by the purchased quantity")
}

func TestCheckoutPricesMultipleLines(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddToCart("cart-1", "prod-2", 3) // 3 x 100
	require.NoError(t, err)
	_, err = s.AddToCart("cart-1", "prod-3", 2) // 2 x 25.50
	require.NoError(t, err)

	order, err := s.Checkout("cart-1", "")
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(351)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(351)))
	require.Len(t, order.Items, 2)
}

func TestCheckoutRejectsAccumulatedOverstock(t *testing.T) {
	s := newTestStore(t)

	// Two adds of 4 each pass the per-call stock check (stock 5) but the
	// checkout validation sees the accumulated 8.
	_, err := s.AddToCart("cart-1", "prod-1", 4)
	require.NoError(t, err)
	_, err = s.AddToCart("cart-1", "prod-1", 4)
	require.NoError(t, err)

	_, err = s.Checkout("cart-1", "")
	assert.ErrorIs(t, err, store.ErrInsufficientStock)

	// Nothing moved: stock, counter and cart are untouched.
	p, _ := s.GetProduct("prod-1")
	assert.Equal(t, 5, p.Stock)
	assert.Equal(t, 0, s.OrderCount())
	assert.Equal(t, 8, s.GetCart("cart-1").Items[0].Quantity)
}

func TestCheckoutWithDiscount(t *testing.T) {
	s := newTestStore(t)

	// Two completed orders make a code available (N=2).
	placeOrder(t, s, "cart-a")
	placeOrder(t, s, "cart-b")

	code, ok := s.AvailableDiscountCode()
	require.True(t, ok)
	require.Equal(t, 10, code.Percent)

	_, err := s.AddToCart("cart-c", "prod-2", 2) // subtotal 200
	require.NoError(t, err)
	order, err := s.Checkout("cart-c", code.Code)
	require.NoError(t, err)

	assert.Equal(t, code.Code, order.DiscountCode)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, order.DiscountAmount.Equal(decimal.NewFromInt(20)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(180)))

	// The code is terminally spent and tagged with the order.
	codes := s.ListDiscountCodes()
	require.Len(t, codes, 1)
	assert.True(t, codes[0].IsUsed)
	assert.Equal(t, order.ID, codes[0].OrderID)
	require.NotNil(t, codes[0].UsedAt)

	_, ok = s.AvailableDiscountCode()
	assert.False(t, ok)
}

func TestCheckoutWithUnknownDiscountCode(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddToCart("cart-1", "prod-1", 1)
	require.NoError(t, err)

	_, err = s.Checkout("cart-1", "BOGUS-CODE")
	assert.ErrorIs(t, err, store.ErrInvalidDiscountCode)

	// The rejected attempt is a no-op on shared state.
	p, _ := s.GetProduct("prod-1")
	assert.Equal(t, 5, p.Stock)
	assert.Equal(t, 0, s.OrderCount())
	require.Len(t, s.GetCart("cart-1").Items, 1)
}

func TestCheckoutWithUsedDiscountCode(t *testing.T) {
	s := newTestStore(t)

	placeOrder(t, s, "cart-a")
	placeOrder(t, s, "cart-b")
	code, ok := s.AvailableDiscountCode()
	require.True(t, ok)

	_, err := s.AddToCart("cart-c", "prod-2", 1)
	require.NoError(t, err)
	_, err = s.Checkout("cart-c", code.Code)
	require.NoError(t, err)

	_, err = s.AddToCart("cart-d", "prod-2", 1)
	require.NoError(t, err)
	_, err = s.Checkout("cart-d", code.Code)
	assert.ErrorIs(t, err, store.ErrInvalidDiscountCode)
}

func TestOrderLogIsAppendOnly(t *testing.T) {
	s := newTestStore(t)

	var ids []string
	for i := 0; i < 3; i++ {
		order := placeOrder(t, s, fmt.Sprintf("cart-%d", i))
		ids = append(ids, order.ID)
	}

	orders := s.Orders()
	require.Len(t, orders, 3)
	for i, o := range orders {
		assert.Equal(t, ids[i], o.ID, "orders are logged oldest first")
	}
}
