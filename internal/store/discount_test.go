package store_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopx/nthcart/internal/store"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{12}$`)

func TestNoDiscountBeforeThreshold(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.AvailableDiscountCode()
	assert.False(t, ok, "no code before any order")

	placeOrder(t, s, "cart-1")
	_, ok = s.AvailableDiscountCode()
	assert.False(t, ok, "no code after the 1st order with N=2")
}

func TestDiscountIssuedOnNthOrder(t *testing.T) {
	s := newTestStore(t)

	placeOrder(t, s, "cart-1")
	placeOrder(t, s, "cart-2")

	code, ok := s.AvailableDiscountCode()
	require.True(t, ok)
	assert.Equal(t, 10, code.Percent)
	assert.False(t, code.IsUsed)
	assert.Regexp(t, codePattern, code.Code)

	// Peeking is read-only and stable.
	again, ok := s.AvailableDiscountCode()
	require.True(t, ok)
	assert.Equal(t, code.Code, again.Code)
}

func TestSingleSlotNeverHoldsTwoCodes(t *testing.T) {
	s := newTestStore(t)

	// Counter crosses two multiples of N without the first code being
	// redeemed: the slot keeps the first code, nothing new is minted.
	for _, cart := range []string{"a", "b", "c", "d"} {
		placeOrder(t, s, cart)
	}

	codes := s.ListDiscountCodes()
	require.Len(t, codes, 1)

	code, ok := s.AvailableDiscountCode()
	require.True(t, ok)
	assert.Equal(t, codes[0].Code, code.Code)
}

func TestRedemptionFreesTheSlotForTheNextThreshold(t *testing.T) {
	s := newTestStore(t)

	placeOrder(t, s, "cart-1")
	placeOrder(t, s, "cart-2")
	first, ok := s.AvailableDiscountCode()
	require.True(t, ok)

	// Order 3 redeems the code; the slot clears and 3 is off-threshold.
	_, err := s.AddToCart("cart-3", "prod-2", 1)
	require.NoError(t, err)
	_, err = s.Checkout("cart-3", first.Code)
	require.NoError(t, err)

	_, ok = s.AvailableDiscountCode()
	assert.False(t, ok)

	// Order 4 crosses the next multiple of N and mints a fresh code.
	placeOrder(t, s, "cart-4")
	second, ok := s.AvailableDiscountCode()
	require.True(t, ok)
	assert.NotEqual(t, first.Code, second.Code)

	codes := s.ListDiscountCodes()
	require.Len(t, codes, 2)
	assert.Equal(t, first.Code, codes[0].Code, "issuance history is oldest first")
	assert.Equal(t, second.Code, codes[1].Code)
}

func TestGenerateDiscountCode(t *testing.T) {
	t.Run("fails before any order", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.GenerateDiscountCode()
		assert.ErrorIs(t, err, store.ErrNoOrdersYet)
	})

	t.Run("fails off threshold", func(t *testing.T) {
		s := newTestStore(t)
		placeOrder(t, s, "cart-1")
		_, err := s.GenerateDiscountCode()
		assert.ErrorIs(t, err, store.ErrNotAtThreshold)
		assert.Contains(t, err.Error(), "1 more order")
	})

	t.Run("fails while a code is already available", func(t *testing.T) {
		s := newTestStore(t)
		placeOrder(t, s, "cart-1")
		placeOrder(t, s, "cart-2") // auto-issues into the slot
		_, err := s.GenerateDiscountCode()
		assert.ErrorIs(t, err, store.ErrDiscountAvailable)
	})

	// A successful force-issue needs the slot free at a multiple of N, and
	// the automatic issuance after each checkout always refills the slot at
	// those exact points. The admin path therefore only ever reports one of
	// the three failures above in a live store; its mint branch is covered
	// at the ledger level in discount_internal_test.go.
}

func TestGeneratedCodesAreWellFormed(t *testing.T) {
	s := newTestStore(t)
	placeOrder(t, s, "cart-1")
	placeOrder(t, s, "cart-2")

	code, ok := s.AvailableDiscountCode()
	require.True(t, ok)
	assert.Regexp(t, codePattern, code.Code)
	assert.False(t, code.CreatedAt.IsZero())
	assert.Nil(t, code.UsedAt)
	assert.Empty(t, code.OrderID)
}
