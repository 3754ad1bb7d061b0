package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem captures a purchased line with the product name and unit price
// snapshotted at checkout time, immune to later catalog changes.
type OrderItem struct {
	ProductID       string
	ProductName     string
	Quantity        int
	PriceAtPurchase decimal.Decimal
}

// Order is immutable once created and appended to the store's order log.
type Order struct {
	ID             string
	Items          []OrderItem
	Subtotal       decimal.Decimal
	DiscountCode   string
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	CreatedAt      time.Time
}

func (o *Order) clone() Order {
	out := *o
	out.Items = make([]OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	return out
}

// Checkout runs the full checkout sequence for a cart: lookup, stock
// validation, pricing, optional discount application, commit, and the
// eligibility check that drives the Nth-order promotion.
//
// Every validation step runs before any mutation, and the whole sequence
// executes under the store's write lock, so a failure at any step leaves the
// cart, stock, counter and ledger exactly as they were. discountCode is
// optional; if supplied it must validate or the whole checkout is rejected.
func (s *Store) Checkout(cartID, discountCode string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Cart lookup. An absent cart and an empty cart are distinct failures;
	// the transport layer uses the former to drop stale cart cookies.
	cart, ok := s.carts[cartID]
	if !ok {
		return Order{}, fmt.Errorf("%w: %q", ErrCartNotFound, cartID)
	}
	if len(cart.Items) == 0 {
		return Order{}, ErrCartEmpty
	}

	// Validate: every line's product must still exist with enough stock for
	// the full requested quantity. This is where quantities accumulated by
	// repeated adds finally get checked as a whole.
	for _, item := range cart.Items {
		product, ok := s.catalog.get(item.ProductID)
		if !ok {
			return Order{}, fmt.Errorf("%w: %q", ErrProductNotFound, item.ProductID)
		}
		if product.Stock < item.Quantity {
			return Order{}, fmt.Errorf("%w: product %q has %d left, %d requested",
				ErrInsufficientStock, product.Name, product.Stock, item.Quantity)
		}
	}

	// Price: snapshot name and unit price per line, sum the subtotal.
	items := make([]OrderItem, 0, len(cart.Items))
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		product, _ := s.catalog.get(item.ProductID)
		line := OrderItem{
			ProductID:       item.ProductID,
			ProductName:     product.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: product.Price,
		}
		items = append(items, line)
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// Apply discount. The caller asked for it explicitly, so an invalid or
	// spent code aborts the checkout rather than silently proceeding at full
	// price. No rounding here; totals are rounded only at presentation and
	// analytics boundaries.
	discountAmount := decimal.Zero
	if discountCode != "" {
		dc, ok := s.ledger.validate(discountCode)
		if !ok {
			return Order{}, fmt.Errorf("%w: %q", ErrInvalidDiscountCode, discountCode)
		}
		discountAmount = subtotal.Mul(decimal.NewFromInt(int64(dc.Percent))).Div(decimal.NewFromInt(100))
	}

	// Commit. Everything below is mutation; no failure path from here on.
	order := Order{
		ID:             uuid.NewString(),
		Items:          items,
		Subtotal:       subtotal,
		DiscountCode:   discountCode,
		DiscountAmount: discountAmount,
		Total:          subtotal.Sub(discountAmount),
		CreatedAt:      now(),
	}

	for _, item := range cart.Items {
		product, _ := s.catalog.get(item.ProductID)
		product.Stock -= item.Quantity
	}
	if discountCode != "" {
		s.ledger.redeem(discountCode, order.ID)
	}
	s.orders = append(s.orders, order)
	s.orderCount++
	delete(s.carts, cartID)

	// The Nth-order promotion triggers here, immediately after the counter
	// may have crossed a multiple of N.
	s.ledger.issueIfEligible(s.orderCount, s.cfg.NthOrderForDiscount, s.cfg.DiscountPercent)

	return order.clone(), nil
}
