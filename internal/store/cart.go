package store

import (
	"fmt"
	"time"
)

// CartItem is one (product, quantity) line. Product ids are unique within a
// cart; adding an already-present product merges into the existing line.
type CartItem struct {
	ProductID string
	Quantity  int
}

// Cart is an ordered sequence of line items keyed by an opaque, caller-supplied
// identifier (one per customer session). Item order is insertion order.
type Cart struct {
	ID        string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Cart) clone() Cart {
	out := *c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

func (c *Cart) findItem(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) removeLine(productID string) {
	items := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	c.Items = items
}

// getOrCreateCart returns the live cart for cartID, lazily creating an empty
// one. Caller must hold the write lock.
func (s *Store) getOrCreateCart(cartID string) *Cart {
	cart, ok := s.carts[cartID]
	if !ok {
		ts := now()
		cart = &Cart{ID: cartID, Items: []CartItem{}, CreatedAt: ts, UpdatedAt: ts}
		s.carts[cartID] = cart
	}
	return cart
}

// GetCart returns the cart for cartID, creating an empty one on first access.
func (s *Store) GetCart(cartID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateCart(cartID).clone()
}

// HasCart reports whether a cart exists without the creation side effect of
// GetCart. Checkout uses it to tell "no cart yet" from "empty cart".
func (s *Store) HasCart(cartID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.carts[cartID]
	return ok
}

// AddToCart adds quantity units of a product to the cart, merging into an
// existing line if the product is already present. The stock check is against
// the requested quantity only, not the cumulative cart quantity: two
// successive adds can together exceed available stock without either being
// rejected. That mirrors the reference behaviour and checkout re-validates
// the full quantities anyway.
func (s *Store) AddToCart(cartID, productID string, quantity int) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.catalog.get(productID)
	if !ok {
		return Cart{}, fmt.Errorf("%w: %q", ErrProductNotFound, productID)
	}
	if product.Stock < quantity {
		return Cart{}, fmt.Errorf("%w: product %q has %d left, %d requested",
			ErrInsufficientStock, product.Name, product.Stock, quantity)
	}

	cart := s.getOrCreateCart(cartID)
	if item := cart.findItem(productID); item != nil {
		item.Quantity += quantity
	} else {
		cart.Items = append(cart.Items, CartItem{ProductID: productID, Quantity: quantity})
	}
	cart.UpdatedAt = now()
	return cart.clone(), nil
}

// UpdateCartItem sets the quantity of an existing line. A quantity of zero or
// less removes the line; a positive quantity is re-validated in full against
// the product's current stock.
func (s *Store) UpdateCartItem(cartID, productID string, quantity int) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return Cart{}, fmt.Errorf("%w: %q", ErrCartNotFound, cartID)
	}
	item := cart.findItem(productID)
	if item == nil {
		return Cart{}, fmt.Errorf("%w: product %q", ErrItemNotFound, productID)
	}

	if quantity <= 0 {
		cart.removeLine(productID)
	} else {
		product, ok := s.catalog.get(productID)
		if !ok {
			return Cart{}, fmt.Errorf("%w: %q", ErrProductNotFound, productID)
		}
		if product.Stock < quantity {
			return Cart{}, fmt.Errorf("%w: product %q has %d left, %d requested",
				ErrInsufficientStock, product.Name, product.Stock, quantity)
		}
		item.Quantity = quantity
	}

	cart.UpdatedAt = now()
	return cart.clone(), nil
}

// RemoveFromCart deletes a line from the cart. Removing a product that is not
// in the cart is a no-op success, so the operation is idempotent.
func (s *Store) RemoveFromCart(cartID, productID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return Cart{}, fmt.Errorf("%w: %q", ErrCartNotFound, cartID)
	}
	cart.removeLine(productID)
	cart.UpdatedAt = now()
	return cart.clone(), nil
}

// ClearCart deletes the cart entirely. A subsequent GetCart recreates a fresh
// empty cart with new timestamps.
func (s *Store) ClearCart(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
}
