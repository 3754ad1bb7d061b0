package store

import "github.com/shopspring/decimal"

// Product is a catalog entry. Products are created once at store construction
// and never deleted; Stock is mutated only by a committed checkout.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    string
	Stock       int
}

// catalog keeps products in a map for O(1) lookup plus the insertion order so
// listings are stable across calls. Not safe for concurrent use on its own;
// the facade's lock guards every access.
type catalog struct {
	byID  map[string]*Product
	order []string
}

func newCatalog(products []Product) *catalog {
	c := &catalog{byID: make(map[string]*Product, len(products))}
	for i := range products {
		p := products[i]
		c.byID[p.ID] = &p
		c.order = append(c.order, p.ID)
	}
	return c
}

// all returns a snapshot of every product in insertion order.
func (c *catalog) all() []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.byID[id])
	}
	return out
}

// get returns the live product record. Callers outside the store must only
// ever see copies of it.
func (c *catalog) get(id string) (*Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}
