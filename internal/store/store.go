// Package store implements the in-memory core of the shop: the product
// catalog, per-customer carts, the discount ledger and the checkout engine,
// exposed through a single Store facade.
//
// The Store exclusively owns every map and counter behind one coarse RWMutex.
// All public operations are synchronous and complete without suspending, so a
// checkout is one uninterruptible unit from the caller's perspective. Methods
// return snapshots (copies) of owned state, never references into it.
package store

import (
	"sync"
	"time"
)

// Config carries the promotion parameters. Every NthOrderForDiscount-th
// completed checkout makes a DiscountPercent code available.
type Config struct {
	NthOrderForDiscount int
	DiscountPercent     int
}

// DefaultConfig matches the reference deployment: a 10% code after every
// 2nd order.
func DefaultConfig() Config {
	return Config{NthOrderForDiscount: 2, DiscountPercent: 10}
}

// Store is the facade over the catalog, cart store, discount ledger and the
// order log. Construct one per process and pass it by reference to whatever
// composes the request layer; there is no ambient singleton.
type Store struct {
	mu sync.RWMutex

	cfg     Config
	catalog *catalog
	carts   map[string]*Cart
	ledger  *ledger

	orders     []Order // append-only
	orderCount int     // incremented exactly once per committed checkout
}

// New creates a Store seeded with the sample catalog.
func New(cfg Config) *Store {
	return NewWithProducts(cfg, sampleProducts())
}

// NewWithProducts creates a Store over an explicit catalog. Used by tests
// that need deterministic prices and stock.
func NewWithProducts(cfg Config, products []Product) *Store {
	if cfg.NthOrderForDiscount <= 0 {
		cfg.NthOrderForDiscount = DefaultConfig().NthOrderForDiscount
	}
	if cfg.DiscountPercent <= 0 {
		cfg.DiscountPercent = DefaultConfig().DiscountPercent
	}
	return &Store{
		cfg:     cfg,
		catalog: newCatalog(products),
		carts:   make(map[string]*Cart),
		ledger:  newLedger(),
	}
}

// Config returns the promotion parameters the store was built with.
func (s *Store) Config() Config {
	return s.cfg
}

// ListProducts returns the full catalog in insertion order.
func (s *Store) ListProducts() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.all()
}

// GetProduct looks up a single product. A missing id is not an error, just
// not found.
func (s *Store) GetProduct(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.catalog.get(id)
	if !ok {
		return Product{}, false
	}
	return *p, true
}

// OrderCount returns the number of checkouts committed so far.
func (s *Store) OrderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderCount
}

// Orders returns the append-only order log, oldest first.
func (s *Store) Orders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.clone()
	}
	return out
}

func now() time.Time {
	return time.Now().UTC()
}
