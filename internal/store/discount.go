package store

import (
	"fmt"
	"math/rand"
	"time"
)

// DiscountCode is a single-use promotional code. Once IsUsed is set the code
// is terminal: it is never reset or reused.
type DiscountCode struct {
	Code      string
	Percent   int
	IsUsed    bool
	CreatedAt time.Time
	UsedAt    *time.Time
	OrderID   string
}

const (
	codeLength  = 12
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// generateCode mints a random fixed-length alphanumeric code. Collisions are
// possible in principle but negligible at this scale, so there is no
// uniqueness check against previously issued codes.
func generateCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

// ledger tracks every issued code plus the single "currently available,
// unredeemed" slot. At most one unused code is available at any time; there
// is no queue of pending codes. Caller must hold the store lock.
type ledger struct {
	codes     map[string]*DiscountCode
	issued    []string // issuance order
	available string   // code occupying the slot, "" if none
}

func newLedger() *ledger {
	return &ledger{codes: make(map[string]*DiscountCode)}
}

func (l *ledger) mint(percent int) *DiscountCode {
	dc := &DiscountCode{
		Code:      generateCode(),
		Percent:   percent,
		CreatedAt: now(),
	}
	l.codes[dc.Code] = dc
	l.issued = append(l.issued, dc.Code)
	l.available = dc.Code
	return dc
}

// issueIfEligible returns the code already occupying the slot if there is
// one, otherwise mints a new code when orderCount is a positive multiple of
// n. Returns nil when the counter is zero or off-threshold.
func (l *ledger) issueIfEligible(orderCount, n, percent int) *DiscountCode {
	if dc, ok := l.availableCode(); ok {
		return dc
	}
	if orderCount == 0 || orderCount%n != 0 {
		return nil
	}
	return l.mint(percent)
}

// forceIssue is the administrative variant of issueIfEligible with explicit
// failures instead of a silent nil.
func (l *ledger) forceIssue(orderCount, n, percent int) (*DiscountCode, error) {
	if orderCount == 0 {
		return nil, fmt.Errorf("%w: a code becomes available every %d orders", ErrNoOrdersYet, n)
	}
	if orderCount%n != 0 {
		return nil, fmt.Errorf("%w: %d more order(s) needed", ErrNotAtThreshold, n-orderCount%n)
	}
	if _, ok := l.availableCode(); ok {
		return nil, ErrDiscountAvailable
	}
	return l.mint(percent), nil
}

// validate returns the code record only if it exists and is unused.
func (l *ledger) validate(code string) (*DiscountCode, bool) {
	dc, ok := l.codes[code]
	if !ok || dc.IsUsed {
		return nil, false
	}
	return dc, true
}

// redeem marks a code used, stamping the redemption time and order id. If the
// code occupied the available slot the slot is cleared so a later eligibility
// check can mint anew. Returns false for unknown or already-used codes.
func (l *ledger) redeem(code, orderID string) bool {
	dc, ok := l.codes[code]
	if !ok || dc.IsUsed {
		return false
	}
	ts := now()
	dc.IsUsed = true
	dc.UsedAt = &ts
	dc.OrderID = orderID
	if l.available == code {
		l.available = ""
	}
	return true
}

// availableCode peeks at the current slot without side effects.
func (l *ledger) availableCode() (*DiscountCode, bool) {
	if l.available == "" {
		return nil, false
	}
	dc, ok := l.codes[l.available]
	if !ok || dc.IsUsed {
		return nil, false
	}
	return dc, true
}

// all returns the issuance history, oldest first.
func (l *ledger) all() []DiscountCode {
	out := make([]DiscountCode, 0, len(l.issued))
	for _, code := range l.issued {
		out = append(out, *l.codes[code])
	}
	return out
}

// AvailableDiscountCode returns the currently available unredeemed code, if
// any. Customers poll this to learn whether the Nth-order promotion fired.
func (s *Store) AvailableDiscountCode() (DiscountCode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dc, ok := s.ledger.availableCode()
	if !ok {
		return DiscountCode{}, false
	}
	return *dc, true
}

// ListDiscountCodes returns every code ever issued, oldest first.
func (s *Store) ListDiscountCodes() []DiscountCode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.all()
}

// GenerateDiscountCode force-issues a code for admin tooling. Unlike the
// automatic path it reports why issuance is not possible: ErrNoOrdersYet,
// ErrNotAtThreshold or ErrDiscountAvailable.
func (s *Store) GenerateDiscountCode() (DiscountCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dc, err := s.ledger.forceIssue(s.orderCount, s.cfg.NthOrderForDiscount, s.cfg.DiscountPercent)
	if err != nil {
		return DiscountCode{}, err
	}
	return *dc, nil
}
