package store

import "github.com/shopspring/decimal"

// Analytics is a read-only aggregate over the order log and the discount
// ledger. Monetary totals are rounded to 2 decimal places here and nowhere
// else in the core.
type Analytics struct {
	TotalItemsPurchased int
	TotalPurchaseAmount decimal.Decimal
	DiscountCodesIssued []DiscountCode
	TotalDiscountAmount decimal.Decimal
	OrderCount          int
	NthOrderForDiscount int
}

// Analytics computes the aggregate snapshot. Pure read; no mutation.
func (s *Store) Analytics() Analytics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := 0
	revenue := decimal.Zero
	granted := decimal.Zero
	for _, o := range s.orders {
		for _, it := range o.Items {
			items += it.Quantity
		}
		revenue = revenue.Add(o.Total)
		granted = granted.Add(o.DiscountAmount)
	}

	return Analytics{
		TotalItemsPurchased: items,
		TotalPurchaseAmount: revenue.Round(2),
		DiscountCodesIssued: s.ledger.all(),
		TotalDiscountAmount: granted.Round(2),
		OrderCount:          s.orderCount,
		NthOrderForDiscount: s.cfg.NthOrderForDiscount,
	}
}
