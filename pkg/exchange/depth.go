package exchange

import "github.com/shopspring/decimal"

// AggregateEntry is one price level of the depth-of-market view: the summed
// unfulfilled quantity and order count resting at a price. It is ephemeral,
// recomputed on every request, never persisted.
type AggregateEntry struct {
	Pair       string          `json:"pair"`
	Side       Side            `json:"side"`
	Price      decimal.Decimal `json:"price"`
	Quantity   decimal.Decimal `json:"quantity"`
	OrderCount int             `json:"orderCount"`
}

// AggregateDepth collapses a price-level book into depth entries, one per
// level, in book order. Levels whose aggregate quantity is zero are kept:
// consumers must not assume liquidity is positive. A positive limit truncates
// the result to that many levels.
func AggregateDepth(book Book, pair string, side Side, limit int) []AggregateEntry {
	entries := make([]AggregateEntry, 0, len(book))
	for _, lvl := range book {
		if limit > 0 && len(entries) >= limit {
			break
		}
		entries = append(entries, AggregateEntry{
			Pair:       pair,
			Side:       side,
			Price:      lvl.Price,
			Quantity:   lvl.Unfulfilled(),
			OrderCount: len(lvl.Orders),
		})
	}
	return entries
}

// ComputeAggregateDepth builds the price-level book from an unordered order
// snapshot and aggregates it in one step.
func ComputeAggregateDepth(orders []*Order, pair string, side Side, dir SortDirection, limit int) []AggregateEntry {
	return AggregateDepth(BuildBook(orders, dir), pair, side, limit)
}
