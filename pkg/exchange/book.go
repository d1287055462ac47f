package exchange

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SortDirection orders price levels across a book.
type SortDirection int8

const (
	Ascending SortDirection = iota
	Descending
)

// DirectionFor returns the direction a taker order walks the opposing book:
// a BUY consumes the SELL book ascending (best ask first), a SELL consumes
// the BUY book descending (best bid first).
func DirectionFor(takerSide Side) SortDirection {
	if takerSide == SideBuy {
		return Ascending
	}
	return Descending
}

// Level is one price level: every resting order sharing a price, oldest first.
type Level struct {
	Price  decimal.Decimal
	Orders []*Order
}

// Unfulfilled sums the remaining quantity across the level's orders.
func (l Level) Unfulfilled() decimal.Decimal {
	total := decimal.Zero
	for _, o := range l.Orders {
		total = total.Add(o.Unfulfilled())
	}
	return total
}

// Book is a price-level view of one side of the order book. Levels are
// ordered by price per the requested direction; within a level orders are
// ordered by creation time ascending, so any walk observes price-time
// priority.
type Book []Level

// BuildBook groups orders into price levels. The grouping is an explicit
// sort: orders are ordered by price per the requested direction, then by
// creation time within equal prices, and adjacent equal-price runs become
// levels. Price equality uses numeric comparison, so "10.5" and "10.50"
// land on the same level. Empty input yields an empty book.
func BuildBook(orders []*Order, dir SortDirection) Book {
	sorted := make([]*Order, len(orders))
	copy(sorted, orders)

	sort.SliceStable(sorted, func(a, b int) bool {
		cmp := sorted[a].Price.Cmp(sorted[b].Price)
		if cmp != 0 {
			if dir == Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return sorted[a].DateCreated < sorted[b].DateCreated
	})

	var book Book
	for _, o := range sorted {
		n := len(book)
		if n == 0 || book[n-1].Price.Cmp(o.Price) != 0 {
			book = append(book, Level{Price: o.Price})
			n++
		}
		book[n-1].Orders = append(book[n-1].Orders, o)
	}
	return book
}
