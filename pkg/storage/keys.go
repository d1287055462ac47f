package storage

import "fmt"

// Key schema for Pebble storage. Orders are keyed so that one side of one
// pair's book is a single contiguous prefix scan, and trades sort by date so
// recent-first reads are a reverse scan:
//
//   pair:<code>                          → Pair
//   ord:<pair>:<side>:<date>:<id>        → Order
//   trade:<pair>:<date>:<id>             → Trade
const (
	prefixPair  = "pair:"
	prefixOrder = "ord:"
	prefixTrade = "trade:"
)

// pairKey returns the key for a pair document.
// Format: "pair:{code}"
func pairKey(code string) []byte {
	return []byte(prefixPair + code)
}

// pairPrefix returns the prefix covering all pair documents.
func pairPrefix() []byte {
	return []byte(prefixPair)
}

// orderKey returns the key for an order.
// Format: "ord:{pair}:{side}:{dateCreated}:{id}"
// DateCreated is zero-padded (20 digits) for lexicographic sorting.
func orderKey(pair, side string, dateCreated int64, id string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:%020d:%s", prefixOrder, pair, side, dateCreated, id))
}

// orderPrefix returns the prefix for all orders on one side of a pair.
// Format: "ord:{pair}:{side}:"
func orderPrefix(pair, side string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:", prefixOrder, pair, side))
}

// tradeKey returns the key for a trade.
// Format: "trade:{pair}:{date}:{id}"
func tradeKey(pair string, date int64, id string) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d:%s", prefixTrade, pair, date, id))
}

// tradePrefix returns the prefix for all trades of a pair.
func tradePrefix(pair string) []byte {
	return []byte(fmt.Sprintf("%s%s:", prefixTrade, pair))
}

// keyUpperBound returns the exclusive upper bound for a prefix scan.
func keyUpperBound(prefix []byte) []byte {
	bound := make([]byte, len(prefix))
	copy(bound, prefix)
	bound[len(bound)-1]++
	return bound
}
