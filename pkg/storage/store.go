package storage

import "github.com/avandersen/tokex/pkg/exchange"

// Store is the document interface the quoting service reads its snapshots
// from and hands submitted orders to. The quote engine itself never touches
// it; snapshots are loaded here, field-mapped into entities, and passed in.
type Store interface {
	SavePair(p *exchange.Pair) error
	GetPair(code string) (*exchange.Pair, error)
	ListPairs() ([]*exchange.Pair, error)

	SaveOrder(o *exchange.Order) error
	DeleteOrder(o *exchange.Order) error
	// LoadRestingOrders returns the unordered snapshot of orders resting on
	// one side of a pair's book (status PENDING).
	LoadRestingOrders(pair string, side exchange.Side) ([]*exchange.Order, error)

	SaveTrade(t *exchange.Trade) error
	LoadRecentTrades(pair string, limit int) ([]*exchange.Trade, error)

	Close() error
}
