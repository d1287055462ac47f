package storage

import (
	"sort"
	"sync"

	"github.com/avandersen/tokex/pkg/exchange"
)

// InMemoryStore is a map-backed Store used in tests and single-process
// development where no data directory is configured.
type InMemoryStore struct {
	mu     sync.Mutex
	pairs  map[string]*exchange.Pair
	orders map[string]*exchange.Order // key: pair:side:id
	trades map[string][]*exchange.Trade
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		pairs:  make(map[string]*exchange.Pair),
		orders: make(map[string]*exchange.Order),
		trades: make(map[string][]*exchange.Trade),
	}
}

func (s *InMemoryStore) Close() error { return nil }

func (s *InMemoryStore) SavePair(p *exchange.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[p.Code] = p
	return nil
}

func (s *InMemoryStore) GetPair(code string) (*exchange.Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pairs[code], nil
}

func (s *InMemoryStore) ListPairs() ([]*exchange.Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pairs := make([]*exchange.Pair, 0, len(s.pairs))
	for _, p := range s.pairs {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Code < pairs[j].Code })
	return pairs, nil
}

func memOrderKey(o *exchange.Order) string {
	return o.Pair + ":" + string(o.Side) + ":" + o.ID
}

func (s *InMemoryStore) SaveOrder(o *exchange.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[memOrderKey(o)] = o
	return nil
}

func (s *InMemoryStore) DeleteOrder(o *exchange.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, memOrderKey(o))
	return nil
}

func (s *InMemoryStore) LoadRestingOrders(pair string, side exchange.Side) ([]*exchange.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []*exchange.Order
	for _, o := range s.orders {
		if o.Pair == pair && o.Side == side && o.Resting() {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (s *InMemoryStore) SaveTrade(t *exchange.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades[t.Pair] = append(s.trades[t.Pair], t)
	return nil
}

func (s *InMemoryStore) LoadRecentTrades(pair string, limit int) ([]*exchange.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.trades[pair]
	sorted := make([]*exchange.Trade, len(all))
	copy(sorted, all)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

var _ Store = (*InMemoryStore)(nil)
