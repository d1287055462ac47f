package storage

import (
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/avandersen/tokex/pkg/exchange"
)

// PebbleStore persists pairs, orders and trades as JSON documents in Pebble.
type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Close() error { return s.db.Close() }

// SavePair persists a pair configuration document.
func (s *PebbleStore) SavePair(p *exchange.Pair) error {
	data, err := encodeDoc(p)
	if err != nil {
		return fmt.Errorf("failed to marshal pair: %w", err)
	}
	if err := s.db.Set(pairKey(p.Code), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to save pair: %w", err)
	}
	return nil
}

// GetPair loads a pair by code. Returns nil if the pair doesn't exist.
func (s *PebbleStore) GetPair(code string) (*exchange.Pair, error) {
	data, closer, err := s.db.Get(pairKey(code))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pair: %w", err)
	}
	defer closer.Close()

	var p exchange.Pair
	if err := decodeDoc(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pair: %w", err)
	}
	return &p, nil
}

// ListPairs loads every pair configuration document.
func (s *PebbleStore) ListPairs() ([]*exchange.Pair, error) {
	prefix := pairPrefix()
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var pairs []*exchange.Pair
	for iter.First(); iter.Valid(); iter.Next() {
		var p exchange.Pair
		if err := decodeDoc(iter.Value(), &p); err != nil {
			continue // skip invalid entries
		}
		pairs = append(pairs, &p)
	}
	return pairs, nil
}

// SaveOrder persists an order under its pair/side prefix.
func (s *PebbleStore) SaveOrder(o *exchange.Order) error {
	data, err := encodeDoc(o)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	key := orderKey(o.Pair, string(o.Side), o.DateCreated, o.ID)
	if err := s.db.Set(key, data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// DeleteOrder removes an order document.
func (s *PebbleStore) DeleteOrder(o *exchange.Order) error {
	key := orderKey(o.Pair, string(o.Side), o.DateCreated, o.ID)
	if err := s.db.Delete(key, pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// LoadRestingOrders returns the orders resting on one side of a pair's book.
// The result is an unordered snapshot; callers build the price-level book
// from it.
func (s *PebbleStore) LoadRestingOrders(pair string, side exchange.Side) ([]*exchange.Order, error) {
	prefix := orderPrefix(pair, string(side))
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var orders []*exchange.Order
	for iter.First(); iter.Valid(); iter.Next() {
		var o exchange.Order
		if err := decodeDoc(iter.Value(), &o); err != nil {
			continue
		}
		if o.Resting() {
			orders = append(orders, &o)
		}
	}
	return orders, nil
}

// SaveTrade persists a settlement record. Trades are append-only history, so
// NoSync is acceptable here.
func (s *PebbleStore) SaveTrade(t *exchange.Trade) error {
	data, err := encodeDoc(t)
	if err != nil {
		return fmt.Errorf("failed to marshal trade: %w", err)
	}
	key := tradeKey(t.Pair, t.Date, t.ID)
	if err := s.db.Set(key, data, pebble.NoSync); err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}
	return nil
}

// LoadRecentTrades loads the most recent N trades for a pair, newest first.
func (s *PebbleStore) LoadRecentTrades(pair string, limit int) ([]*exchange.Trade, error) {
	prefix := tradePrefix(pair)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var trades []*exchange.Trade
	for iter.Last(); iter.Valid() && len(trades) < limit; iter.Prev() {
		var t exchange.Trade
		if err := decodeDoc(iter.Value(), &t); err != nil {
			continue
		}
		trades = append(trades, &t)
	}
	return trades, nil
}

var _ Store = (*PebbleStore)(nil)
