package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAggregateDepthConservesQuantity(t *testing.T) {
	orders := []*Order{
		restingOrder(t, SideSell, "10.00", "3", 1),
		restingOrder(t, SideSell, "10.00", "2", 2),
		restingOrder(t, SideSell, "10.50", "5", 3),
		restingOrder(t, SideSell, "11.00", "1", 4),
	}
	orders[0].QuantityFulfilled = dec("1")

	entries := ComputeAggregateDepth(orders, "ABC-XYZ", SideSell, Ascending, 0)
	if len(entries) != 3 {
		t.Fatalf("want 3 levels, got %d", len(entries))
	}

	wantTotal := decimal.Zero
	for _, o := range orders {
		wantTotal = wantTotal.Add(o.Unfulfilled())
	}
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Quantity)
	}
	if !total.Equal(wantTotal) {
		t.Errorf("aggregate quantity %s does not conserve input total %s", total, wantTotal)
	}

	if !entries[0].Quantity.Equal(dec("4")) || entries[0].OrderCount != 2 {
		t.Errorf("first level = qty %s count %d, want qty 4 count 2",
			entries[0].Quantity, entries[0].OrderCount)
	}
	if entries[0].Pair != "ABC-XYZ" || entries[0].Side != SideSell {
		t.Errorf("entry labels = %s/%s", entries[0].Pair, entries[0].Side)
	}
}

func TestAggregateDepthKeepsZeroQuantityLevels(t *testing.T) {
	o := restingOrder(t, SideSell, "10.00", "5", 1)
	o.QuantityFulfilled = dec("5")

	entries := ComputeAggregateDepth([]*Order{o}, "ABC-XYZ", SideSell, Ascending, 0)
	if len(entries) != 1 {
		t.Fatalf("fully fulfilled level should still appear, got %d entries", len(entries))
	}
	if !entries[0].Quantity.IsZero() {
		t.Errorf("quantity = %s, want 0", entries[0].Quantity)
	}
	if entries[0].OrderCount != 1 {
		t.Errorf("orderCount = %d, want 1", entries[0].OrderCount)
	}
}

func TestAggregateDepthLimit(t *testing.T) {
	orders := []*Order{
		restingOrder(t, SideSell, "10.00", "1", 1),
		restingOrder(t, SideSell, "10.50", "1", 2),
		restingOrder(t, SideSell, "11.00", "1", 3),
	}

	entries := ComputeAggregateDepth(orders, "ABC-XYZ", SideSell, Ascending, 2)
	if len(entries) != 2 {
		t.Fatalf("limit 2 should truncate to 2 entries, got %d", len(entries))
	}
	if !entries[1].Price.Equal(dec("10.50")) {
		t.Errorf("truncation should keep best prices, got %s", entries[1].Price)
	}
}

func TestAggregateDepthEmpty(t *testing.T) {
	entries := ComputeAggregateDepth(nil, "ABC-XYZ", SideBuy, Descending, 10)
	if len(entries) != 0 {
		t.Errorf("empty snapshot should aggregate to no entries, got %d", len(entries))
	}
}
