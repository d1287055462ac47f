package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
)

// restingOrder builds a PENDING limit order for book tests.
func restingOrder(t *testing.T, side Side, price, qty string, created int64) *Order {
	t.Helper()
	o, err := NewOrder(OrderFields{
		Owner:       "maker",
		Pair:        "ABC-XYZ",
		Token1:      "ABC",
		Token2:      "XYZ",
		Side:        side,
		Type:        TypeLimit,
		Status:      StatusPending,
		Price:       dec(price),
		Quantity:    dec(qty),
		DateCreated: created,
	})
	if err != nil {
		t.Fatalf("restingOrder: %v", err)
	}
	return o
}

func TestBuildBookEmpty(t *testing.T) {
	book := BuildBook(nil, Ascending)
	if len(book) != 0 {
		t.Errorf("empty input should yield empty book, got %d levels", len(book))
	}
}

func TestBuildBookGroupsAndSorts(t *testing.T) {
	orders := []*Order{
		restingOrder(t, SideSell, "10.50", "5", 300),
		restingOrder(t, SideSell, "10.00", "2", 200),
		restingOrder(t, SideSell, "10.00", "3", 100),
	}

	t.Run("ascending", func(t *testing.T) {
		book := BuildBook(orders, Ascending)
		if len(book) != 2 {
			t.Fatalf("want 2 levels, got %d", len(book))
		}
		if !book[0].Price.Equal(dec("10.00")) || !book[1].Price.Equal(dec("10.50")) {
			t.Errorf("levels out of order: %s, %s", book[0].Price, book[1].Price)
		}
		// oldest resting order first within a level
		if book[0].Orders[0].DateCreated != 100 || book[0].Orders[1].DateCreated != 200 {
			t.Errorf("orders within level not time-ordered: %d, %d",
				book[0].Orders[0].DateCreated, book[0].Orders[1].DateCreated)
		}
		if !book[0].Unfulfilled().Equal(dec("5")) {
			t.Errorf("level quantity = %s, want 5", book[0].Unfulfilled())
		}
	})

	t.Run("descending", func(t *testing.T) {
		book := BuildBook(orders, Descending)
		if !book[0].Price.Equal(dec("10.50")) || !book[1].Price.Equal(dec("10.00")) {
			t.Errorf("levels out of order: %s, %s", book[0].Price, book[1].Price)
		}
		if book[1].Orders[0].DateCreated != 100 {
			t.Errorf("time priority lost in descending book")
		}
	})
}

func TestBuildBookEquivalentPriceRepresentations(t *testing.T) {
	// 10.5 and 10.50 are the same price level.
	orders := []*Order{
		restingOrder(t, SideSell, "10.5", "1", 1),
		restingOrder(t, SideSell, "10.50", "2", 2),
	}
	book := BuildBook(orders, Ascending)
	if len(book) != 1 {
		t.Fatalf("equal prices should share a level, got %d levels", len(book))
	}
	if !book[0].Unfulfilled().Equal(dec("3")) {
		t.Errorf("level quantity = %s, want 3", book[0].Unfulfilled())
	}
}

func TestDirectionFor(t *testing.T) {
	if DirectionFor(SideBuy) != Ascending {
		t.Error("BUY should walk the ask book ascending")
	}
	if DirectionFor(SideSell) != Descending {
		t.Error("SELL should walk the bid book descending")
	}
}

func TestSideOpposite(t *testing.T) {
	if SideBuy.Opposite() != SideSell || SideSell.Opposite() != SideBuy {
		t.Error("Opposite() should flip sides")
	}
}

func TestLevelUnfulfilled(t *testing.T) {
	a := restingOrder(t, SideSell, "10.00", "5", 1)
	a.QuantityFulfilled = dec("2")
	b := restingOrder(t, SideSell, "10.00", "4", 2)

	lvl := Level{Price: decimal.RequireFromString("10.00"), Orders: []*Order{a, b}}
	if !lvl.Unfulfilled().Equal(dec("7")) {
		t.Errorf("unfulfilled = %s, want 7", lvl.Unfulfilled())
	}
}
