package exchange

import (
	"errors"
	"strings"
	"testing"
)

func validLimitFields() OrderFields {
	return OrderFields{
		ID:          "42",
		Owner:       "alice",
		Pair:        "ABC-XYZ",
		Token1:      "ABC",
		Token2:      "XYZ",
		Side:        SideBuy,
		Type:        TypeLimit,
		Status:      StatusPending,
		Price:       dec("10.00"),
		Quantity:    dec("5"),
		DateCreated: 1700000000000,
	}
}

func TestNewOrderValidation(t *testing.T) {
	falseVal := false

	tests := []struct {
		name      string
		mutate    func(*OrderFields)
		wantField string
	}{
		{"valid", func(f *OrderFields) {}, ""},
		{"missing owner", func(f *OrderFields) { f.Owner = "" }, "owner"},
		{"missing pair", func(f *OrderFields) { f.Pair = "" }, "pair"},
		{"missing token1", func(f *OrderFields) { f.Token1 = "" }, "token1"},
		{"missing token2", func(f *OrderFields) { f.Token2 = "" }, "token2"},
		{"missing side", func(f *OrderFields) { f.Side = "" }, "side"},
		{"unknown side", func(f *OrderFields) { f.Side = "HOLD" }, "side"},
		{"missing type", func(f *OrderFields) { f.Type = "" }, "type"},
		{"unknown type", func(f *OrderFields) { f.Type = "STOP" }, "type"},
		{"limit without price", func(f *OrderFields) { f.Price = dec("0") }, "price"},
		{"quantity-specified without quantity", func(f *OrderFields) { f.Quantity = dec("0") }, "quantity"},
		{
			"value-specified without value",
			func(f *OrderFields) { f.QuantitySpecified = &falseVal },
			"value",
		},
		{
			"fulfilled exceeds quantity",
			func(f *OrderFields) { f.QuantityFulfilled = dec("6") },
			"quantityFulfilled",
		},
		{
			"market order needs no price",
			func(f *OrderFields) { f.Type = TypeMarket; f.Price = dec("0") },
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validLimitFields()
			tt.mutate(&f)
			o, err := NewOrder(f)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("NewOrder() unexpected error: %v", err)
				}
				if o == nil {
					t.Fatal("NewOrder() returned nil order without error")
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("NewOrder() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("validation failed on field %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestNewOrderDerivesValue(t *testing.T) {
	f := validLimitFields()
	f.Price = dec("10.50")
	f.Quantity = dec("4")

	o, err := NewOrder(f)
	if err != nil {
		t.Fatalf("NewOrder() error: %v", err)
	}
	if !o.Value.Equal(dec("42")) {
		t.Errorf("derived value = %s, want 42", o.Value)
	}
}

func TestNewOrderIDSynthesis(t *testing.T) {
	t.Run("raw id gets pair prefix", func(t *testing.T) {
		o, err := NewOrder(validLimitFields())
		if err != nil {
			t.Fatalf("NewOrder() error: %v", err)
		}
		if o.ID != "ABC-XYZ_42" {
			t.Errorf("id = %q, want ABC-XYZ_42", o.ID)
		}
	})

	t.Run("prefixed id is kept", func(t *testing.T) {
		f := validLimitFields()
		f.ID = "ABC-XYZ_7"
		o, err := NewOrder(f)
		if err != nil {
			t.Fatalf("NewOrder() error: %v", err)
		}
		if o.ID != "ABC-XYZ_7" {
			t.Errorf("id = %q, want ABC-XYZ_7", o.ID)
		}
	})

	t.Run("missing id gets date-based suffix", func(t *testing.T) {
		f := validLimitFields()
		f.ID = ""
		o, err := NewOrder(f)
		if err != nil {
			t.Fatalf("NewOrder() error: %v", err)
		}
		if !strings.HasPrefix(o.ID, "ABC-XYZ_1700000000000-") {
			t.Errorf("id = %q, want pair and date prefix", o.ID)
		}
	})
}

func TestOrderUnfulfilled(t *testing.T) {
	f := validLimitFields()
	f.QuantityFulfilled = dec("2")
	o, err := NewOrder(f)
	if err != nil {
		t.Fatalf("NewOrder() error: %v", err)
	}
	if !o.Unfulfilled().Equal(dec("3")) {
		t.Errorf("unfulfilled = %s, want 3", o.Unfulfilled())
	}
	if !o.Resting() {
		t.Error("PENDING order should be resting")
	}
}
