package exchange

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side is the direction of an order on a pair.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Opposite returns the side of the book a taker order consumes.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Valid reports whether s is a known side.
func (s Side) Valid() bool { return s == SideBuy || s == SideSell }

// OrderType classifies how an order interacts with the book.
type OrderType string

const (
	TypeMarket    OrderType = "MARKET"
	TypeLimit     OrderType = "LIMIT"
	TypeLimitOnly OrderType = "LIMIT-ONLY"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	return t == TypeMarket || t == TypeLimit || t == TypeLimitOnly
}

// OrderStatus is the lifecycle state of an order. It is owned by the external
// matching/settlement service; this package only reads it.
type OrderStatus string

const (
	StatusSubmitting OrderStatus = "SUBMITTING" // queued, not yet processed
	StatusPending    OrderStatus = "PENDING"    // resting in the book, awaiting fulfilment
	StatusCompleted  OrderStatus = "COMPLETED"  // fully fulfilled
	StatusCancelled  OrderStatus = "CANCELLED"  // cancelled by owner
)

// Order is a resting or candidate order on one trading pair. The quote engine
// treats orders as read-only input; fulfilment fields are maintained by the
// external settlement service.
type Order struct {
	ID     string `json:"id"`
	Owner  string `json:"owner"`
	Pair   string `json:"pair"`
	Token1 string `json:"token1"`
	Token2 string `json:"token2"`

	Side   Side        `json:"side"`
	Type   OrderType   `json:"type"`
	Status OrderStatus `json:"status"`

	Price             decimal.Decimal `json:"price"`
	Quantity          decimal.Decimal `json:"quantity"`
	Value             decimal.Decimal `json:"value"`
	QuantityFulfilled decimal.Decimal `json:"quantityFulfilled"`
	ValueFulfilled    decimal.Decimal `json:"valueFulfilled"`
	// QuantitySpecified is true when the order size is denominated in the
	// base token (quantity), false when denominated in the quote token (value).
	QuantitySpecified bool `json:"quantitySpecified"`

	DateCreated   int64 `json:"dateCreated"` // unix milliseconds
	DateCompleted int64 `json:"dateCompleted"`
}

// OrderFields is the raw input to NewOrder. Optional fields keep their zero
// value; QuantitySpecified defaults to true when nil.
type OrderFields struct {
	ID     string
	Owner  string
	Pair   string
	Token1 string
	Token2 string

	Side   Side
	Type   OrderType
	Status OrderStatus

	Price             decimal.Decimal
	Quantity          decimal.Decimal
	Value             decimal.Decimal
	QuantityFulfilled decimal.Decimal
	ValueFulfilled    decimal.Decimal
	QuantitySpecified *bool

	DateCreated   int64
	DateCompleted int64
}

// NewOrder validates fields and builds an Order. Required fields are checked
// in a fixed order and the first failure is reported as a *ValidationError.
// A supplied id without an embedded pair prefix is rewritten to
// "<pair>_<rawId>"; a missing id gets a date-based suffix instead.
func NewOrder(f OrderFields) (*Order, error) {
	if f.Owner == "" {
		return nil, requiredField("owner")
	}
	if f.Pair == "" {
		return nil, requiredField("pair")
	}
	if f.Token1 == "" {
		return nil, requiredField("token1")
	}
	if f.Token2 == "" {
		return nil, requiredField("token2")
	}
	if f.Side == "" {
		return nil, requiredField("side")
	}
	if !f.Side.Valid() {
		return nil, &ValidationError{Field: "side", Reason: fmt.Sprintf("unknown side %q", f.Side)}
	}
	if f.Type == "" {
		return nil, requiredField("type")
	}
	if !f.Type.Valid() {
		return nil, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown order type %q", f.Type)}
	}

	quantitySpecified := true
	if f.QuantitySpecified != nil {
		quantitySpecified = *f.QuantitySpecified
	}

	if f.Type != TypeMarket {
		if f.Price.Sign() <= 0 {
			return nil, &ValidationError{Field: "price", Reason: "non-MARKET orders need a positive price"}
		}
	}

	o := &Order{
		ID:                f.ID,
		Owner:             f.Owner,
		Pair:              f.Pair,
		Token1:            f.Token1,
		Token2:            f.Token2,
		Side:              f.Side,
		Type:              f.Type,
		Status:            f.Status,
		Price:             f.Price,
		Quantity:          f.Quantity,
		Value:             f.Value,
		QuantityFulfilled: f.QuantityFulfilled,
		ValueFulfilled:    f.ValueFulfilled,
		QuantitySpecified: quantitySpecified,
		DateCreated:       f.DateCreated,
		DateCompleted:     f.DateCompleted,
	}

	if quantitySpecified {
		if o.Quantity.Sign() <= 0 {
			return nil, &ValidationError{Field: "quantity", Reason: "quantity must be specified for a quantity-denominated order"}
		}
		if o.Value.IsZero() && o.Type != TypeMarket {
			o.Value = o.Price.Mul(o.Quantity)
		}
	} else {
		if o.Value.Sign() <= 0 {
			return nil, &ValidationError{Field: "value", Reason: "value must be specified for a value-denominated order"}
		}
	}

	if o.QuantityFulfilled.Cmp(o.Quantity) > 0 {
		return nil, &ValidationError{Field: "quantityFulfilled", Reason: "fulfilled quantity exceeds order quantity"}
	}
	if !o.Value.IsZero() && o.ValueFulfilled.Cmp(o.Value) > 0 {
		return nil, &ValidationError{Field: "valueFulfilled", Reason: "fulfilled value exceeds order value"}
	}

	if o.ID == "" {
		o.ID = fmt.Sprintf("%s_%d-%s", o.Pair, o.DateCreated, uuid.NewString()[:8])
	} else if !strings.Contains(o.ID, "_") {
		o.ID = o.Pair + "_" + o.ID
	}

	return o, nil
}

// Unfulfilled returns the quantity still resting in the book.
func (o *Order) Unfulfilled() decimal.Decimal {
	return o.Quantity.Sub(o.QuantityFulfilled)
}

// Resting reports whether the order sits in the book awaiting fulfilment.
func (o *Order) Resting() bool { return o.Status == StatusPending }
