package exchange

import (
	"errors"
	"fmt"
)

// ErrInsufficientLiquidity is returned when the opposing book cannot satisfy
// the full requested quantity or value within the price limit. It is an
// expected outcome ("no quote available now"), not a fault: callers decide
// whether to retry against a fresher snapshot.
var ErrInsufficientLiquidity = errors.New("insufficient liquidity to fill order")

// ErrNotMarketOrder is returned when a quote is requested for a non-MARKET
// order. Quotes and fees are only defined for market orders.
var ErrNotMarketOrder = errors.New("quotes are only computed for MARKET orders")

// ErrPairNotFound is returned by the pair registry for unknown pair codes.
var ErrPairNotFound = errors.New("pair not found")

// ValidationError reports the first missing or inconsistent field encountered
// while constructing an entity.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func requiredField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required field is missing"}
}
