package exchange

import "github.com/shopspring/decimal"

// Fill is the raw result of walking the book: the base-token quantity and
// quote-token value a candidate order would consume, before fees.
type Fill struct {
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// Quote is the final pre-trade estimate for a market order: what the taker
// pays, what they receive, and the combined exchange fee, each tagged with
// its token.
type Quote struct {
	Pay          decimal.Decimal `json:"pay"`
	Receive      decimal.Decimal `json:"receive"`
	Fee          decimal.Decimal `json:"fee"`
	PayToken     string          `json:"payToken"`
	ReceiveToken string          `json:"receiveToken"`
	FeeToken     string          `json:"feeToken"`
}

// WalkBook simulates consuming the opposing-side book with a candidate order,
// best price first, stopping at priceLimit. Quoting is all-or-nothing: if the
// book cannot satisfy the full remaining demand within the limit the walk
// reports ErrInsufficientLiquidity rather than a partial fill. Every
// intermediate sum is rounded to the owning token's decimal precision so the
// walk is reproducible and matches the ledger precision the settlement tier
// enforces.
//
// The book must be ordered per DirectionFor(order.Side): ascending asks for a
// BUY, descending bids for a SELL.
func WalkBook(order *Order, book Book, priceLimit decimal.Decimal, t1dec, t2dec int32) (Fill, error) {
	var fill Fill

	remaining := order.Quantity
	if !order.QuantitySpecified {
		remaining = order.Value
	}

	for _, lvl := range book {
		if remaining.Sign() <= 0 {
			break
		}
		if !withinLimit(order.Side, lvl.Price, priceLimit) {
			break
		}
		// A non-positive price or negative level quantity means the
		// snapshot is unusable; refuse rather than quote nonsense.
		if lvl.Price.Sign() <= 0 {
			return Fill{}, ErrInsufficientLiquidity
		}
		qtyAtLevel := RoundTo(t1dec, lvl.Unfulfilled())
		if qtyAtLevel.Sign() < 0 {
			return Fill{}, ErrInsufficientLiquidity
		}
		if qtyAtLevel.IsZero() {
			continue
		}
		valueAtLevel := RoundTo(t2dec, qtyAtLevel.Mul(lvl.Price))

		if order.QuantitySpecified {
			if qtyAtLevel.Cmp(remaining) >= 0 {
				// Level satisfies the rest of the demand: take the
				// exact proportional value.
				fill.Quantity = RoundTo(t1dec, fill.Quantity.Add(remaining))
				fill.Value = RoundTo(t2dec, fill.Value.Add(RoundTo(t2dec, remaining.Mul(lvl.Price))))
				remaining = decimal.Zero
			} else {
				fill.Quantity = RoundTo(t1dec, fill.Quantity.Add(qtyAtLevel))
				fill.Value = RoundTo(t2dec, fill.Value.Add(valueAtLevel))
				remaining = RoundTo(t1dec, remaining.Sub(qtyAtLevel))
			}
		} else {
			if valueAtLevel.Cmp(remaining) >= 0 {
				qty := RoundTo(t1dec, remaining.Div(lvl.Price))
				fill.Quantity = RoundTo(t1dec, fill.Quantity.Add(qty))
				fill.Value = RoundTo(t2dec, fill.Value.Add(remaining))
				remaining = decimal.Zero
			} else {
				fill.Quantity = RoundTo(t1dec, fill.Quantity.Add(qtyAtLevel))
				fill.Value = RoundTo(t2dec, fill.Value.Add(valueAtLevel))
				remaining = RoundTo(t2dec, remaining.Sub(valueAtLevel))
			}
		}
	}

	if remaining.Sign() > 0 {
		return Fill{}, ErrInsufficientLiquidity
	}
	return fill, nil
}

// withinLimit reports whether a level price still qualifies: a BUY walks asks
// upward until price exceeds the limit, a SELL walks bids downward until price
// drops below it.
func withinLimit(side Side, price, limit decimal.Decimal) bool {
	if side == SideBuy {
		return price.Cmp(limit) <= 0
	}
	return price.Cmp(limit) >= 0
}

// ApplyFees post-processes a raw fill into payer/receiver amounts net of the
// pair's combined liquidity and platform fee. The fee is charged in the quote
// token for quantity-denominated orders and in the base token for
// value-denominated ones; amounts are rounded to the relevant token's
// precision immediately after each computation.
func ApplyFees(order *Order, fill Fill, pair *Pair) (*Quote, error) {
	if order.Type != TypeMarket {
		return nil, ErrNotMarketOrder
	}

	rate := pair.FeeRate()
	q := &Quote{}

	if order.QuantitySpecified {
		q.Fee = RoundTo(pair.Token2Decimals, fill.Value.Mul(rate))
		q.FeeToken = pair.Token2
		if order.Side == SideBuy {
			// Buyer pays value plus fee in token2, receives the quantity.
			q.Pay = RoundTo(pair.Token2Decimals, fill.Value.Add(q.Fee))
			q.PayToken = pair.Token2
			q.Receive = fill.Quantity
			q.ReceiveToken = pair.Token1
		} else {
			// Seller gives up the quantity, receives value net of fee.
			q.Pay = fill.Quantity
			q.PayToken = pair.Token1
			q.Receive = RoundTo(pair.Token2Decimals, fill.Value.Sub(q.Fee))
			q.ReceiveToken = pair.Token2
		}
	} else {
		q.Fee = RoundTo(pair.Token1Decimals, fill.Quantity.Mul(rate))
		q.FeeToken = pair.Token1
		if order.Side == SideBuy {
			// Buyer pays the stated value, receives quantity net of fee.
			q.Pay = fill.Value
			q.PayToken = pair.Token2
			q.Receive = RoundTo(pair.Token1Decimals, fill.Quantity.Sub(q.Fee))
			q.ReceiveToken = pair.Token1
		} else {
			// Seller gives up quantity plus fee, receives the value.
			q.Pay = RoundTo(pair.Token1Decimals, fill.Quantity.Add(q.Fee))
			q.PayToken = pair.Token1
			q.Receive = fill.Value
			q.ReceiveToken = pair.Token2
		}
	}

	return q, nil
}

// ComputeQuote is the primary entry point: walk the opposing book with the
// candidate MARKET order, then apply the pair's fee policy. A stated order
// price acts as the price limit; without one the walk may consume the whole
// book, so the farthest level's price is used as the limit.
func ComputeQuote(order *Order, book Book, pair *Pair) (*Quote, error) {
	if order.Type != TypeMarket {
		return nil, ErrNotMarketOrder
	}

	priceLimit := order.Price
	if priceLimit.Sign() <= 0 && len(book) > 0 {
		priceLimit = book[len(book)-1].Price
	}

	fill, err := WalkBook(order, book, priceLimit, pair.Token1Decimals, pair.Token2Decimals)
	if err != nil {
		return nil, err
	}
	return ApplyFees(order, fill, pair)
}
