package api

import (
	"github.com/shopspring/decimal"

	"github.com/avandersen/tokex/pkg/exchange"
)

// API request/response types for REST endpoints and WebSocket messages

// ==============================
// REST Response Types
// ==============================

// PairInfo represents a pair's static configuration.
type PairInfo struct {
	Code           string          `json:"code"`   // e.g. "ABC-XYZ"
	Token1         string          `json:"token1"` // base token
	Token2         string          `json:"token2"` // quote token
	Token1Decimals int32           `json:"token1Decimals"`
	Token2Decimals int32           `json:"token2Decimals"`
	LiquidityFee   decimal.Decimal `json:"liquidityFee"`
	PlatformFee    decimal.Decimal `json:"platformFee"`
}

// DepthSnapshot represents the aggregated depth-of-market for a pair.
// Bids are sorted high to low, asks low to high (best price first on both
// sides). It is a point-in-time estimate over an eventually-consistent
// snapshot, not a linearizable view.
type DepthSnapshot struct {
	Pair      string                    `json:"pair"`
	Bids      []exchange.AggregateEntry `json:"bids"`
	Asks      []exchange.AggregateEntry `json:"asks"`
	Timestamp int64                     `json:"timestamp"` // unix milliseconds
}

// TradeInfo represents a historical settlement record.
type TradeInfo struct {
	ID       string          `json:"id"`
	Pair     string          `json:"pair"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	FeePayer string          `json:"feePayer"`
	Date     int64           `json:"date"` // unix milliseconds
}

// QuoteResponse is the pre-trade estimate returned for a candidate order.
type QuoteResponse struct {
	Pair         string          `json:"pair"`
	Side         string          `json:"side"`
	Pay          decimal.Decimal `json:"pay"`
	Receive      decimal.Decimal `json:"receive"`
	Fee          decimal.Decimal `json:"fee"`
	PayToken     string          `json:"payToken"`
	ReceiveToken string          `json:"receiveToken"`
	FeeToken     string          `json:"feeToken"`
	Timestamp    int64           `json:"timestamp"` // snapshot time, unix ms
}

// OrderResponse echoes a persisted order back to the submitter.
type OrderResponse struct {
	ID          string          `json:"id"`
	Pair        string          `json:"pair"`
	Side        string          `json:"side"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Price       decimal.Decimal `json:"price"`
	Quantity    decimal.Decimal `json:"quantity"`
	Value       decimal.Decimal `json:"value"`
	DateCreated int64           `json:"dateCreated"`
}

// ErrorResponse is returned for all errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ==============================
// REST Request Types
// ==============================

// QuoteRequest is the payload for POST /api/v1/pairs/{code}/quote.
// Exactly one of quantity/value carries the order size depending on
// quantitySpecified (defaults to true). PriceLimit is optional; without it
// the walk may consume the whole opposing book.
type QuoteRequest struct {
	Owner             string          `json:"owner"`
	Side              string          `json:"side"` // "BUY" or "SELL"
	Quantity          decimal.Decimal `json:"quantity"`
	Value             decimal.Decimal `json:"value"`
	QuantitySpecified *bool           `json:"quantitySpecified"`
	PriceLimit        decimal.Decimal `json:"priceLimit"`
}

// OrderRequest is the payload for POST /api/v1/orders. The service only
// persists the order; matching and status transitions belong to the external
// settlement service.
type OrderRequest struct {
	Pair              string          `json:"pair"`
	Owner             string          `json:"owner"`
	Side              string          `json:"side"`
	Type              string          `json:"type"` // "MARKET", "LIMIT", "LIMIT-ONLY"
	Price             decimal.Decimal `json:"price"`
	Quantity          decimal.Decimal `json:"quantity"`
	Value             decimal.Decimal `json:"value"`
	QuantitySpecified *bool           `json:"quantitySpecified"`
}

// ==============================
// WebSocket Message Types
// ==============================

// WSSubscribeRequest is sent by a client to manage channel subscriptions.
type WSSubscribeRequest struct {
	Op       string   `json:"op"`       // "subscribe" or "unsubscribe"
	Channels []string `json:"channels"` // e.g. ["depth:ABC-XYZ"]
}

// DepthUpdate is broadcast on a "depth:<pair>" channel after book writes.
type DepthUpdate struct {
	Type      string                    `json:"type"` // "depth"
	Pair      string                    `json:"pair"`
	Bids      []exchange.AggregateEntry `json:"bids"`
	Asks      []exchange.AggregateEntry `json:"asks"`
	Timestamp int64                     `json:"timestamp"`
}
