package exchange

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TimeSlice is one OHLC candle for a pair.
type TimeSlice struct {
	StartTime    int64           `json:"startTime"` // unix milliseconds
	Open         decimal.Decimal `json:"open"`
	Close        decimal.Decimal `json:"close"`
	High         decimal.Decimal `json:"high"`
	Low          decimal.Decimal `json:"low"`
	Token1Volume decimal.Decimal `json:"token1Volume"`
	Token2Volume decimal.Decimal `json:"token2Volume"`
	NoOfTrades   int64           `json:"noOfTrades"`
}

// DefaultTimeSliceMinutes is the candle duration used when none is configured.
const DefaultTimeSliceMinutes = 15

// TimeSliceStart returns the bucket start for a unix-millisecond timestamp
// given the slice duration in minutes.
func TimeSliceStart(date int64, minutes int64) int64 {
	if minutes <= 0 {
		minutes = DefaultTimeSliceMinutes
	}
	size := minutes * 60 * 1000
	return date - (date % size)
}

// Pair is the static/semi-static configuration of one market. It is supplied
// by the external data source and read-only to the quote engine.
type Pair struct {
	Code           string          `json:"code"` // e.g. "ABC-XYZ"
	Token1         string          `json:"token1"`
	Token2         string          `json:"token2"`
	Token1Decimals int32           `json:"token1Decimals"`
	Token2Decimals int32           `json:"token2Decimals"`
	LiquidityFee   decimal.Decimal `json:"liquidityFee"` // fractional rate
	PlatformFee    decimal.Decimal `json:"platformFee"`  // fractional rate

	LatestTimeSlice TimeSlice `json:"latestTimeSlice"`
}

// PairFields is the raw input to NewPair.
type PairFields struct {
	Code           string
	Token1         string
	Token2         string
	Token1Decimals int32
	Token2Decimals int32
	LiquidityFee   decimal.Decimal
	PlatformFee    decimal.Decimal

	LatestTimeSlice TimeSlice
}

// NewPair validates fields and builds a Pair. token1 and token2 are required.
func NewPair(f PairFields) (*Pair, error) {
	if f.Token1 == "" {
		return nil, requiredField("token1")
	}
	if f.Token2 == "" {
		return nil, requiredField("token2")
	}
	if f.Token1Decimals < 0 {
		return nil, &ValidationError{Field: "token1Decimals", Reason: "decimals cannot be negative"}
	}
	if f.Token2Decimals < 0 {
		return nil, &ValidationError{Field: "token2Decimals", Reason: "decimals cannot be negative"}
	}
	if f.LiquidityFee.Sign() < 0 || f.PlatformFee.Sign() < 0 {
		return nil, &ValidationError{Field: "liquidityFee", Reason: "fee rates cannot be negative"}
	}

	code := f.Code
	if code == "" {
		code = f.Token1 + "-" + f.Token2
	}

	return &Pair{
		Code:            code,
		Token1:          f.Token1,
		Token2:          f.Token2,
		Token1Decimals:  f.Token1Decimals,
		Token2Decimals:  f.Token2Decimals,
		LiquidityFee:    f.LiquidityFee,
		PlatformFee:     f.PlatformFee,
		LatestTimeSlice: f.LatestTimeSlice,
	}, nil
}

// FeeRate is the combined fractional fee applied to market-order fills.
func (p *Pair) FeeRate() decimal.Decimal {
	return p.LiquidityFee.Add(p.PlatformFee)
}

// TokenFromPair extracts the nth token identifier (1 or 2) from a pair code
// of the form "AAA-BBB".
func TokenFromPair(code string, n int) string {
	parts := strings.SplitN(code, "-", 2)
	if n == 1 {
		return parts[0]
	}
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
