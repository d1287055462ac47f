package exchange

import "github.com/shopspring/decimal"

// RoundTo rounds n to the given number of decimal places, rounding halves
// away from zero. Every monetary sum in the quote walk goes through this so
// intermediate results stay at the owning token's ledger precision.
func RoundTo(digits int32, n decimal.Decimal) decimal.Decimal {
	return n.Round(digits)
}

// RoundToInt coerces n to a whole number (e.g. normalizing a requested
// depth limit supplied as a fractional value).
func RoundToInt(n decimal.Decimal) int64 {
	return RoundTo(0, n).IntPart()
}
