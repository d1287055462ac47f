package exchange

import "github.com/shopspring/decimal"

// FeePayer identifies which party of a trade the fee was charged to.
type FeePayer string

const (
	FeePayerBuyer  FeePayer = "BUYER"
	FeePayerSeller FeePayer = "SELLER"
)

// Trade is a historical settlement record between two orders. Trades are
// produced by the external matching service; this package only reads them
// for reporting.
type Trade struct {
	ID          string          `json:"id"`
	Pair        string          `json:"pair"`
	Buyer       string          `json:"buyer"`
	BuyOrderID  string          `json:"buyOrderId"`
	Seller      string          `json:"seller"`
	SellOrderID string          `json:"sellOrderId"`
	Token1      string          `json:"token1"`
	Token2      string          `json:"token2"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`

	FeePayer     FeePayer        `json:"feePayer"`
	FeeToken     string          `json:"feeToken"`
	LiquidityFee decimal.Decimal `json:"liquidityFee"`
	PlatformFee  decimal.Decimal `json:"platformFee"`

	Date    int64    `json:"date"` // unix milliseconds
	Parties []string `json:"parties"`
}

// TradeFields is the raw input to NewTrade.
type TradeFields struct {
	ID          string
	Pair        string
	Buyer       string
	BuyOrderID  string
	Seller      string
	SellOrderID string
	Token1      string
	Token2      string
	Quantity    decimal.Decimal
	Price       decimal.Decimal

	FeePayer     FeePayer
	FeeToken     string
	LiquidityFee decimal.Decimal
	PlatformFee  decimal.Decimal

	Date    int64
	Parties []string
}

// NewTrade validates fields and builds a Trade. Parties defaults to the
// buyer/seller pair when not supplied.
func NewTrade(f TradeFields) (*Trade, error) {
	if f.Buyer == "" {
		return nil, requiredField("buyer")
	}
	if f.BuyOrderID == "" {
		return nil, requiredField("buyOrderId")
	}
	if f.Seller == "" {
		return nil, requiredField("seller")
	}
	if f.SellOrderID == "" {
		return nil, requiredField("sellOrderId")
	}
	if f.Token1 == "" {
		return nil, requiredField("token1")
	}
	if f.Token2 == "" {
		return nil, requiredField("token2")
	}
	if f.Quantity.Sign() <= 0 {
		return nil, requiredField("quantity")
	}
	if f.FeePayer == "" {
		return nil, requiredField("feePayer")
	}

	t := &Trade{
		ID:           f.ID,
		Pair:         f.Pair,
		Buyer:        f.Buyer,
		BuyOrderID:   f.BuyOrderID,
		Seller:       f.Seller,
		SellOrderID:  f.SellOrderID,
		Token1:       f.Token1,
		Token2:       f.Token2,
		Quantity:     f.Quantity,
		Price:        f.Price,
		FeePayer:     f.FeePayer,
		FeeToken:     f.FeeToken,
		LiquidityFee: f.LiquidityFee,
		PlatformFee:  f.PlatformFee,
		Date:         f.Date,
		Parties:      f.Parties,
	}
	if len(t.Parties) == 0 {
		t.Parties = []string{t.Buyer, t.Seller}
	}
	return t, nil
}
