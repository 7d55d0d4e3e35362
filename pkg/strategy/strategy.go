// Package strategy holds the pure classification and sizing rules. No I/O
// happens here, which keeps the decisions unit-testable without a brokerage.
package strategy

// Signal carries the computed indicators for one symbol in one scan.
type Signal struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Bullish   bool    `json:"bullish"`
	RSI       float64 `json:"rsi"`
	MACD      float64 `json:"macd"`
	BuyRating float64 `json:"buy_rating"`
}

// Action is the per-symbol outcome of a scan.
type Action string

const (
	ActionHold Action = "hold"
	ActionSell Action = "sell"
	ActionBuy  Action = "buy"
)

// Classify decides what to do with a symbol. A held symbol is only ever
// evaluated for selling and a non-held one only for buying, so the sell and
// buy sets of a scan are disjoint by construction.
func Classify(sig Signal, held bool) Action {
	if held {
		if !sig.Bullish {
			return ActionSell
		}
		return ActionHold
	}
	if sig.Bullish {
		return ActionBuy
	}
	return ActionHold
}

// Watchable reports whether a signal passes the informational watch filter.
// The filter does not feed back into buy or sell decisions.
func Watchable(sig Signal) bool {
	return sig.RSI < 45 &&
		sig.Price < 200 &&
		sig.MACD > -1 &&
		sig.BuyRating >= 70 &&
		sig.Bullish
}
