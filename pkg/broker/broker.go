// Package broker adapts the brokerage API to the typed records the scan
// core consumes. All validation of the wire data happens here.
package broker

// Side is the direction of a market order.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// NotFoundSentinel is recorded when a holding's acquisition timestamp
// cannot be resolved from the position records.
const NotFoundSentinel = "Not found"

// Profile holds the account figures the position sizer needs.
type Profile struct {
	Equity float64
	Cash   float64
}

// Holding is one open position, with its acquisition time resolved by
// matching against the account's position records.
type Holding struct {
	Symbol     string
	Quantity   float64
	CostBasis  float64 // average per-share buy price
	AcquiredAt string  // NotFoundSentinel when unresolvable
}

// PositionRecord links a symbol to the time its position was opened.
type PositionRecord struct {
	Symbol    string
	CreatedAt string
}
