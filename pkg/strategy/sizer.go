package strategy

import "math"

// Candidate is a buy-candidate symbol with its latest price.
type Candidate struct {
	Symbol string
	Price  float64
}

// Allocation is a sized buy order: how many whole shares of a symbol to buy.
type Allocation struct {
	Symbol string
	Shares int64
}

// SizePositions allocates buy quantities across candidates given account
// equity, cash, and the number of current holdings.
//
// The target dollar allocation per new position blends the average existing
// position size with available cash, halved to avoid over-concentration:
//
//	ideal = (portfolioValue/max(H,1) + cash/B) / (2*B)
//
// Candidates are processed in input order. Once one candidate's price
// exceeds 1.5x the ideal size, it and every later candidate are skipped,
// even if a later one would have been affordable. That stop-not-skip policy
// is kept for compatibility with prior behavior; unaffordable names the
// candidate that triggered it, or "" if none did. Share counts are floored
// and zero-share allocations are suppressed.
func SizePositions(equity, cash float64, holdingsCount int, candidates []Candidate) (allocations []Allocation, unaffordable string) {
	if len(candidates) == 0 {
		return nil, ""
	}

	portfolioValue := equity - cash
	h := holdingsCount
	if h < 1 {
		h = 1
	}
	b := float64(len(candidates))
	ideal := (portfolioValue/float64(h) + cash/b) / (2 * b)

	for _, c := range candidates {
		var shares int64
		switch {
		case ideal < c.Price && c.Price < ideal*1.5:
			shares = int64(math.Floor(ideal * 1.5 / c.Price))
		case c.Price < ideal:
			shares = int64(math.Floor(ideal / c.Price))
		default:
			return allocations, c.Symbol
		}
		if shares == 0 {
			continue
		}
		allocations = append(allocations, Allocation{Symbol: c.Symbol, Shares: shares})
	}
	return allocations, ""
}
