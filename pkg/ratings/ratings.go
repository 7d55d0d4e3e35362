// Package ratings converts raw analyst rating counts into a 0-100 buy score.
package ratings

// Counts holds raw analyst rating counts for one symbol.
type Counts struct {
	Buy  int `json:"num_buy_ratings"`
	Hold int `json:"num_hold_ratings"`
	Sell int `json:"num_sell_ratings"`
}

// Provider fetches analyst rating counts for a symbol. A (nil, nil) return
// means no rating data exists, which is not an error.
type Provider interface {
	AnalystRating(symbol string) (*Counts, error)
}

// BuyRating returns the percentage of ratings that are buys, 0-100.
// Missing data or a zero total is defined to score 0, never an error.
func BuyRating(c *Counts) float64 {
	if c == nil {
		return 0
	}
	total := c.Buy + c.Hold + c.Sell
	if total == 0 {
		return 0
	}
	return float64(c.Buy) / float64(total) * 100
}
