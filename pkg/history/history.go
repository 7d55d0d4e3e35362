package history

import (
	"fmt"
	"time"
)

// PricePoint is a single daily close for a symbol.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`
}

// Series holds one year of daily closes for a symbol, oldest first.
type Series struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Closes returns the closing prices in time order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// LastClose returns the most recent closing price, or 0 for an empty series.
func (s Series) LastClose() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Close
}

// Source fetches daily price history for a symbol.
type Source interface {
	DailyHistory(symbol string) (Series, error)
}

// Cache memoizes price history per symbol for the duration of one scan run.
// It is built fresh at process start and never refreshed mid-run.
type Cache struct {
	source  Source
	entries map[string]Series
}

// NewCache wraps a Source with a per-run memo table.
func NewCache(source Source) *Cache {
	return &Cache{
		source:  source,
		entries: make(map[string]Series),
	}
}

// Get returns the cached series for symbol, fetching it on first use.
func (c *Cache) Get(symbol string) (Series, error) {
	if series, ok := c.entries[symbol]; ok {
		return series, nil
	}
	series, err := c.source.DailyHistory(symbol)
	if err != nil {
		return Series{}, fmt.Errorf("fetch history for %s: %w", symbol, err)
	}
	c.entries[symbol] = series
	return series, nil
}

// Len reports how many symbols have been fetched so far.
func (c *Cache) Len() int {
	return len(c.entries)
}
