// Package scan wires the collaborators into the single "run scan" pipeline:
// evaluate holdings for sells, the symbol universe for buys, size the buys,
// submit orders, record realized trades, and render the report.
package scan

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockscan/pkg/broker"
	"stockscan/pkg/history"
	"stockscan/pkg/indicator"
	"stockscan/pkg/ledger"
	"stockscan/pkg/report"
	"stockscan/pkg/ratings"
	"stockscan/pkg/strategy"
)

// Broker is the brokerage surface the scanner consumes.
type Broker interface {
	AccountProfile() (broker.Profile, error)
	Holdings() (map[string]broker.Holding, error)
	WatchlistSymbols() ([]string, error)
	SubmitMarketOrder(symbol string, side broker.Side, qty int64) error
}

// Universe supplies the candidate symbols scanned for buys.
type Universe interface {
	ConstituentSymbols() ([]string, error)
}

// Scanner runs one full portfolio scan. Execution is fully sequential; a
// collaborator failure aborts the run with no retry, since trading on
// partial data is worse than not trading.
type Scanner struct {
	Broker   Broker
	Universe Universe
	Ratings  ratings.Provider
	History  *history.Cache
	Ledger   *ledger.Ledger
	Logger   *zap.Logger
	Out      io.Writer

	ShortWindow int
	LongWindow  int

	// Debug computes and reports all signals but suppresses order
	// submission and ledger writes.
	Debug bool
}

// Run executes the scan. Symbols with insufficient price history are
// skipped; any other collaborator failure is fatal.
func (s *Scanner) Run() error {
	if s.Debug {
		fmt.Fprint(s.Out, "----- DEBUG MODE -----\n\n")
	}
	fmt.Fprint(s.Out, "----- Starting scan... -----\n\n")

	holdings, err := s.Broker.Holdings()
	if err != nil {
		return fmt.Errorf("fetch portfolio: %w", err)
	}
	portfolioSymbols := make([]string, 0, len(holdings))
	for symbol := range holdings {
		portfolioSymbols = append(portfolioSymbols, symbol)
	}
	sort.Strings(portfolioSymbols)
	fmt.Fprintf(s.Out, "Current Portfolio: %v\n\n", portfolioSymbols)

	universe, err := s.universeSymbols()
	if err != nil {
		return err
	}

	var signals []strategy.Signal
	var sells []ledger.Entry

	fmt.Fprint(s.Out, "----- Scanning portfolio for stocks to sell -----\n\n")
	for _, symbol := range portfolioSymbols {
		sig, ok, err := s.evaluate(symbol)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		signals = append(signals, sig)

		if strategy.Classify(sig, true) != strategy.ActionSell {
			continue
		}
		holding := holdings[symbol]
		shares := int64(holding.Quantity)
		if shares <= 0 {
			s.Logger.Warn("sell signal on fractional-only position, skipping",
				zap.String("symbol", symbol), zap.Float64("quantity", holding.Quantity))
			continue
		}
		fmt.Fprintf(s.Out, "####### Selling %d shares of %s #######\n", shares, symbol)
		if !s.Debug {
			if err := s.Broker.SubmitMarketOrder(symbol, broker.Sell, shares); err != nil {
				return err
			}
		}
		sells = append(sells, ledger.NewEntry(
			symbol,
			shares,
			holding.AcquiredAt,
			decimal.NewFromFloat(holding.CostBasis),
			decimal.NewFromFloat(sig.Price),
		))
	}

	profile, err := s.Broker.AccountProfile()
	if err != nil {
		return fmt.Errorf("fetch account profile: %w", err)
	}

	fmt.Fprint(s.Out, "\n----- Scanning universe for stocks to buy -----\n\n")
	var candidates []strategy.Candidate
	for _, symbol := range universe {
		if _, held := holdings[symbol]; held {
			continue
		}
		sig, ok, err := s.evaluate(symbol)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		signals = append(signals, sig)

		if strategy.Classify(sig, false) == strategy.ActionBuy {
			candidates = append(candidates, strategy.Candidate{Symbol: sig.Symbol, Price: sig.Price})
		}
	}

	if len(candidates) > 0 {
		if err := s.placeBuys(profile, len(holdings), candidates); err != nil {
			return err
		}
	}

	if len(sells) > 0 && !s.Debug {
		if err := s.Ledger.Append(sells...); err != nil {
			return fmt.Errorf("record sells: %w", err)
		}
	}

	fmt.Fprint(s.Out, "\n----- Scan over -----\n")
	report.RenderScanTable(s.Out, "PORTFOLIO AND UNIVERSE", signals)
	report.RenderWatchTable(s.Out, signals)
	if s.Debug {
		fmt.Fprint(s.Out, "\n")
		if err := report.DumpSignals(s.Out, signals); err != nil {
			return err
		}
		fmt.Fprint(s.Out, "----- DEBUG MODE -----\n")
	}
	return nil
}

// universeSymbols merges the account watchlists with the index
// constituents, preserving order and dropping duplicates.
func (s *Scanner) universeSymbols() ([]string, error) {
	watchlist, err := s.Broker.WatchlistSymbols()
	if err != nil {
		return nil, fmt.Errorf("fetch watchlist symbols: %w", err)
	}
	constituents, err := s.Universe.ConstituentSymbols()
	if err != nil {
		return nil, fmt.Errorf("fetch index symbols: %w", err)
	}

	seen := make(map[string]bool)
	var merged []string
	for _, symbol := range append(watchlist, constituents...) {
		if seen[symbol] {
			continue
		}
		seen[symbol] = true
		merged = append(merged, symbol)
	}
	s.Logger.Info("symbol universe assembled",
		zap.Int("watchlist", len(watchlist)),
		zap.Int("index", len(constituents)),
		zap.Int("total", len(merged)),
	)
	return merged, nil
}

// evaluate computes the full signal for one symbol. ok is false when the
// symbol's history is too short for the configured windows; the symbol is
// then excluded from decisions rather than crashing the run.
func (s *Scanner) evaluate(symbol string) (strategy.Signal, bool, error) {
	series, err := s.History.Get(symbol)
	if err != nil {
		return strategy.Signal{}, false, err
	}
	closes := series.Closes()

	bullish, err := indicator.Crossover(closes, s.ShortWindow, s.LongWindow)
	if err != nil {
		return s.skipIfShort(symbol, err)
	}
	rsi, err := indicator.RSI(closes, indicator.DefaultRSIPeriod)
	if err != nil {
		return s.skipIfShort(symbol, err)
	}
	macd, err := indicator.MACDHistogram(closes)
	if err != nil {
		return s.skipIfShort(symbol, err)
	}
	counts, err := s.Ratings.AnalystRating(symbol)
	if err != nil {
		return strategy.Signal{}, false, err
	}

	return strategy.Signal{
		Symbol:    symbol,
		Price:     series.LastClose(),
		Bullish:   bullish,
		RSI:       rsi,
		MACD:      macd,
		BuyRating: ratings.BuyRating(counts),
	}, true, nil
}

func (s *Scanner) skipIfShort(symbol string, err error) (strategy.Signal, bool, error) {
	if errors.Is(err, indicator.ErrInsufficientHistory) {
		s.Logger.Warn("skipping symbol", zap.String("symbol", symbol), zap.Error(err))
		return strategy.Signal{}, false, nil
	}
	return strategy.Signal{}, false, err
}

// placeBuys sizes the candidates and submits the resulting orders.
func (s *Scanner) placeBuys(profile broker.Profile, holdingsCount int, candidates []strategy.Candidate) error {
	allocations, unaffordable := strategy.SizePositions(profile.Equity, profile.Cash, holdingsCount, candidates)
	for _, alloc := range allocations {
		fmt.Fprintf(s.Out, "####### Buying %d shares of %s #######\n", alloc.Shares, alloc.Symbol)
		if s.Debug {
			continue
		}
		if err := s.Broker.SubmitMarketOrder(alloc.Symbol, broker.Buy, alloc.Shares); err != nil {
			return err
		}
	}
	if unaffordable != "" {
		fmt.Fprintf(s.Out, "####### Tried buying shares of %s, but not enough buying power to do so #######\n", unaffordable)
	}
	return nil
}
