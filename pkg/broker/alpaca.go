package broker

import (
	"fmt"
	"sort"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockscan/pkg/history"
)

const acquiredAtFormat = "2006-01-02 15:04:05"

// Config carries the brokerage credentials.
type Config struct {
	APIKey    string
	APISecret string
	BaseURL   string
}

// Alpaca implements the brokerage collaborators against the Alpaca trading
// and market data APIs. Calls are blocking and synchronous; any failure is
// surfaced to the caller, which aborts the scan.
type Alpaca struct {
	trading *alpaca.Client
	market  *marketdata.Client
	logger  *zap.Logger
}

// NewAlpaca builds the adapter from API credentials.
func NewAlpaca(cfg Config, logger *zap.Logger) *Alpaca {
	return &Alpaca{
		trading: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    cfg.APIKey,
			APISecret: cfg.APISecret,
			BaseURL:   cfg.BaseURL,
		}),
		market: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    cfg.APIKey,
			APISecret: cfg.APISecret,
		}),
		logger: logger,
	}
}

// AccountProfile returns the account's total equity and available cash.
func (a *Alpaca) AccountProfile() (Profile, error) {
	account, err := a.trading.GetAccount()
	if err != nil {
		return Profile{}, fmt.Errorf("get account: %w", err)
	}
	equity, _ := account.Equity.Float64()
	cash, _ := account.Cash.Float64()
	return Profile{Equity: equity, Cash: cash}, nil
}

// Holdings returns the open positions keyed by symbol, each with its
// acquisition timestamp resolved from the order history. A position whose
// first fill cannot be found keeps the NotFoundSentinel.
func (a *Alpaca) Holdings() (map[string]Holding, error) {
	positions, err := a.trading.GetPositions()
	if err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}
	records, err := a.OpenPositionRecords()
	if err != nil {
		return nil, err
	}
	acquired := make(map[string]string, len(records))
	for _, r := range records {
		acquired[r.Symbol] = r.CreatedAt
	}

	holdings := make(map[string]Holding, len(positions))
	for _, p := range positions {
		qty, _ := p.Qty.Float64()
		costBasis, _ := p.AvgEntryPrice.Float64()
		at, ok := acquired[p.Symbol]
		if !ok {
			at = NotFoundSentinel
		}
		holdings[p.Symbol] = Holding{
			Symbol:     p.Symbol,
			Quantity:   qty,
			CostBasis:  costBasis,
			AcquiredAt: at,
		}
	}
	return holdings, nil
}

// OpenPositionRecords resolves when each currently open position was first
// filled, from the closed buy orders on the account.
func (a *Alpaca) OpenPositionRecords() ([]PositionRecord, error) {
	orders, err := a.trading.GetOrders(alpaca.GetOrdersRequest{
		Status: "closed",
		Limit:  500,
	})
	if err != nil {
		return nil, fmt.Errorf("get order history: %w", err)
	}

	earliest := make(map[string]time.Time)
	for _, o := range orders {
		if o.Side != alpaca.Buy || o.FilledAt == nil {
			continue
		}
		if at, ok := earliest[o.Symbol]; !ok || o.FilledAt.Before(at) {
			earliest[o.Symbol] = *o.FilledAt
		}
	}

	records := make([]PositionRecord, 0, len(earliest))
	for symbol, at := range earliest {
		records = append(records, PositionRecord{
			Symbol:    symbol,
			CreatedAt: at.Format(acquiredAtFormat),
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Symbol < records[j].Symbol })
	return records, nil
}

// WatchlistSymbols returns the symbols across all account watchlists.
func (a *Alpaca) WatchlistSymbols() ([]string, error) {
	lists, err := a.trading.GetWatchlists()
	if err != nil {
		return nil, fmt.Errorf("get watchlists: %w", err)
	}

	var symbols []string
	seen := make(map[string]bool)
	for _, l := range lists {
		list, err := a.trading.GetWatchlist(l.ID)
		if err != nil {
			return nil, fmt.Errorf("get watchlist %q: %w", l.Name, err)
		}
		for _, asset := range list.Assets {
			if seen[asset.Symbol] {
				continue
			}
			seen[asset.Symbol] = true
			symbols = append(symbols, asset.Symbol)
		}
	}
	return symbols, nil
}

// SubmitMarketOrder places a day market order for qty shares of symbol.
func (a *Alpaca) SubmitMarketOrder(symbol string, side Side, qty int64) error {
	orderSide := alpaca.Buy
	if side == Sell {
		orderSide = alpaca.Sell
	}
	shares := decimal.NewFromInt(qty)

	order, err := a.trading.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:        symbol,
		Qty:           &shares,
		Side:          orderSide,
		Type:          alpaca.Market,
		TimeInForce:   alpaca.Day,
		ClientOrderID: uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("place %s order for %s: %w", side, symbol, err)
	}
	a.logger.Info("order submitted",
		zap.String("symbol", symbol),
		zap.String("side", string(side)),
		zap.Int64("qty", qty),
		zap.String("order_id", order.ID),
	)
	return nil
}

// DailyHistory fetches one year of daily bars for symbol, regular trading
// hours, oldest first. It implements history.Source.
func (a *Alpaca) DailyHistory(symbol string) (history.Series, error) {
	bars, err := a.market.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.Split,
		Start:      time.Now().AddDate(-1, 0, 0),
	})
	if err != nil {
		return history.Series{}, fmt.Errorf("get daily bars for %s: %w", symbol, err)
	}

	points := make([]history.PricePoint, 0, len(bars))
	for _, b := range bars {
		points = append(points, history.PricePoint{Time: b.Timestamp, Close: b.Close})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return history.Series{Symbol: symbol, Points: points}, nil
}
