// Package report renders the scan results as console tables. Pure
// formatting: the color thresholds are cosmetic and not part of any
// decision rule.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/tidwall/pretty"

	"stockscan/pkg/strategy"
)

// RenderScanTable writes the full table of evaluated symbols in scan order.
func RenderScanTable(w io.Writer, title string, signals []strategy.Signal) {
	fmt.Fprintf(w, "\n%s\n-------------------\n\n", title)
	renderTable(w, signals)
}

// RenderWatchTable writes the filtered table of symbols passing the watch
// filter, under the same columns as the full table.
func RenderWatchTable(w io.Writer, signals []strategy.Signal) {
	var watch []strategy.Signal
	for _, sig := range signals {
		if strategy.Watchable(sig) {
			watch = append(watch, sig)
		}
	}
	fmt.Fprint(w, "\nSTOCKS TO CHECK OUT\n-------------------\n\n")
	renderTable(w, watch)
}

func renderTable(w io.Writer, signals []strategy.Signal) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tPRICE\tRSI\tMACD\tRATING\tEMA")
	for _, sig := range signals {
		fmt.Fprintf(tw, "%s\t$%.2f\t%s\t%s\t%s\t%s\n",
			sig.Symbol,
			sig.Price,
			rsiCell(sig.RSI),
			macdCell(sig.MACD),
			ratingCell(sig.BuyRating),
			crossCell(sig.Bullish),
		)
	}
	tw.Flush()
}

// DumpSignals writes the signals as prettified JSON, used by debug mode.
func DumpSignals(w io.Writer, signals []strategy.Signal) error {
	data, err := json.Marshal(signals)
	if err != nil {
		return fmt.Errorf("marshal signals: %w", err)
	}
	_, err = w.Write(pretty.Pretty(data))
	return err
}

func rsiCell(rsi float64) string {
	switch {
	case rsi <= 30:
		return color.GreenString("%.2f", rsi)
	case rsi >= 70:
		return color.RedString("%.2f", rsi)
	default:
		return fmt.Sprintf("%.2f", rsi)
	}
}

func macdCell(macd float64) string {
	if macd > 0 {
		return color.GreenString("%.2f", macd)
	}
	return color.RedString("%.2f", macd)
}

func ratingCell(rating float64) string {
	if rating >= 70 {
		return color.GreenString("%.0f", rating)
	}
	return color.RedString("%.0f", rating)
}

func crossCell(bullish bool) string {
	if bullish {
		return color.GreenString("Bullish")
	}
	return color.RedString("Bearish")
}
