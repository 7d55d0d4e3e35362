package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockscan/pkg/strategy"
)

func sampleSignals() []strategy.Signal {
	return []strategy.Signal{
		{Symbol: "AAPL", Price: 189.5, Bullish: true, RSI: 41.2, MACD: 0.8, BuyRating: 80},
		{Symbol: "XOM", Price: 250, Bullish: false, RSI: 72.4, MACD: -2.1, BuyRating: 40},
	}
}

func TestRenderScanTable(t *testing.T) {
	out := &bytes.Buffer{}
	RenderScanTable(out, "PORTFOLIO AND UNIVERSE", sampleSignals())

	assert.Contains(t, out.String(), "PORTFOLIO AND UNIVERSE")
	assert.Contains(t, out.String(), "SYMBOL")
	assert.Contains(t, out.String(), "AAPL")
	assert.Contains(t, out.String(), "$189.50")
	assert.Contains(t, out.String(), "XOM")
}

func TestRenderWatchTable(t *testing.T) {
	out := &bytes.Buffer{}
	RenderWatchTable(out, sampleSignals())

	// Only AAPL passes the watch filter; XOM fails on price and RSI.
	assert.Contains(t, out.String(), "STOCKS TO CHECK OUT")
	assert.Contains(t, out.String(), "AAPL")
	assert.NotContains(t, out.String(), "XOM")
}

func TestRenderWatchTable_EmptyStillPrintsHeader(t *testing.T) {
	out := &bytes.Buffer{}
	RenderWatchTable(out, nil)

	assert.Contains(t, out.String(), "STOCKS TO CHECK OUT")
}

func TestDumpSignals(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, DumpSignals(out, sampleSignals()))

	var decoded []strategy.Signal
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, sampleSignals(), decoded)
	assert.Contains(t, out.String(), "\"symbol\": \"AAPL\"")
}
