package indicator

import (
	"errors"
	"fmt"
)

// ErrInsufficientHistory is returned when a series has fewer points than an
// indicator needs. Callers skip the symbol rather than abort the whole scan.
var ErrInsufficientHistory = errors.New("insufficient history")

// Default windows. The MA pair is configurable from the CLI; the RSI and
// MACD windows are fixed constants.
const (
	DefaultShortWindow = 50
	DefaultLongWindow  = 200
	DefaultRSIPeriod   = 14

	macdFastWindow   = 12
	macdSlowWindow   = 26
	macdSignalWindow = 9
)

// emaSeries computes the exponential moving average of closes with smoothing
// factor 2/(window+1), seeded by the simple average of the first window
// observations. The returned slice has len(closes)-window+1 values; value i
// corresponds to closes index window-1+i.
func emaSeries(closes []float64, window int) []float64 {
	alpha := 2.0 / (float64(window) + 1.0)

	seed := 0.0
	for _, c := range closes[:window] {
		seed += c
	}
	seed /= float64(window)

	out := make([]float64, 0, len(closes)-window+1)
	out = append(out, seed)
	prev := seed
	for _, c := range closes[window:] {
		prev = alpha*c + (1-alpha)*prev
		out = append(out, prev)
	}
	return out
}

// EMA returns the latest exponential moving average of closes over window.
func EMA(closes []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("ema window must be positive, got %d", window)
	}
	if len(closes) < window {
		return 0, fmt.Errorf("ema(%d) needs %d closes, have %d: %w", window, window, len(closes), ErrInsufficientHistory)
	}
	series := emaSeries(closes, window)
	return series[len(series)-1], nil
}

// Crossover reports whether the short EMA is currently above the long EMA.
// Equal EMAs count as bearish: the cross is bullish only on a strict >.
// The short window must be smaller than the long window to be meaningful;
// that is the caller's responsibility.
func Crossover(closes []float64, short, long int) (bool, error) {
	shortEMA, err := EMA(closes, short)
	if err != nil {
		return false, err
	}
	longEMA, err := EMA(closes, long)
	if err != nil {
		return false, err
	}
	return shortEMA > longEMA, nil
}

// RSI computes the Wilder-smoothed relative strength index over period.
// The result is always in [0, 100].
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("rsi period must be positive, got %d", period)
	}
	if len(closes) < period+1 {
		return 0, fmt.Errorf("rsi(%d) needs %d closes, have %d: %w", period, period+1, len(closes), ErrInsufficientHistory)
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}

// MACDHistogram returns the latest value of the MACD histogram: the 12/26
// EMA difference minus its 9-period signal EMA. Needs at least 34 closes.
func MACDHistogram(closes []float64) (float64, error) {
	minLen := macdSlowWindow + macdSignalWindow - 1
	if len(closes) < minLen {
		return 0, fmt.Errorf("macd needs %d closes, have %d: %w", minLen, len(closes), ErrInsufficientHistory)
	}

	fast := emaSeries(closes, macdFastWindow)
	slow := emaSeries(closes, macdSlowWindow)

	// The MACD line is defined from the first index where the slow EMA
	// exists. fast[i] aligns to closes index macdFastWindow-1+i.
	offset := macdSlowWindow - macdFastWindow
	line := make([]float64, len(slow))
	for i := range slow {
		line[i] = fast[i+offset] - slow[i]
	}

	signal := emaSeries(line, macdSignalWindow)
	return line[len(line)-1] - signal[len(signal)-1], nil
}
