// Package ledger appends realized trade records to an append-only CSV file.
// Records are written once per sell and never mutated or deleted.
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// Column order is fixed for compatibility with prior records.
var header = []string{"symbol", "quantity", "acquired_at", "buy_price", "sell_price", "realized_gain"}

// Entry is one realized trade.
type Entry struct {
	Symbol       string
	Quantity     int64
	AcquiredAt   string // acquisition timestamp, or the broker's not-found sentinel
	BuyPrice     decimal.Decimal
	SellPrice    decimal.Decimal
	RealizedGain decimal.Decimal
}

// NewEntry builds an entry, computing the realized gain from the prices.
func NewEntry(symbol string, quantity int64, acquiredAt string, buyPrice, sellPrice decimal.Decimal) Entry {
	gain := sellPrice.Sub(buyPrice).Mul(decimal.NewFromInt(quantity))
	return Entry{
		Symbol:       symbol,
		Quantity:     quantity,
		AcquiredAt:   acquiredAt,
		BuyPrice:     buyPrice,
		SellPrice:    sellPrice,
		RealizedGain: gain,
	}
}

// Ledger is a handle to the trade history file.
type Ledger struct {
	path string
}

// New returns a ledger backed by the file at path. The file is created with
// a header row on first append.
func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the backing file path.
func (l *Ledger) Path() string {
	return l.path
}

// Append writes the entries to the end of the ledger file.
func (l *Ledger) Append(entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}

	writeHeader := false
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		writeHeader = true
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open ledger file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if writeHeader {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("write ledger header: %w", err)
		}
	}
	for _, e := range entries {
		record := []string{
			e.Symbol,
			strconv.FormatInt(e.Quantity, 10),
			e.AcquiredAt,
			e.BuyPrice.String(),
			e.SellPrice.String(),
			e.RealizedGain.String(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write ledger record for %s: %w", e.Symbol, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Read returns every entry in the ledger file. A missing file reads as empty.
func (l *Ledger) Read() ([]Entry, error) {
	file, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}

	var entries []Entry
	for i, record := range records {
		if i == 0 && len(record) > 0 && record[0] == header[0] {
			continue
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("ledger line %d: expected %d fields, got %d", i+1, len(header), len(record))
		}
		entry, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseRecord(record []string) (Entry, error) {
	quantity, err := strconv.ParseInt(record[1], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parse quantity %q: %w", record[1], err)
	}
	buyPrice, err := decimal.NewFromString(record[3])
	if err != nil {
		return Entry{}, fmt.Errorf("parse buy price %q: %w", record[3], err)
	}
	sellPrice, err := decimal.NewFromString(record[4])
	if err != nil {
		return Entry{}, fmt.Errorf("parse sell price %q: %w", record[4], err)
	}
	gain, err := decimal.NewFromString(record[5])
	if err != nil {
		return Entry{}, fmt.Errorf("parse realized gain %q: %w", record[5], err)
	}
	return Entry{
		Symbol:       record[0],
		Quantity:     quantity,
		AcquiredAt:   record[2],
		BuyPrice:     buyPrice,
		SellPrice:    sellPrice,
		RealizedGain: gain,
	}, nil
}
