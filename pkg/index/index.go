// Package index resolves the S&P 500 constituent symbols from the public
// Wikipedia constituents table.
package index

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const constituentsURL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

const userAgent = "stockscan/1.0"

// Scraper fetches the index constituent list.
type Scraper struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewScraper builds a Scraper for the S&P 500 constituents page.
func NewScraper(logger *zap.Logger) *Scraper {
	return &Scraper{
		url:        constituentsURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// ConstituentSymbols returns the ticker symbols of the index, in page order.
func (s *Scraper) ConstituentSymbols() ([]string, error) {
	req, err := http.NewRequest(http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create constituents request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch constituents page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("constituents page returned status %d", resp.StatusCode)
	}

	symbols, err := parseConstituents(resp.Body)
	if err != nil {
		return nil, err
	}
	s.logger.Info("scraped index constituents", zap.Int("symbols", len(symbols)))
	return symbols, nil
}

// parseConstituents extracts the first column of the constituents table.
// The page carries two wikitables; the first one lists current members.
func parseConstituents(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse constituents page: %w", err)
	}

	var symbols []string
	seen := make(map[string]bool)
	doc.Find("table.wikitable").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return // header row
		}
		symbol := strings.ToUpper(strings.TrimSpace(cells.Eq(0).Text()))
		if symbol == "" || seen[symbol] {
			return
		}
		seen[symbol] = true
		symbols = append(symbols, symbol)
	})

	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols found in constituents table")
	}
	return symbols, nil
}
