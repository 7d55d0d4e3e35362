package ratings

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"
)

// DefaultBaseURL points at the brokerage's analyst ratings endpoint.
const DefaultBaseURL = "https://api.robinhood.com/midlands/ratings"

// summaryResponse mirrors the ratings endpoint payload.
type summaryResponse struct {
	Summary *Counts `json:"summary"`
}

// Client fetches analyst rating counts over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a ratings client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// AnalystRating returns the rating counts for symbol, or (nil, nil) when the
// endpoint has no data for it.
func (c *Client) AnalystRating(symbol string) (*Counts, error) {
	url := fmt.Sprintf("%s/%s/", c.baseURL, symbol)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("ratings request for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ratings response for %s: %w", symbol, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ratings endpoint returned status %d for %s: %s", resp.StatusCode, symbol, string(body))
	}

	counts, err := decodeSummary(body)
	if err != nil {
		return nil, fmt.Errorf("decode ratings for %s: %w", symbol, err)
	}
	if counts == nil {
		c.logger.Debug("no analyst ratings", zap.String("symbol", symbol))
	}
	return counts, nil
}

// decodeSummary parses a ratings payload, repairing malformed JSON before
// giving up. The endpoint has been seen returning truncated bodies.
func decodeSummary(body []byte) (*Counts, error) {
	var parsed summaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(body))
		if repairErr != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
			return nil, err
		}
	}
	return parsed.Summary, nil
}
