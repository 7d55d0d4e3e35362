package ratings

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuyRating(t *testing.T) {
	tests := []struct {
		name   string
		counts *Counts
		want   float64
	}{
		{"no data", nil, 0},
		{"zero denominator", &Counts{}, 0},
		{"seventy percent", &Counts{Buy: 7, Hold: 2, Sell: 1}, 70.0},
		{"all buys", &Counts{Buy: 4}, 100.0},
		{"no buys", &Counts{Hold: 3, Sell: 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuyRating(tt.counts))
		})
	}
}

func TestDecodeSummary(t *testing.T) {
	counts, err := decodeSummary([]byte(`{"summary":{"num_buy_ratings":7,"num_hold_ratings":2,"num_sell_ratings":1}}`))
	require.NoError(t, err)
	require.NotNil(t, counts)
	assert.Equal(t, &Counts{Buy: 7, Hold: 2, Sell: 1}, counts)
}

func TestDecodeSummary_RepairsMalformedJSON(t *testing.T) {
	// Truncated payload, as seen from the live endpoint.
	counts, err := decodeSummary([]byte(`{"summary":{"num_buy_ratings":5,"num_hold_ratings":1,"num_sell_ratings":0`))
	require.NoError(t, err)
	require.NotNil(t, counts)
	assert.Equal(t, 5, counts.Buy)
}

func TestDecodeSummary_MissingSummary(t *testing.T) {
	counts, err := decodeSummary([]byte(`{}`))
	require.NoError(t, err)
	assert.Nil(t, counts)
}

func TestClient_AnalystRating(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/AAPL/":
			fmt.Fprint(w, `{"summary":{"num_buy_ratings":7,"num_hold_ratings":2,"num_sell_ratings":1}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())

	counts, err := client.AnalystRating("AAPL")
	require.NoError(t, err)
	assert.Equal(t, 70.0, BuyRating(counts))

	counts, err = client.AnalystRating("NOPE")
	require.NoError(t, err)
	assert.Nil(t, counts)
	assert.Equal(t, 0.0, BuyRating(counts))
}

func TestClient_AnalystRating_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop())
	_, err := client.AnalystRating("AAPL")
	require.Error(t, err)
}
