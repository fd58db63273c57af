package market

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second, nil, zerolog.Nop())
}

func TestSimplePrices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin,ethereum", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		assert.Equal(t, "true", r.URL.Query().Get("include_24hr_change"))

		json.NewEncoder(w).Encode(map[string]map[string]float64{
			"bitcoin":  {"usd": 45000, "usd_24h_change": 2.5},
			"ethereum": {"usd": 3200, "usd_24h_change": -1.2},
		})
	})

	quotes, err := client.SimplePrices(context.Background(), []string{"bitcoin", "ethereum"}, "usd")
	require.NoError(t, err)

	require.Len(t, quotes, 2)
	assert.True(t, decimal.NewFromInt(45000).Equal(quotes["bitcoin"].Price))
	assert.True(t, decimal.NewFromFloat(2.5).Equal(quotes["bitcoin"].Change24h))
	assert.True(t, decimal.NewFromFloat(-1.2).Equal(quotes["ethereum"].Change24h))
}

func TestSimplePricesEmptyIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty id list")
	})

	quotes, err := client.SimplePrices(context.Background(), nil, "usd")
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestUpstreamErrorSurfacesAsUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.SimplePrices(context.Background(), []string{"bitcoin"}, "usd")
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)

	_, err = client.Global(context.Background())
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestCoinCondensesUpstreamPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin", r.URL.Path)
		w.Write([]byte(`{
			"id": "bitcoin",
			"symbol": "btc",
			"name": "Bitcoin",
			"image": {"large": "https://example.com/btc.png"},
			"market_data": {
				"current_price": {"usd": 45000},
				"market_cap": {"usd": 850000000000},
				"total_volume": {"usd": 25000000000},
				"price_change_percentage_24h": 2.5,
				"price_change_percentage_7d_in_currency": {"usd": 5.1},
				"high_24h": {"usd": 46000},
				"low_24h": {"usd": 44000}
			},
			"description": {"en": "Digital gold."}
		}`))
	})

	coin, err := client.Coin(context.Background(), "bitcoin", "usd")
	require.NoError(t, err)

	assert.Equal(t, "bitcoin", coin.ID)
	assert.Equal(t, "btc", coin.Symbol)
	assert.Equal(t, float64(45000), coin.CurrentPrice)
	assert.Equal(t, 5.1, coin.PriceChangePercentage7d)
	assert.Equal(t, float64(46000), coin.High24h)
	assert.Equal(t, "Digital gold.", coin.Description)
}

func TestOverviewFetchesBothEndpoints(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		switch r.URL.Path {
		case "/global":
			w.Write([]byte(`{"data":{"active_cryptocurrencies":10000}}`))
		case "/search/trending":
			w.Write([]byte(`{"coins":[]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	global, trending, err := client.Overview(context.Background())
	require.NoError(t, err)

	assert.JSONEq(t, `{"data":{"active_cryptocurrencies":10000}}`, string(global))
	assert.JSONEq(t, `{"coins":[]}`, string(trending))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestMarketsPassesQueryThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		assert.Equal(t, "inr", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "market_cap_desc", r.URL.Query().Get("order"))
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`[]`))
	})

	data, err := client.Markets(context.Background(), "inr", "market_cap_desc", 50, 2)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}
