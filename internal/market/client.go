// Package market fetches spot prices and market data from a
// CoinGecko-compatible API.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/AnuzzKhatri/Crypto-Tracker/internal/models"
)

// Client talks to the upstream price API. Responses are cached with a
// short TTL; upstream failures surface immediately as
// models.ErrUpstreamUnavailable with no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	log        zerolog.Logger
}

// NewClient creates a market data client. cache may be nil.
func NewClient(baseURL string, timeout time.Duration, cache *Cache, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		log:        log,
	}
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	if data := c.cache.Get(ctx, u); data != nil {
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("price provider request failed")
		return nil, fmt.Errorf("request to price provider failed: %w", models.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("price provider returned error")
		return nil, fmt.Errorf("price provider returned status %d: %w", resp.StatusCode, models.ErrUpstreamUnavailable)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", models.ErrUpstreamUnavailable)
	}

	c.cache.Set(ctx, u, data)
	return data, nil
}

// SimplePrices returns quotes for the given coin ids in the display
// currency. Coins the provider has no data for are absent from the result.
func (c *Client) SimplePrices(ctx context.Context, ids []string, vsCurrency string) (map[string]models.Quote, error) {
	if len(ids) == 0 {
		return map[string]models.Quote{}, nil
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", vsCurrency)
	params.Set("include_24hr_change", "true")

	data, err := c.fetch(ctx, "/simple/price", params)
	if err != nil {
		return nil, err
	}

	var raw map[string]map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode prices: %w", models.ErrUpstreamUnavailable)
	}

	quotes := make(map[string]models.Quote, len(raw))
	for coinID, fields := range raw {
		quotes[coinID] = models.Quote{
			Price:     decimal.NewFromFloat(fields[vsCurrency]),
			Change24h: decimal.NewFromFloat(fields[vsCurrency+"_24h_change"]),
		}
	}
	return quotes, nil
}

// Markets returns the paginated coin market listing as upstream-shaped JSON.
func (c *Client) Markets(ctx context.Context, vsCurrency, order string, perPage, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("vs_currency", vsCurrency)
	params.Set("order", order)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	params.Set("sparkline", "false")
	params.Set("price_change_percentage", "1h,24h,7d")

	return c.fetch(ctx, "/coins/markets", params)
}

// CoinDetail is the condensed single-coin view served to clients.
type CoinDetail struct {
	ID                       string          `json:"id"`
	Symbol                   string          `json:"symbol"`
	Name                     string          `json:"name"`
	Image                    json.RawMessage `json:"image"`
	CurrentPrice             float64         `json:"current_price"`
	MarketCap                float64         `json:"market_cap"`
	TotalVolume              float64         `json:"total_volume"`
	PriceChangePercentage24h float64         `json:"price_change_percentage_24h"`
	PriceChangePercentage7d  float64         `json:"price_change_percentage_7d"`
	High24h                  float64         `json:"high_24h"`
	Low24h                   float64         `json:"low_24h"`
	Description              string          `json:"description"`
}

// Coin fetches one coin and condenses the upstream payload for the
// requested display currency.
func (c *Client) Coin(ctx context.Context, id, vsCurrency string) (*CoinDetail, error) {
	params := url.Values{}
	params.Set("localization", "false")
	params.Set("tickers", "false")
	params.Set("market_data", "true")
	params.Set("community_data", "false")
	params.Set("developer_data", "false")
	params.Set("sparkline", "false")

	data, err := c.fetch(ctx, "/coins/"+url.PathEscape(id), params)
	if err != nil {
		return nil, err
	}

	var raw struct {
		ID         string          `json:"id"`
		Symbol     string          `json:"symbol"`
		Name       string          `json:"name"`
		Image      json.RawMessage `json:"image"`
		MarketData struct {
			CurrentPrice             map[string]float64 `json:"current_price"`
			MarketCap                map[string]float64 `json:"market_cap"`
			TotalVolume              map[string]float64 `json:"total_volume"`
			PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
			PriceChangePercentage7d  map[string]float64 `json:"price_change_percentage_7d_in_currency"`
			High24h                  map[string]float64 `json:"high_24h"`
			Low24h                   map[string]float64 `json:"low_24h"`
		} `json:"market_data"`
		Description map[string]string `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode coin detail: %w", models.ErrUpstreamUnavailable)
	}

	return &CoinDetail{
		ID:                       raw.ID,
		Symbol:                   raw.Symbol,
		Name:                     raw.Name,
		Image:                    raw.Image,
		CurrentPrice:             raw.MarketData.CurrentPrice[vsCurrency],
		MarketCap:                raw.MarketData.MarketCap[vsCurrency],
		TotalVolume:              raw.MarketData.TotalVolume[vsCurrency],
		PriceChangePercentage24h: raw.MarketData.PriceChangePercentage24h,
		PriceChangePercentage7d:  raw.MarketData.PriceChangePercentage7d[vsCurrency],
		High24h:                  raw.MarketData.High24h[vsCurrency],
		Low24h:                   raw.MarketData.Low24h[vsCurrency],
		Description:              raw.Description["en"],
	}, nil
}

// Search queries the provider's coin search endpoint.
func (c *Client) Search(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	return c.fetch(ctx, "/search", params)
}

// Trending returns the provider's trending coins.
func (c *Client) Trending(ctx context.Context) (json.RawMessage, error) {
	return c.fetch(ctx, "/search/trending", nil)
}

// Global returns global market statistics.
func (c *Client) Global(ctx context.Context) (json.RawMessage, error) {
	return c.fetch(ctx, "/global", nil)
}

// Overview fetches global stats and trending coins in parallel. The two
// calls are independent, so one failing fails the overview without
// waiting on the other's ordering.
func (c *Client) Overview(ctx context.Context) (global, trending json.RawMessage, err error) {
	var wg sync.WaitGroup
	var globalErr, trendingErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		global, globalErr = c.Global(ctx)
	}()
	go func() {
		defer wg.Done()
		trending, trendingErr = c.Trending(ctx)
	}()
	wg.Wait()

	if globalErr != nil {
		return nil, nil, globalErr
	}
	if trendingErr != nil {
		return nil, nil, trendingErr
	}
	return global, trending, nil
}
