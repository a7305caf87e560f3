package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"finover/internal/model"
)

// FMPFetcher implements Fetcher against a Financial Modeling Prep
// style REST API (historical-price-full, serietype=line).
type FMPFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewFMPFetcher creates a new fetcher with optional proxy support.
func NewFMPFetcher(baseURL, apiKey, proxyURL string) *FMPFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FMPFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *FMPFetcher) Name() string { return "fmp" }

// historyResponse is the expected JSON shape of the history endpoint.
type historyResponse struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date  string  `json:"date"`
		Close float64 `json:"close"`
	} `json:"historical"`
}

// FetchHistory retrieves the full daily close history for a symbol and
// returns it as a validated, date-ascending price series.
func (f *FMPFetcher) FetchHistory(symbol string) (*model.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/api/v3/historical-price-full/%s?serietype=line&apikey=%s",
		f.BaseURL, url.PathEscape(symbol), url.QueryEscape(f.APIKey))

	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch history %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch history %s: %w", symbol, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch history %s: status %d, body: %s", symbol, resp.StatusCode, string(body))
	}

	var result historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode history %s: %w", symbol, err)
	}
	if len(result.Historical) == 0 {
		return nil, fmt.Errorf("fetch history %s: %w", symbol, ErrNotFound)
	}

	points := make([]model.PricePoint, 0, len(result.Historical))
	for _, h := range result.Historical {
		date, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q for %s: %w", h.Date, symbol, err)
		}
		points = append(points, model.PricePoint{Date: date, Close: h.Close})
	}
	// The API returns newest first; the series requires ascending dates.
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return model.NewPriceSeries(symbol, points)
}
