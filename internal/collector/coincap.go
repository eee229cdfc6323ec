package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"CryptoBoard/internal/model"
)

// DefaultCoinCapURL is the public CoinCap REST root.
const DefaultCoinCapURL = "https://api.coincap.io"

// CoinCapFetcher implements MarketFetcher using the CoinCap assets endpoint.
type CoinCapFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewCoinCapFetcher creates a fetcher with optional proxy support.
func NewCoinCapFetcher(baseURL, apiKey, proxyURL string) *CoinCapFetcher {
	if baseURL == "" {
		baseURL = DefaultCoinCapURL
	}
	return &CoinCapFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *CoinCapFetcher) Name() string { return "coincap" }

// coinCapAssets is the response envelope of /v2/assets.
type coinCapAssets struct {
	Data  []model.MarketSample `json:"data"`
	Error string               `json:"error"`
}

// FetchAssets issues one request for exactly the given ids and returns the
// records in provider order.
func (f *CoinCapFetcher) FetchAssets(ctx context.Context, ids []string) ([]model.MarketSample, error) {
	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = url.QueryEscape(id)
	}
	endpoint := fmt.Sprintf("%s/v2/assets?ids=%s", f.BaseURL, strings.Join(escaped, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coincap fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coincap read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: f.Name(), StatusCode: resp.StatusCode, Message: string(body)}
	}

	var assets coinCapAssets
	if err := json.Unmarshal(body, &assets); err != nil {
		return nil, fmt.Errorf("coincap decode: %w", err)
	}
	if assets.Error != "" {
		return nil, &ProviderError{Provider: f.Name(), Message: assets.Error}
	}
	if assets.Data == nil {
		return nil, &ProviderError{Provider: f.Name(), Message: "response has no data"}
	}
	return assets.Data, nil
}
