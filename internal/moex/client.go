// Package moex wraps the exchange's public ISS JSON API: a plain HTTP
// client with a fixed timeout, decoding the column/data table shape the
// API uses for every endpoint.
package moex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const baseURL = "https://iss.moex.com/iss"

// Client is a single shared HTTP client against the MOEX ISS API.
type Client struct {
	http    *http.Client
	baseURL string
}

// New builds a client with a 10-second request timeout.
func New() *Client {
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

// Table is the column/data shape every ISS endpoint returns per block.
type Table struct {
	Columns []string        `json:"columns"`
	Data    [][]interface{} `json:"data"`
}

// RatesResponse is the decoded body of rates.json.
type RatesResponse struct {
	CBRF     Table `json:"cbrf"`
	WapRates Table `json:"wap_rates"`
}

// SecurityResponse is the decoded body of securities/{ticker}.json.
type SecurityResponse struct {
	Description Table `json:"description"`
	Boards      Table `json:"boards"`
}

// GetRates fetches the currency rates table.
func (c *Client) GetRates(ctx context.Context) (*RatesResponse, error) {
	var out RatesResponse
	if err := c.get(ctx, c.baseURL+"/statistics/engines/currency/markets/selt/rates.json?iss.meta=off", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSecurity fetches the description/boards tables for a single ticker.
func (c *Client) GetSecurity(ctx context.Context, ticker string) (*SecurityResponse, error) {
	var out SecurityResponse
	url := fmt.Sprintf("%s/securities/%s.json?iss.meta=off", c.baseURL, ticker)
	if err := c.get(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TransportError is returned for non-2xx responses.
type TransportError struct {
	Status int
	URL    string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("moex: %s: unexpected status %d", e.URL, e.Status)
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("moex: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("moex: request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Status: resp.StatusCode, URL: url}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("moex: decode %s: %w", url, err)
	}
	return nil
}
