// Package sheets appends rows to a Google Sheet through an Apps Script
// web-app webhook. The webhook accepts a JSON body of cell values and writes
// them as one row, which keeps the binary free of Google API credentials.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client appends rows to the configured sheet.
type Client interface {
	AppendRow(ctx context.Context, row []string) error
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default append rate limit (1 req/s).
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type httpClient struct {
	webhookURL string
	http       *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a sheet append client posting to the given webhook URL.
// Appends are throttled to 1 req/s; Apps Script quotas are unforgiving.
func NewClient(webhookURL string, opts ...Option) Client {
	c := &httpClient{
		webhookURL: webhookURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(1, 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type appendRequest struct {
	Values []string `json:"values"`
}

type appendResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (c *httpClient) AppendRow(ctx context.Context, row []string) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "sheets: rate limit")
		}
	}

	body, err := json.Marshal(appendRequest{Values: row})
	if err != nil {
		return eris.Wrap(err, "sheets: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "sheets: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "sheets: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "sheets: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("sheets: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	// Apps Script always responds 200; failures are reported in the body.
	var result appendResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return eris.Wrap(err, "sheets: unmarshal response")
	}
	if result.Error != "" {
		return eris.Errorf("sheets: webhook error: %s", result.Error)
	}
	return nil
}
