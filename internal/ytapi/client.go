// Package ytapi is a thin client for the video platform's Data API v3. It
// covers exactly the three endpoints the dashboard needs: channels.list,
// playlistItems.list, and videos.list. There are no retries anywhere in
// this package; every failure degrades to fewer results for the caller.
package ytapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Jeffail/gabs/v2"
)

const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
	BatchSize  int
}

type Client struct {
	cfg Config
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	if cfg.PageSize == 0 {
		cfg.PageSize = 50
	}

	if cfg.BatchSize == 0 {
		cfg.BatchSize = 50
	}

	return &Client{cfg: cfg}
}

func (c *Client) HTTPClient() *http.Client {
	return c.cfg.HTTPClient
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) (*gabs.Container, error) {
	query.Set("key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/"+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("ytapi.Client.get: %w", err)
	}

	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ytapi.Client.get: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("ytapi.Client.get: could not read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		if j, err := gabs.ParseJSON(body); err == nil {
			if message, ok := j.Path("error.message").Data().(string); ok {
				return nil, fmt.Errorf("ytapi.Client.get: %s: status code %d: %s", endpoint, res.StatusCode, message)
			}
		}

		return nil, fmt.Errorf("ytapi.Client.get: %s: status code %d", endpoint, res.StatusCode)
	}

	j, err := gabs.ParseJSON(body)
	if err != nil {
		return nil, fmt.Errorf("ytapi.Client.get: could not parse response: %w", err)
	}

	return j, nil
}
