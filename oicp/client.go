package oicp

import (
	"fmt"
	"net/http"
	"time"

	"context"

	gojson "github.com/goccy/go-json"

	"chargewatch/config"
)

// Client fetches the two BFE open-data feeds. The status client carries a hard
// timeout so a hung poll cycle is bounded by the fetch stage, not the
// scheduler.
type Client struct {
	dataUrl      string
	statusUrl    string
	dataClient   *http.Client
	statusClient *http.Client
}

func NewClient(cfg config.Feeds) *Client {
	timeout := time.Duration(cfg.StatusTimeout) * time.Second
	if cfg.StatusTimeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		dataUrl:      cfg.DataUrl,
		statusUrl:    cfg.StatusUrl,
		dataClient:   &http.Client{},
		statusClient: &http.Client{Timeout: timeout},
	}
}

// FetchData downloads the full static metadata snapshot.
func (c *Client) FetchData(ctx context.Context) (*DataDocument, error) {
	doc := DataDocument{}
	if err := c.fetch(ctx, c.dataClient, c.dataUrl, "data", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FetchStatus downloads the dynamic status snapshot.
func (c *Client) FetchStatus(ctx context.Context) (*StatusDocument, error) {
	doc := StatusDocument{}
	if err := c.fetch(ctx, c.statusClient, c.statusUrl, "status", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) fetch(ctx context.Context, client *http.Client, url, feed string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFetch, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		statsCollector.IncFeedRequests(feed, "error")
		return fmt.Errorf("%w: %s", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statsCollector.IncFeedRequests(feed, "error")
		return fmt.Errorf("%w: unexpected response %s", ErrFetch, resp.Status)
	}

	if err := gojson.NewDecoder(resp.Body).Decode(out); err != nil {
		statsCollector.IncFeedRequests(feed, "parse_error")
		return fmt.Errorf("%w: %s", ErrParse, err)
	}

	statsCollector.IncFeedRequests(feed, "ok")
	return nil
}
