// Package usage implements the aggregation engine: time-window computation,
// paginated retrieval from the Organization Usage API, per-model
// summarization, and spike detection between consecutive polls.
package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/p-reiter/usagewatch/internal/logger"
	"github.com/p-reiter/usagewatch/internal/models"
)

const (
	defaultBaseURL = "https://api.openai.com/v1/organization/usage/completions"

	// pageLimit is the per-page record cap requested from the server.
	pageLimit = 100

	requestTimeout = 20 * time.Second
)

// BucketWidths lists the server-side aggregation granularities the usage
// endpoint accepts.
var BucketWidths = []string{"1m", "1h", "1d"}

// ValidBucketWidth reports whether w is an accepted bucket width.
func ValidBucketWidth(w string) bool {
	for _, b := range BucketWidths {
		if w == b {
			return true
		}
	}
	return false
}

// Record is one raw usage record as returned by the server. Field naming
// has changed across API generations, so records stay generic and the
// summarizer extracts quantities through alias lists.
type Record map[string]any

// usagePage is the envelope of a single response page. Older deployments
// returned records under "results" instead of "data".
type usagePage struct {
	Data     []Record `json:"data"`
	Results  []Record `json:"results"`
	NextPage string   `json:"next_page"`
}

func (p *usagePage) records() []Record {
	if p.Data != nil {
		return p.Data
	}
	return p.Results
}

// Client retrieves raw usage records for a tracked API key. It performs no
// retries: recovering from a failed fetch is the scheduler's job, and the
// fixed poll interval is the retry mechanism.
type Client struct {
	httpClient *http.Client
	baseURL    string
	adminKey   string
}

// NewClient creates a usage client authenticating with the given admin key.
func NewClient(adminKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		adminKey:   adminKey,
	}
}

// FetchUsage retrieves every page of usage records for keyID within the
// window, grouped by model. The first request carries no cursor; each
// response may include a next_page token that is echoed back until the
// server omits it. All pages' records are concatenated in order.
func (c *Client) FetchUsage(ctx context.Context, keyID string, window models.Window, bucketWidth string) ([]Record, error) {
	params := url.Values{}
	params.Set("start_time", strconv.FormatInt(window.Start, 10))
	params.Set("end_time", strconv.FormatInt(window.End, 10))
	params.Set("bucket_width", bucketWidth)
	params.Add("api_key_ids[]", keyID)
	params.Add("group_by[]", "model")
	params.Set("limit", strconv.Itoa(pageLimit))

	var records []Record
	nextPage := ""
	pages := 0

	for {
		page, err := c.fetchPage(ctx, params, nextPage)
		if err != nil {
			return nil, err
		}

		records = append(records, page.records()...)
		pages++

		if page.NextPage == "" {
			break
		}
		nextPage = page.NextPage
	}

	logger.Debug("fetched usage", "key_id", keyID, "pages", pages, "records", len(records))
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, base url.Values, cursor string) (*usagePage, error) {
	params := url.Values{}
	for k, vs := range base {
		params[k] = vs
	}
	if cursor != "" {
		params.Set("page", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create usage request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.adminKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var page usagePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse usage response: %w", err)
	}

	return &page, nil
}
