// Package nutrition is a client for the USDA FoodData Central search API.
// It returns foods already mapped into the catalog's per-serving shape.
package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

// DefaultBaseURL is the FoodData Central v1 API root.
const DefaultBaseURL = "https://api.nal.usda.gov/fdc/v1"

// ErrEmptyQuery is returned when Search is called with a blank query.
var ErrEmptyQuery = errors.New("nutrition: empty query")

// StatusError reports a non-2xx response from the lookup API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nutrition: lookup returned status %d: %s", e.StatusCode, e.Body)
}

// Client queries FoodData Central. The zero value is not usable; build one
// with NewClient.
type Client struct {
	BaseURL  string
	APIKey   string
	PageSize int
	HTTP     *http.Client
}

// NewClient returns a Client with defaults applied. timeout bounds each HTTP
// round trip in addition to any deadline carried by the request context.
func NewClient(baseURL, apiKey string, pageSize int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		APIKey:   apiKey,
		PageSize: pageSize,
		HTTP:     &http.Client{Timeout: timeout},
	}
}

// Search runs a free-text food search and maps every result. Transport
// failures, non-2xx statuses and undecodable bodies are returned as errors;
// nothing is retried.
func (c *Client) Search(ctx context.Context, query string) ([]domain.FoodItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("pageSize", strconv.Itoa(c.PageSize))
	if c.APIKey != "" {
		q.Set("api_key", c.APIKey)
	}
	endpoint := c.BaseURL + "/foods/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("nutrition: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nutrition: call search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("nutrition: decode search response: %w", err)
	}
	return mapFoods(sr.Foods), nil
}
