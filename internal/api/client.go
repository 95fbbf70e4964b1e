package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// ErrMalformed is returned when the API answers with a body that cannot be
// used: invalid JSON or a timings object missing a canonical field.
var ErrMalformed = errors.New("malformed timings response")

// Client communicates with the Al Adhan prayer times API.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Defaults to the Al Adhan API.
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: defaultBaseURL,
	}
}

// Query holds the parameters of a timings-by-date request.
type Query struct {
	Date      time.Time
	Latitude  float64
	Longitude float64
	Method    int // calculation method code; negative lets the API choose
	School    int // 0 = standard, 1 = hanafi; negative lets the API choose
}

// FetchTimings fetches prayer times for the query's calendar date and coordinates.
func (c *Client) FetchTimings(ctx context.Context, q Query) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timings/%s", c.BaseURL, q.Date.Format("02-01-2006"))

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(q.Latitude, 'f', 6, 64))
	params.Set("longitude", strconv.FormatFloat(q.Longitude, 'f', 6, 64))
	if q.Method >= 0 {
		params.Set("method", strconv.Itoa(q.Method))
	}
	if q.School >= 0 {
		params.Set("school", strconv.Itoa(q.School))
	}

	resp, err := c.doRequest(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	if missing := resp.Data.Timings.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", ErrMalformed, missing)
	}
	return resp, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build API request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode API response: %v", ErrMalformed, err)
	}

	if apiResp.Code != 200 {
		return nil, fmt.Errorf("API error: code=%d status=%s", apiResp.Code, apiResp.Status)
	}

	return &apiResp, nil
}
